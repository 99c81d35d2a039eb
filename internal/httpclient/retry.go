package httpclient

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RetryHandler retries failed requests. Network errors are retried at once,
// retryable status codes after an exponential backoff.
type RetryHandler struct {
	maxRetries       int
	baseDelay        time.Duration
	maxDelay         time.Duration
	retryStatusCodes map[int]bool
	logger           zerolog.Logger
}

// RetryHandlerConfig configuration for retry handler
type RetryHandlerConfig struct {
	MaxRetries       int           `json:"max_retries"`
	BaseDelay        time.Duration `json:"base_delay"`
	MaxDelay         time.Duration `json:"max_delay"`
	RetryStatusCodes []int         `json:"retry_status_codes"`
}

// NewRetryHandler creates a new retry handler
func NewRetryHandler(config RetryHandlerConfig, logger zerolog.Logger) *RetryHandler {
	codes := make(map[int]bool, len(config.RetryStatusCodes))
	for _, code := range config.RetryStatusCodes {
		codes[code] = true
	}

	return &RetryHandler{
		maxRetries:       config.MaxRetries,
		baseDelay:        config.BaseDelay,
		maxDelay:         config.MaxDelay,
		retryStatusCodes: codes,
		logger:           logger.With().Str("component", "RetryHandler").Logger(),
	}
}

// ShouldRetry reports whether statusCode on the given attempt earns another try.
func (rh *RetryHandler) ShouldRetry(statusCode int, attempt int) bool {
	if attempt >= rh.maxRetries {
		return false
	}
	return rh.retryStatusCodes[statusCode]
}

// CalculateDelay returns baseDelay * 2^attempt, capped at maxDelay.
func (rh *RetryHandler) CalculateDelay(attempt int) time.Duration {
	delay := rh.baseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if rh.maxDelay > 0 && delay >= rh.maxDelay {
			return rh.maxDelay
		}
	}
	if rh.maxDelay > 0 && delay > rh.maxDelay {
		delay = rh.maxDelay
	}
	return delay
}

// WaitForRetry waits for the calculated delay before retrying
func (rh *RetryHandler) WaitForRetry(ctx context.Context, attempt int, statusCode int, url string) error {
	delay := rh.CalculateDelay(attempt)

	rh.logger.Debug().
		Str("url", url).
		Int("status_code", statusCode).
		Int("attempt", attempt+1).
		Int("max_retries", rh.maxRetries).
		Dur("delay", delay).
		Msg("Retryable status, waiting before retry")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DoWithRetry executes an HTTP request with retry logic
func (rh *RetryHandler) DoWithRetry(ctx context.Context, doFunc func(*HTTPRequest) (*HTTPResponse, error), req *HTTPRequest) (*HTTPResponse, error) {
	var lastResp *HTTPResponse
	var lastErr error

	for attempt := 0; attempt <= rh.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := doFunc(req)
		if err != nil {
			lastResp, lastErr = nil, err
			if attempt < rh.maxRetries {
				rh.logger.Debug().
					Str("url", req.URL).
					Int("attempt", attempt+1).
					Err(err).
					Msg("Network error, retrying immediately")
			}
			continue
		}

		lastResp, lastErr = resp, nil
		if !rh.ShouldRetry(resp.StatusCode, attempt) {
			break
		}
		if err := rh.WaitForRetry(ctx, attempt, resp.StatusCode, req.URL); err != nil {
			return nil, err
		}
	}

	return lastResp, lastErr
}
