package httpclient

import (
	"net/http"
	"time"
)

// HTTPClientConfig holds configuration for HTTP clients
type HTTPClientConfig struct {
	Timeout               time.Duration     // Request timeout, zero means none
	InsecureSkipVerify    bool              // Skip TLS verification
	FollowRedirects       bool              // Whether to follow redirects
	MaxRedirects          int               // Maximum number of redirects to follow
	UserAgent             string            // User-Agent header sent with every request
	CustomHeaders         map[string]string // Custom headers to add to all requests
	MaxIdleConns          int               // Maximum idle connections
	MaxIdleConnsPerHost   int               // Maximum idle connections per host
	IdleConnTimeout       time.Duration     // Idle connection timeout
	TLSHandshakeTimeout   time.Duration     // TLS handshake timeout
	DialTimeout           time.Duration     // Connection dial timeout
	KeepAlive             time.Duration     // Keep-alive duration
	EnableHTTP2           bool              // Enable HTTP/2 support
	MaxRetries            int               // Retries for network errors and retryable status codes
	RetryBaseDelay        time.Duration     // First retry delay
	RetryMaxDelay         time.Duration     // Retry delay cap
	RetryStatusCodes      []int             // Status codes worth retrying
	ExpectContinueTimeout time.Duration     // Expect 100-continue timeout
}

// DefaultHTTPClientConfig returns the default HTTP client configuration
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               0,
		InsecureSkipVerify:    true,
		FollowRedirects:       true,
		MaxRedirects:          10,
		UserAgent:             "livereload/1.0",
		CustomHeaders:         map[string]string{},
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		EnableHTTP2:           true,
		MaxRetries:            0,
		RetryBaseDelay:        100 * time.Millisecond,
		RetryMaxDelay:         2 * time.Second,
		RetryStatusCodes:      []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		ExpectContinueTimeout: 1 * time.Second,
	}
}
