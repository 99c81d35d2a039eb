package httpclient

import (
	"time"

	"github.com/aleister1102/livereload/internal/config"
	"github.com/rs/zerolog"
)

// HTTPClientBuilder builds HTTP clients with fluent interface
type HTTPClientBuilder struct {
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewHTTPClientBuilder creates a new HTTPClientBuilder with default configuration
func NewHTTPClientBuilder(logger zerolog.Logger) *HTTPClientBuilder {
	return &HTTPClientBuilder{
		config: DefaultHTTPClientConfig(),
		logger: logger,
	}
}

// WithAppConfig applies the http_client_config section of the application config.
func (b *HTTPClientBuilder) WithAppConfig(cfg config.HTTPClientConfig) *HTTPClientBuilder {
	b.config.Timeout = cfg.Timeout()
	b.config.MaxRetries = cfg.Retries
	b.config.InsecureSkipVerify = cfg.InsecureSkipVerify
	b.config.EnableHTTP2 = cfg.EnableHTTP2
	if cfg.UserAgent != "" {
		b.config.UserAgent = cfg.UserAgent
	}
	for k, v := range cfg.CustomHeaders {
		b.config.CustomHeaders[k] = v
	}
	return b
}

// WithTimeout sets the request timeout
func (b *HTTPClientBuilder) WithTimeout(timeout time.Duration) *HTTPClientBuilder {
	b.config.Timeout = timeout
	return b
}

// WithInsecureSkipVerify sets whether to skip TLS verification
func (b *HTTPClientBuilder) WithInsecureSkipVerify(skip bool) *HTTPClientBuilder {
	b.config.InsecureSkipVerify = skip
	return b
}

// WithFollowRedirects sets whether to follow redirects
func (b *HTTPClientBuilder) WithFollowRedirects(follow bool) *HTTPClientBuilder {
	b.config.FollowRedirects = follow
	return b
}

// WithUserAgent sets the User-Agent header
func (b *HTTPClientBuilder) WithUserAgent(userAgent string) *HTTPClientBuilder {
	b.config.UserAgent = userAgent
	return b
}

// WithHTTP2 enables or disables HTTP/2 support
func (b *HTTPClientBuilder) WithHTTP2(enabled bool) *HTTPClientBuilder {
	b.config.EnableHTTP2 = enabled
	return b
}

// WithRetries sets how many times a failed request is retried
func (b *HTTPClientBuilder) WithRetries(maxRetries int, baseDelay, maxDelay time.Duration) *HTTPClientBuilder {
	b.config.MaxRetries = maxRetries
	b.config.RetryBaseDelay = baseDelay
	b.config.RetryMaxDelay = maxDelay
	return b
}

// Build creates and returns a new HTTPClient
func (b *HTTPClientBuilder) Build() (*HTTPClient, error) {
	return NewHTTPClient(b.config, b.logger)
}
