package config

import "time"

// HTTPClientConfig defines configuration for the probe HTTP client
type HTTPClientConfig struct {
	TimeoutSecs        int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=0"`
	Retries            int               `json:"retries,omitempty" yaml:"retries,omitempty" validate:"omitempty,min=0,max=10"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultHTTPClientConfig creates default HTTP client configuration
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		TimeoutSecs:        DefaultHTTPClientTimeoutSecs,
		Retries:            DefaultHTTPClientRetries,
		UserAgent:          DefaultHTTPClientUserAgent,
		InsecureSkipVerify: true, // local dev servers commonly use self-signed certificates
		EnableHTTP2:        true,
		CustomHeaders:      map[string]string{},
	}
}

// Timeout returns the client timeout; zero means none.
func (c HTTPClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}
