package config

import "time"

// ActivationConfig controls how the watch command follows the persisted enable flag
type ActivationConfig struct {
	PollIntervalMs int `json:"poll_interval_ms,omitempty" yaml:"poll_interval_ms,omitempty" validate:"omitempty,min=100"`
}

// NewDefaultActivationConfig creates default activation configuration
func NewDefaultActivationConfig() ActivationConfig {
	return ActivationConfig{
		PollIntervalMs: DefaultActivationPollIntervalMs,
	}
}

// PollInterval returns how often the enable flag is re-read.
func (c ActivationConfig) PollInterval() time.Duration {
	return millisOrDefault(c.PollIntervalMs, DefaultActivationPollIntervalMs)
}
