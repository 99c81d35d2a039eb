package config

import (
	"time"
)

// MonitorConfig defines configuration for the change-detection engine
type MonitorConfig struct {
	CheckIntervalMs   int `json:"check_interval_ms,omitempty" yaml:"check_interval_ms,omitempty" validate:"omitempty,min=10"`
	VerifyBackoffMs   int `json:"verify_backoff_ms,omitempty" yaml:"verify_backoff_ms,omitempty" validate:"omitempty,min=1"`
	ClassClearDelayMs int `json:"class_clear_delay_ms,omitempty" yaml:"class_clear_delay_ms,omitempty" validate:"omitempty,min=0"`
	MaxVerifyAttempts int `json:"max_verify_attempts,omitempty" yaml:"max_verify_attempts,omitempty" validate:"omitempty,min=0"`

	// Default activation flags; an activation marker on the page overrides them.
	WatchMarkup  bool `json:"watch_markup" yaml:"watch_markup"`
	WatchStyles  bool `json:"watch_styles" yaml:"watch_styles"`
	WatchScripts bool `json:"watch_scripts" yaml:"watch_scripts"`
	Notify       bool `json:"notify" yaml:"notify"`

	LoadingClass     string `json:"loading_class,omitempty" yaml:"loading_class,omitempty"`
	ActivationMarker string `json:"activation_marker,omitempty" yaml:"activation_marker,omitempty"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		CheckIntervalMs:   DefaultMonitorCheckIntervalMs,
		VerifyBackoffMs:   DefaultMonitorVerifyBackoffMs,
		ClassClearDelayMs: DefaultMonitorClassClearDelayMs,
		MaxVerifyAttempts: DefaultMonitorMaxVerifyAttempts,
		WatchMarkup:       true,
		WatchStyles:       true,
		WatchScripts:      true,
		Notify:            false,
		LoadingClass:      DefaultMonitorLoadingClass,
		ActivationMarker:  DefaultMonitorActivationMarker,
	}
}

// CheckInterval returns the heartbeat interval, falling back to the default when unset.
func (c MonitorConfig) CheckInterval() time.Duration {
	return millisOrDefault(c.CheckIntervalMs, DefaultMonitorCheckIntervalMs)
}

// VerifyBackoff returns the delay between stylesheet verification passes.
func (c MonitorConfig) VerifyBackoff() time.Duration {
	return millisOrDefault(c.VerifyBackoffMs, DefaultMonitorVerifyBackoffMs)
}

// ClassClearDelay returns how long the loading class stays on after a swap completes.
func (c MonitorConfig) ClassClearDelay() time.Duration {
	if c.ClassClearDelayMs < 0 {
		return DefaultMonitorClassClearDelayMs * time.Millisecond
	}
	return time.Duration(c.ClassClearDelayMs) * time.Millisecond
}

func millisOrDefault(ms, def int) time.Duration {
	if ms <= 0 {
		ms = def
	}
	return time.Duration(ms) * time.Millisecond
}
