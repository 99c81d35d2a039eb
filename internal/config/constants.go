package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Monitor Defaults
	DefaultMonitorCheckIntervalMs   = 1000
	DefaultMonitorVerifyBackoffMs   = 50
	DefaultMonitorClassClearDelayMs = 100
	DefaultMonitorMaxVerifyAttempts = 0 // 0 means retry until the stylesheet loads
	DefaultMonitorLoadingClass      = "livereload-loading"
	DefaultMonitorActivationMarker  = "live.js#"

	// HTTP Client Defaults
	DefaultHTTPClientTimeoutSecs = 0 // 0 means no client-side timeout on probes
	DefaultHTTPClientRetries     = 0
	DefaultHTTPClientUserAgent   = "livereload/1.0"

	// Browser Defaults
	DefaultBrowserDriver       = DriverBrowser
	DefaultBrowserWindowWidth  = 1280
	DefaultBrowserWindowHeight = 800
	DefaultBrowserNavTimeout   = 30

	// Storage Defaults
	DefaultStorageSQLiteDBPath = "database/livereload/preferences.db"

	// Activation Defaults
	DefaultActivationPollIntervalMs = 2000
)

// Document drivers.
const (
	DriverBrowser = "browser"
	DriverStatic  = "static"
)
