package config

// BrowserConfig defines how the watched page is opened
type BrowserConfig struct {
	// Driver selects the document implementation: "browser" drives a real
	// Chrome page through Rod, "static" keeps a parsed HTML model of the page.
	Driver              string   `json:"driver,omitempty" yaml:"driver,omitempty" validate:"omitempty,driver"`
	ChromePath          string   `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	RemoteURL           string   `json:"remote_url,omitempty" yaml:"remote_url,omitempty" validate:"omitempty,url"`
	UserDataDir         string   `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	Headless            bool     `json:"headless" yaml:"headless"`
	WindowWidth         int      `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"omitempty,min=100"`
	WindowHeight        int      `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"omitempty,min=100"`
	NavigateTimeoutSecs int      `json:"navigate_timeout_secs,omitempty" yaml:"navigate_timeout_secs,omitempty" validate:"omitempty,min=1"`
	BrowserArgs         []string `json:"browser_args,omitempty" yaml:"browser_args,omitempty"`
	// Stealth opens the tab with evasion scripts for dev servers behind bot
	// protection.
	Stealth bool `json:"stealth" yaml:"stealth"`
}

// NewDefaultBrowserConfig creates default browser configuration
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Driver:              DefaultBrowserDriver,
		Headless:            false,
		WindowWidth:         DefaultBrowserWindowWidth,
		WindowHeight:        DefaultBrowserWindowHeight,
		NavigateTimeoutSecs: DefaultBrowserNavTimeout,
		BrowserArgs:         []string{},
	}
}
