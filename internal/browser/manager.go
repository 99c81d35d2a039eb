// Package browser launches or attaches to Chrome and opens the watched page.
package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aleister1102/livereload/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog"
)

// Manager owns the Chrome process (or remote connection) behind a watched page.
type Manager struct {
	cfg      config.BrowserConfig
	logger   zerolog.Logger
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewManager creates a manager. Call Start before opening pages.
func NewManager(cfg config.BrowserConfig, logger zerolog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logger.With().Str("component", "BrowserManager").Logger(),
	}
}

// Start connects to RemoteURL when set, otherwise launches a local Chrome.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		return nil
	}

	controlURL := m.cfg.RemoteURL
	if controlURL != "" {
		m.logger.Info().Str("url", controlURL).Msg("Connecting to remote browser")
	} else {
		l := m.newLauncher().Context(ctx)
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}
		m.launcher = l
		controlURL = u
		m.logger.Info().Str("url", controlURL).Bool("headless", m.cfg.Headless).Msg("Launched local browser")
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		m.cleanupLocked()
		return fmt.Errorf("failed to connect browser: %w", err)
	}
	m.browser = b
	return nil
}

func (m *Manager) newLauncher() *launcher.Launcher {
	l := launcher.New().Headless(m.cfg.Headless)

	if m.cfg.ChromePath != "" {
		l = l.Bin(m.cfg.ChromePath)
	}
	if m.cfg.UserDataDir != "" {
		l = l.UserDataDir(m.cfg.UserDataDir)
	}

	l = l.
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	for _, arg := range m.cfg.BrowserArgs {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "" {
			continue
		}
		if hasValue {
			l = l.Set(flags.Flag(name), value)
		} else {
			l = l.Set(flags.Flag(name))
		}
	}
	return l
}

// OpenPage opens a tab, navigates to pageURL and waits for the load event.
func (m *Manager) OpenPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	m.mu.Lock()
	b := m.browser
	m.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("browser manager not started")
	}

	var page *rod.Page
	var err error
	if m.cfg.Stealth {
		page, err = stealth.Page(b.Context(ctx))
	} else {
		page, err = b.Context(ctx).Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if m.cfg.WindowWidth > 0 && m.cfg.WindowHeight > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:  m.cfg.WindowWidth,
			Height: m.cfg.WindowHeight,
		}); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to set viewport")
		}
	}

	timeout := time.Duration(m.cfg.NavigateTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultBrowserNavTimeout) * time.Second
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("failed to navigate to %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		m.logger.Warn().Err(err).Str("url", pageURL).Msg("Page load timeout")
	}

	// Later calls must not inherit the navigation deadline.
	return page.Context(ctx), nil
}

// Close shuts the browser down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanupLocked()
	m.logger.Info().Msg("Browser closed")
}

func (m *Manager) cleanupLocked() {
	if m.browser != nil {
		_ = m.browser.Close()
		m.browser = nil
	}
	if m.launcher != nil {
		m.launcher.Cleanup()
		m.launcher = nil
	}
}
