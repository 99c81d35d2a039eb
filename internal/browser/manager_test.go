package browser

import (
	"context"
	"testing"

	"github.com/aleister1102/livereload/internal/config"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLauncher_AppliesConfig(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(config.BrowserConfig{
		Headless:    true,
		UserDataDir: dir,
		BrowserArgs: []string{"--lang=fr", "mute-audio", ""},
	}, zerolog.Nop())

	l := m.newLauncher()

	assert.True(t, l.Has(flags.Headless))
	assert.Equal(t, dir, l.Get(flags.UserDataDir))
	assert.Equal(t, "fr", l.Get("lang"))
	assert.True(t, l.Has("mute-audio"))
	assert.True(t, l.Has("no-first-run"))
}

func TestNewLauncher_Headful(t *testing.T) {
	m := NewManager(config.NewDefaultBrowserConfig(), zerolog.Nop())
	l := m.newLauncher()

	assert.False(t, l.Has(flags.Headless))
}

func TestOpenPage_RequiresStart(t *testing.T) {
	m := NewManager(config.NewDefaultBrowserConfig(), zerolog.Nop())
	_, err := m.OpenPage(context.Background(), "http://localhost:8080/")
	require.Error(t, err)
	m.Close()
}
