package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/aleister1102/livereload/internal/config"
	"github.com/aleister1102/livereload/internal/preference"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *preference.Store {
	t.Helper()
	store, err := preference.NewStore(filepath.Join(t.TempDir(), "prefs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func runCommand(t *testing.T, store *preference.Store, command, target string) string {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), AppFlags{Command: command, Target: target}, config.NewDefaultGlobalConfig(), store, &out, zerolog.Nop())
	require.NoError(t, err)
	return out.String()
}

func TestRun_PreferenceCommands(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "STATUS: Live Reload is DISABLED on port 8080\n", runCommand(t, store, cmdStatus, "http://localhost:8080/"))
	assert.Equal(t, "🟢 Live Reload enabled on port 8080\n", runCommand(t, store, cmdEnable, "8080"))
	assert.Equal(t, "STATUS: Live Reload is ENABLED on port 8080\n", runCommand(t, store, cmdStatus, "8080"))
	assert.Equal(t, "🔴 Live Reload disabled on port 8080\n", runCommand(t, store, cmdToggle, "http://localhost:8080/app"))
	assert.Equal(t, "🟢 Live Reload enabled on port 3000\n", runCommand(t, store, cmdToggle, "3000"))
	assert.Equal(t, "🔴 Live Reload disabled on port 3000\n", runCommand(t, store, cmdDisable, "3000"))

	listed := runCommand(t, store, cmdList, "")
	assert.Contains(t, listed, "STATUS: Live Reload is DISABLED on port 3000")
	assert.Contains(t, listed, "STATUS: Live Reload is DISABLED on port 8080")
}

func TestRun_StoreFailureIsReported(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Close())

	var out bytes.Buffer
	err := run(context.Background(), AppFlags{Command: cmdEnable, Target: "8080"}, config.NewDefaultGlobalConfig(), store, &out, zerolog.Nop())
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Please check the log for details.")
}
