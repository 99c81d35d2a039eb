package preference

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "prefs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_DefaultsToDisabled(t *testing.T) {
	store := newTestStore(t)

	enabled, err := store.Enabled(context.Background(), "8080")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestStore_SetEnabledPerPort(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetEnabled(ctx, "8080", true))
	require.NoError(t, store.SetEnabled(ctx, "3000", false))

	enabled, err := store.Enabled(ctx, "8080")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = store.Enabled(ctx, "3000")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, store.SetEnabled(ctx, "8080", false))
	enabled, err = store.Enabled(ctx, "8080")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestStore_Toggle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	on, err := store.Toggle(ctx, "5500")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := store.Toggle(ctx, "5500")
	require.NoError(t, err)
	assert.False(t, off)
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetEnabled(ctx, "8080", true))
	require.NoError(t, store.SetEnabled(ctx, "3000", false))

	prefs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "3000", prefs[0].Port)
	assert.False(t, prefs[0].Enabled)
	assert.Equal(t, "8080", prefs[1].Port)
	assert.True(t, prefs[1].Enabled)
	assert.False(t, prefs[1].UpdatedAt.IsZero())
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	store, err := NewStore(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.SetEnabled(ctx, "8080", true))
	require.NoError(t, store.Close())

	store, err = NewStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	enabled, err := store.Enabled(ctx, "8080")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "8080", PortOf("http://localhost:8080/index.html"))
	assert.Equal(t, DefaultPort, PortOf("http://localhost/index.html"))
	assert.Equal(t, DefaultPort, PortOf("::bad"))
}
