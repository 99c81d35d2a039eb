package registry

import (
	"testing"

	"github.com/aleister1102/livereload/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndSnapshots(t *testing.T) {
	r := New()

	assert.True(t, r.Register("http://h/a.css", "/a.css", models.ClassStylesheet))
	assert.True(t, r.Register("http://h/app.js", "/app.js", models.ClassScript))
	assert.False(t, r.Register("http://h/a.css", "a.css", models.ClassStylesheet))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"http://h/a.css", "http://h/app.js"}, r.URLs())

	_, ok := r.SnapshotOf("http://h/a.css")
	assert.False(t, ok, "no snapshot before the first probe")

	r.RecordSnapshot("http://h/a.css", models.Snapshot{ETag: `"a1"`, ContentType: "text/css"})
	snap, ok := r.SnapshotOf("http://h/a.css")
	require.True(t, ok)
	assert.Equal(t, `"a1"`, snap.ETag)

	// Whole-snapshot replacement, no field merging.
	r.RecordSnapshot("http://h/a.css", models.Snapshot{LastModified: "x"})
	snap, _ = r.SnapshotOf("http://h/a.css")
	assert.Equal(t, models.Snapshot{LastModified: "x"}, snap)

	res, ok := r.Resource("http://h/a.css")
	require.True(t, ok)
	assert.Equal(t, "/a.css", res.Ref)
	assert.True(t, res.HasSnapshot())
}

func TestRegistry_UnknownURL(t *testing.T) {
	r := New()
	r.RecordSnapshot("http://h/x", models.Snapshot{ETag: "x"})
	_, ok := r.SnapshotOf("http://h/x")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Reset(t *testing.T) {
	r := New()
	r.Register("http://h/a", "/a", models.ClassScript)
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.URLs())
}
