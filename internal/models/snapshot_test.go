package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshot_Normalization(t *testing.T) {
	h := http.Header{}
	h.Set("ETag", `W/"abc"`)
	h.Set("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
	h.Set("Content-Length", "512")
	h.Set("Content-Type", "Text/CSS; charset=UTF-8")

	snap := NewSnapshot(h)

	assert.Equal(t, `"abc"`, snap.ETag)
	assert.Equal(t, "Wed, 21 Oct 2015 07:28:00 GMT", snap.LastModified)
	assert.Equal(t, "512", snap.ContentLength)
	assert.Equal(t, "text/css", snap.ContentType)
	assert.Equal(t, ClassStylesheet, snap.Class())
}

func TestNewSnapshot_MissingHeaders(t *testing.T) {
	snap := NewSnapshot(http.Header{})
	assert.Equal(t, Snapshot{}, snap)
}

func TestWeakAndStrongETagsCompareEqual(t *testing.T) {
	weak := http.Header{}
	weak.Set("ETag", `W/"v1"`)
	strong := http.Header{}
	strong.Set("ETag", `"v1"`)

	changed, _ := HasChanged(NewSnapshot(weak), NewSnapshot(strong))
	assert.False(t, changed)
}

func TestHasChanged_MissingNewETagIsNotAChange(t *testing.T) {
	tests := []Snapshot{
		{ETag: `"a1"`},
		{ETag: `"a1"`, ContentType: "text/css"},
		{ETag: `"a1"`, LastModified: "x", ContentLength: "10", ContentType: "text/html"},
	}
	for _, old := range tests {
		next := old
		next.ETag = ""
		changed, _ := HasChanged(old, next)
		assert.False(t, changed, "old=%+v", old)
	}
}

func TestHasChanged_AbsentOldETagIsAChange(t *testing.T) {
	changed, class := HasChanged(
		Snapshot{ContentType: "text/css"},
		Snapshot{ETag: `"a1"`, ContentType: "text/css"},
	)
	assert.True(t, changed)
	assert.Equal(t, ClassStylesheet, class)
}

func TestHasChanged_IdenticalSnapshots(t *testing.T) {
	snap := Snapshot{ETag: `"a"`, LastModified: "lm", ContentLength: "1", ContentType: "text/javascript"}
	changed, class := HasChanged(snap, snap)
	assert.False(t, changed)
	assert.Equal(t, ClassOther, class)
}

func TestHasChanged_EachFieldDetected(t *testing.T) {
	base := Snapshot{ETag: `"a"`, LastModified: "lm1", ContentLength: "10", ContentType: "text/css"}

	tests := []struct {
		name string
		edit func(*Snapshot)
		want ContentClass
	}{
		{"etag", func(s *Snapshot) { s.ETag = `"b"` }, ClassStylesheet},
		{"last-modified", func(s *Snapshot) { s.LastModified = "lm2" }, ClassStylesheet},
		{"content-length", func(s *Snapshot) { s.ContentLength = "11" }, ClassStylesheet},
		{"content-type", func(s *Snapshot) { s.ContentType = "text/html" }, ClassMarkup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := base
			tt.edit(&next)
			changed, class := HasChanged(base, next)
			assert.True(t, changed)
			assert.Equal(t, tt.want, class)
		})
	}
}

func TestHasChanged_ClassFromNewContentType(t *testing.T) {
	changed, class := HasChanged(
		Snapshot{LastModified: "1", ContentType: "text/html"},
		Snapshot{LastModified: "2", ContentType: "application/javascript"},
	)
	assert.True(t, changed)
	assert.Equal(t, ClassScript, class)
}
