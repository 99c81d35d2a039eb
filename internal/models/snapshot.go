package models

import (
	"net/http"
	"strings"
)

// Snapshot is the normalized metadata captured by one probe.
// Empty fields mean the server did not send the header.
type Snapshot struct {
	ETag          string `json:"etag,omitempty"`
	LastModified  string `json:"last_modified,omitempty"`
	ContentLength string `json:"content_length,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
}

// NewSnapshot builds a Snapshot from response headers.
func NewSnapshot(h http.Header) Snapshot {
	return Snapshot{
		ETag:          NormalizeETag(h.Get("ETag")),
		LastModified:  h.Get("Last-Modified"),
		ContentLength: h.Get("Content-Length"),
		ContentType:   NormalizeContentType(h.Get("Content-Type")),
	}
}

// NormalizeETag strips the weak validator prefix so W/"x" equals "x".
func NormalizeETag(etag string) string {
	return strings.TrimPrefix(etag, "W/")
}

// Class returns the refresh class implied by the snapshot's content type.
func (s Snapshot) Class() ContentClass {
	return ClassifyContentType(s.ContentType)
}

// HasChanged compares two snapshots field by field in the order ETag,
// Last-Modified, Content-Length, Content-Type and stops at the first
// difference. A missing new ETag never counts as a change; a missing old
// ETag followed by a present one does. The returned class comes from the
// new snapshot's content type and is ClassOther when nothing changed.
func HasChanged(old, next Snapshot) (bool, ContentClass) {
	switch {
	case next.ETag != "" && old.ETag != next.ETag,
		old.LastModified != next.LastModified,
		old.ContentLength != next.ContentLength,
		old.ContentType != next.ContentType:
		return true, next.Class()
	}
	return false, ClassOther
}
