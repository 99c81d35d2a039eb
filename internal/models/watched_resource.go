package models

// WatchedResource is a URL polled for metadata changes during the lifetime
// of one page.
type WatchedResource struct {
	// URL is absolute and is the registry key.
	URL string `json:"url"`
	// Ref is the reference as written in the document.
	Ref string `json:"ref"`
	// Class is the class assigned at discovery.
	Class    ContentClass `json:"class"`
	Snapshot *Snapshot    `json:"snapshot,omitempty"`
}

// HasSnapshot reports whether at least one probe has succeeded.
func (r *WatchedResource) HasSnapshot() bool {
	return r.Snapshot != nil
}
