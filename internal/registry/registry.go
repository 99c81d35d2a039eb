// Package registry tracks the resources watched for one page lifetime and
// discovers them from the document.
package registry

import (
	"github.com/aleister1102/livereload/internal/models"
)

// Registry owns the watched resources and their latest snapshots. It is not
// safe for concurrent use; the engine only touches it from its loop.
type Registry struct {
	resources map[string]*models.WatchedResource
	order     []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{resources: make(map[string]*models.WatchedResource)}
}

// Register adds url unless it is already known. It reports whether the
// resource was added.
func (r *Registry) Register(url, ref string, class models.ContentClass) bool {
	if _, ok := r.resources[url]; ok {
		return false
	}
	r.resources[url] = &models.WatchedResource{URL: url, Ref: ref, Class: class}
	r.order = append(r.order, url)
	return true
}

// RecordSnapshot replaces the stored snapshot for url. Unknown URLs are ignored.
func (r *Registry) RecordSnapshot(url string, snap models.Snapshot) {
	res, ok := r.resources[url]
	if !ok {
		return
	}
	res.Snapshot = &snap
}

// SnapshotOf returns the last recorded snapshot for url.
func (r *Registry) SnapshotOf(url string) (models.Snapshot, bool) {
	res, ok := r.resources[url]
	if !ok || res.Snapshot == nil {
		return models.Snapshot{}, false
	}
	return *res.Snapshot, true
}

// Resource returns a copy of the entry for url.
func (r *Registry) Resource(url string) (models.WatchedResource, bool) {
	res, ok := r.resources[url]
	if !ok {
		return models.WatchedResource{}, false
	}
	return *res, true
}

// URLs returns the watched URLs in registration order.
func (r *Registry) URLs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Reset forgets every resource.
func (r *Registry) Reset() {
	r.resources = make(map[string]*models.WatchedResource)
	r.order = nil
}
