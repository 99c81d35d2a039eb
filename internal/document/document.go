// Package document abstracts the live page the reload engine observes and
// mutates. RodDocument drives a real Chrome tab; StaticDocument keeps a parsed
// HTML model and is used without a browser.
package document

import (
	"context"
	"errors"
)

var (
	// ErrStylesheetNotReady is returned by StylesheetReady while the new
	// sheet has not finished loading or its rules cannot be read yet.
	ErrStylesheetNotReady = errors.New("stylesheet not ready")
	// ErrLinkNotFound is returned when a link handle no longer resolves to
	// an element.
	ErrLinkNotFound = errors.New("link element not found")
)

const (
	// IDAttribute tags every link element the engine has seen so it can be
	// addressed again later.
	IDAttribute = "data-livereload-id"
	// SourceAttribute holds the stylesheet URL a swapped-in link replaces.
	SourceAttribute = "data-livereload-source"
	// StyleAttribute marks the style element written by InstallStyle.
	StyleAttribute = "data-livereload-style"
)

// Link is a handle to a <link> element. Source is set only on links inserted
// by a swap and names the stylesheet URL without its cache-busting query.
type Link struct {
	ID     string `json:"id"`
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Source string `json:"source,omitempty"`
}

// Document is the page surface the engine needs.
type Document interface {
	// Location returns the current page URL.
	Location(ctx context.Context) (string, error)
	HasBody(ctx context.Context) (bool, error)
	// ScriptSources returns the raw src attribute of every script element.
	ScriptSources(ctx context.Context) ([]string, error)
	// Links returns every <link> element with its raw href and rel.
	Links(ctx context.Context) ([]Link, error)
	// InsertStylesheetAfter inserts a stylesheet link for href right after
	// the given link, appending it to the parent if that link is last. The
	// new link remembers source, which later Links calls report.
	InsertStylesheetAfter(ctx context.Context, after Link, href, source string) (Link, error)
	RemoveLink(ctx context.Context, link Link) error
	// StylesheetReady returns nil once the link's rules are readable and
	// ErrStylesheetNotReady before that.
	StylesheetReady(ctx context.Context, link Link) error
	AddRootClass(ctx context.Context, class string) error
	RemoveRootClass(ctx context.Context, class string) error
	// InstallStyle sets the page's single engine style sheet, replacing the
	// one from an earlier call.
	InstallStyle(ctx context.Context, css string) error
	Reload(ctx context.Context) error
	Notify(ctx context.Context, message string) error
}
