package monitor

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aleister1102/livereload/internal/document"
)

// fakeDocument is an in-memory Document that records every mutation.
type fakeDocument struct {
	mu       sync.Mutex
	location string
	hasBody  bool
	scripts  []string
	links    []document.Link
	seq      int
	// readyAfter is how many StylesheetReady calls an inserted link fails
	// before succeeding; negative means never.
	readyAfter int
	checks     map[string]int
	classes    map[string]bool
	styles     []string
	reloads    int
	notices    []string
	events     []string
	onReload   func(d *fakeDocument)
}

func newFakeDocument(location string) *fakeDocument {
	return &fakeDocument{
		location: location,
		hasBody:  true,
		checks:   make(map[string]int),
		classes:  make(map[string]bool),
	}
}

func (d *fakeDocument) addLink(rel, href string) document.Link {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	link := document.Link{ID: fmt.Sprintf("orig-%d", d.seq), Href: href, Rel: rel}
	d.links = append(d.links, link)
	return link
}

func (d *fakeDocument) Location(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.location, nil
}

func (d *fakeDocument) HasBody(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasBody, nil
}

func (d *fakeDocument) ScriptSources(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.scripts...), nil
}

func (d *fakeDocument) Links(ctx context.Context) ([]document.Link, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]document.Link(nil), d.links...), nil
}

func (d *fakeDocument) InsertStylesheetAfter(ctx context.Context, after document.Link, href, source string) (document.Link, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.indexLocked(after.ID)
	if idx < 0 {
		return document.Link{}, document.ErrLinkNotFound
	}
	d.seq++
	link := document.Link{ID: fmt.Sprintf("new-%d", d.seq), Href: href, Rel: "stylesheet", Source: source}
	d.links = append(d.links[:idx+1], append([]document.Link{link}, d.links[idx+1:]...)...)
	d.events = append(d.events, "insert:"+link.ID)
	return link, nil
}

func (d *fakeDocument) RemoveLink(ctx context.Context, link document.Link) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx := d.indexLocked(link.ID)
	if idx < 0 {
		return document.ErrLinkNotFound
	}
	d.links = append(d.links[:idx], d.links[idx+1:]...)
	d.events = append(d.events, "remove:"+link.ID)
	return nil
}

func (d *fakeDocument) StylesheetReady(ctx context.Context, link document.Link) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexLocked(link.ID) < 0 {
		return document.ErrLinkNotFound
	}
	d.checks[link.ID]++
	if d.readyAfter < 0 || d.checks[link.ID] <= d.readyAfter {
		return document.ErrStylesheetNotReady
	}
	return nil
}

func (d *fakeDocument) AddRootClass(ctx context.Context, class string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.classes[class] = true
	d.events = append(d.events, "add-class")
	return nil
}

func (d *fakeDocument) RemoveRootClass(ctx context.Context, class string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.classes, class)
	d.events = append(d.events, "remove-class")
	return nil
}

func (d *fakeDocument) InstallStyle(ctx context.Context, css string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.styles) == 0 {
		d.styles = append(d.styles, css)
	} else {
		d.styles[0] = css
	}
	return nil
}

func (d *fakeDocument) Reload(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reloads++
	d.events = append(d.events, "reload")
	if d.onReload != nil {
		d.onReload(d)
	}
	return nil
}

func (d *fakeDocument) Notify(ctx context.Context, message string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices = append(d.notices, message)
	return nil
}

func (d *fakeDocument) indexLocked(id string) int {
	for i, l := range d.links {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (d *fakeDocument) snapshotLinks() []document.Link {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]document.Link(nil), d.links...)
}

func (d *fakeDocument) reloadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reloads
}

func (d *fakeDocument) hasClass(class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classes[class]
}

func (d *fakeDocument) eventLog() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

// startLoop runs loop until the test ends.
func startLoop(t *testing.T, loop *Loop) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ctx
}

// onLoop runs fn on the loop and waits for it.
func onLoop(loop *Loop, fn func()) {
	done := make(chan struct{})
	if !loop.Post(func() {
		fn()
		close(done)
	}) {
		return
	}
	<-done
}
