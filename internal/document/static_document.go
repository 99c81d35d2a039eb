package document

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/livereload/internal/common/errorwrapper"
	"github.com/aleister1102/livereload/internal/httpclient"
	"github.com/rs/zerolog"
)

// Fetcher retrieves page and stylesheet bodies for StaticDocument.
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string) (*httpclient.HTTPResponse, error)
}

type sheetState int

const (
	sheetLoading sheetState = iota
	sheetLoaded
	sheetFailed
)

// StaticDocument is a Document backed by a goquery model of the page HTML.
// Inserted stylesheets are downloaded in the background and count as ready
// once the download returns a 2xx status.
type StaticDocument struct {
	pageURL string
	fetcher Fetcher
	logger  zerolog.Logger

	mu       sync.Mutex
	doc      *goquery.Document
	seq      int
	sheets   map[string]sheetState
	reloads  int
	messages []string
}

// NewStaticDocument creates a document for pageURL. The page is fetched by
// Load or by the first HasBody call.
func NewStaticDocument(pageURL string, fetcher Fetcher, logger zerolog.Logger) *StaticDocument {
	return &StaticDocument{
		pageURL: pageURL,
		fetcher: fetcher,
		logger:  logger.With().Str("component", "StaticDocument").Str("page", pageURL).Logger(),
		sheets:  make(map[string]sheetState),
	}
}

// NewStaticDocumentFromHTML creates a document from markup already in hand.
func NewStaticDocumentFromHTML(pageURL, markup string, fetcher Fetcher, logger zerolog.Logger) (*StaticDocument, error) {
	d := NewStaticDocument(pageURL, fetcher, logger)
	doc, err := goquery.NewDocumentFromReader(bytes.NewBufferString(markup))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse HTML")
	}
	d.doc = doc
	return d, nil
}

// Load fetches and parses the page.
func (d *StaticDocument) Load(ctx context.Context) error {
	resp, err := d.fetcher.Get(ctx, d.pageURL, map[string]string{"Cache-Control": "no-cache"})
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorwrapper.NewStatusError(d.pageURL, resp.StatusCode, "load page")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return errorwrapper.WrapError(err, "failed to parse HTML")
	}

	d.mu.Lock()
	d.doc = doc
	d.seq = 0
	d.sheets = make(map[string]sheetState)
	d.mu.Unlock()

	d.logger.Debug().Int("bytes", len(resp.Body)).Msg("Page loaded")
	return nil
}

func (d *StaticDocument) Location(ctx context.Context) (string, error) {
	return d.pageURL, nil
}

// HasBody loads the page on first use, so a page that is not being served
// yet simply has no body.
func (d *StaticDocument) HasBody(ctx context.Context) (bool, error) {
	d.mu.Lock()
	loaded := d.doc != nil
	d.mu.Unlock()

	if !loaded && d.fetcher != nil {
		if err := d.Load(ctx); err != nil {
			d.logger.Debug().Err(err).Msg("Page not available yet")
			return false, nil
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc == nil {
		return false, nil
	}
	return d.doc.Find("body").Length() > 0, nil
}

func (d *StaticDocument) ScriptSources(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc == nil {
		return nil, nil
	}

	var srcs []string
	d.doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, _ := s.Attr("src"); src != "" {
			srcs = append(srcs, src)
		}
	})
	return srcs, nil
}

func (d *StaticDocument) Links(ctx context.Context) ([]Link, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc == nil {
		return nil, nil
	}

	var links []Link
	d.doc.Find("link").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr(IDAttribute)
		if !ok || id == "" {
			id = d.nextIDLocked()
			s.SetAttr(IDAttribute, id)
		}
		links = append(links, Link{
			ID:     id,
			Href:   s.AttrOr("href", ""),
			Rel:    s.AttrOr("rel", ""),
			Source: s.AttrOr(SourceAttribute, ""),
		})
	})
	return links, nil
}

func (d *StaticDocument) InsertStylesheetAfter(ctx context.Context, after Link, href, source string) (Link, error) {
	d.mu.Lock()
	old := d.findLinkLocked(after.ID)
	if old.Length() == 0 {
		d.mu.Unlock()
		return Link{}, ErrLinkNotFound
	}

	id := d.nextIDLocked()
	old.AfterHtml(fmt.Sprintf(`<link rel="stylesheet" type="text/css" href="%s" %s="%s" %s="%s">`,
		html.EscapeString(href), IDAttribute, id, SourceAttribute, html.EscapeString(source)))
	d.sheets[id] = sheetLoading
	d.mu.Unlock()

	go d.loadSheet(ctx, id, href)

	return Link{ID: id, Href: href, Rel: "stylesheet", Source: source}, nil
}

func (d *StaticDocument) loadSheet(ctx context.Context, id, href string) {
	state := sheetFailed
	resp, err := d.fetcher.Get(ctx, href, nil)
	switch {
	case err != nil:
		d.logger.Warn().Err(err).Str("href", href).Msg("Stylesheet download failed")
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		d.logger.Warn().Int("status_code", resp.StatusCode).Str("href", href).Msg("Stylesheet download returned error status")
	default:
		state = sheetLoaded
	}

	d.mu.Lock()
	if _, ok := d.sheets[id]; ok {
		d.sheets[id] = state
	}
	d.mu.Unlock()
}

func (d *StaticDocument) RemoveLink(ctx context.Context, link Link) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sel := d.findLinkLocked(link.ID)
	if sel.Length() == 0 {
		return ErrLinkNotFound
	}
	sel.Remove()
	delete(d.sheets, link.ID)
	return nil
}

// StylesheetReady reports whether the background download finished. A failed
// download is started again so a later check can succeed.
func (d *StaticDocument) StylesheetReady(ctx context.Context, link Link) error {
	d.mu.Lock()
	if d.findLinkLocked(link.ID).Length() == 0 {
		d.mu.Unlock()
		return ErrLinkNotFound
	}
	state, tracked := d.sheets[link.ID]
	if !tracked {
		// Links present in the original markup are already parsed.
		d.mu.Unlock()
		return nil
	}
	if state == sheetFailed {
		d.sheets[link.ID] = sheetLoading
	}
	d.mu.Unlock()

	switch state {
	case sheetLoaded:
		return nil
	case sheetFailed:
		go d.loadSheet(ctx, link.ID, link.Href)
	}
	return ErrStylesheetNotReady
}

func (d *StaticDocument) AddRootClass(ctx context.Context, class string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc != nil {
		d.doc.Find("html").AddClass(class)
	}
	return nil
}

func (d *StaticDocument) RemoveRootClass(ctx context.Context, class string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc != nil {
		d.doc.Find("html").RemoveClass(class)
	}
	return nil
}

func (d *StaticDocument) InstallStyle(ctx context.Context, css string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc == nil {
		return nil
	}
	if existing := d.doc.Find("style[" + StyleAttribute + "]"); existing.Length() > 0 {
		existing.First().SetText(css)
		return nil
	}
	head := d.doc.Find("head")
	if head.Length() == 0 {
		head = d.doc.Find("html")
	}
	head.AppendHtml(`<style type="text/css" ` + StyleAttribute + `="">` + css + `</style>`)
	return nil
}

// Reload fetches the page again and replaces the model.
func (d *StaticDocument) Reload(ctx context.Context) error {
	d.mu.Lock()
	d.reloads++
	n := d.reloads
	d.mu.Unlock()

	d.logger.Info().Int("reload", n).Msg("Reloading page")
	return d.Load(ctx)
}

func (d *StaticDocument) Notify(ctx context.Context, message string) error {
	d.mu.Lock()
	d.messages = append(d.messages, message)
	d.mu.Unlock()
	d.logger.Info().Msg(message)
	return nil
}

// HTML renders the current model.
func (d *StaticDocument) HTML() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.doc == nil {
		return "", nil
	}
	return d.doc.Html()
}

// Reloads returns how many times Reload was called.
func (d *StaticDocument) Reloads() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reloads
}

// Messages returns the notifications shown so far.
func (d *StaticDocument) Messages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages...)
}

func (d *StaticDocument) findLinkLocked(id string) *goquery.Selection {
	if d.doc == nil {
		return &goquery.Selection{}
	}
	return d.doc.Find("link").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(IDAttribute)
		return v == id
	})
}

func (d *StaticDocument) nextIDLocked() string {
	d.seq++
	return fmt.Sprintf("lr-%d", d.seq)
}
