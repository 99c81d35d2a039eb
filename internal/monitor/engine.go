// Package monitor implements the change-detection and refresh engine: a
// heartbeat that probes watched resources with HEAD requests and reloads the
// page or hot-swaps stylesheets when their metadata changes.
package monitor

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/aleister1102/livereload/internal/common/errorwrapper"
	"github.com/aleister1102/livereload/internal/config"
	"github.com/aleister1102/livereload/internal/document"
	"github.com/aleister1102/livereload/internal/models"
	"github.com/aleister1102/livereload/internal/registry"
	"github.com/rs/zerolog"
)

// ErrUnsupportedProtocol is returned by Run for pages loaded from file: URLs,
// which carry no HTTP metadata to compare.
var ErrUnsupportedProtocol = errors.New("file protocol is not supported, serve the page over http")

// LoadedMessage is shown once when the page asks for an acknowledgement.
const LoadedMessage = "Live reload is loaded."

// Engine watches one page. It is single use: Run may be called once.
type Engine struct {
	doc        document.Document
	cfg        config.MonitorConfig
	logger     zerolog.Logger
	loop       *Loop
	registry   *registry.Registry
	discoverer *registry.Discoverer
	prober     *Prober
	swapper    *StylesheetSwapper
	dispatcher *Dispatcher

	discovered bool
	notified   bool
}

// NewEngine wires an engine for doc. client performs the metadata probes.
func NewEngine(doc document.Document, client HeadClient, cfg config.MonitorConfig, logger zerolog.Logger) *Engine {
	engineLogger := logger.With().Str("component", "Engine").Logger()
	loop := NewLoop()

	defaults := registry.Activation{
		Markup:  cfg.WatchMarkup,
		Styles:  cfg.WatchStyles,
		Scripts: cfg.WatchScripts,
		Notify:  cfg.Notify,
	}

	e := &Engine{
		doc:        doc,
		cfg:        cfg,
		logger:     engineLogger,
		loop:       loop,
		registry:   registry.New(),
		discoverer: registry.NewDiscoverer(defaults, cfg.ActivationMarker, logger),
		prober:     NewProber(client, loop, logger),
		swapper: NewStylesheetSwapper(doc, loop, SwapperConfig{
			LoadingClass:      cfg.LoadingClass,
			VerifyBackoff:     cfg.VerifyBackoff(),
			ClassClearDelay:   cfg.ClassClearDelay(),
			MaxVerifyAttempts: cfg.MaxVerifyAttempts,
		}, logger),
	}
	e.dispatcher = NewDispatcher(doc, e.swapper, e.resetPage, logger)
	return e
}

// Run starts the heartbeat and blocks until ctx is cancelled or Stop is
// called. It refuses to start for file: pages.
func (e *Engine) Run(ctx context.Context) error {
	location, err := e.doc.Location(ctx)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to read page location")
	}
	if u, err := url.Parse(location); err == nil && strings.EqualFold(u.Scheme, "file") {
		e.logger.Error().Str("location", location).Msg("Live reload doesn't support the file protocol, it needs http")
		return ErrUnsupportedProtocol
	}

	e.logger.Info().
		Str("location", location).
		Dur("interval", e.cfg.CheckInterval()).
		Msg("Live reload engine started")

	e.loop.Post(func() { e.heartbeat(ctx) })
	e.loop.Run(ctx)

	e.logger.Info().Str("location", location).Msg("Live reload engine stopped")
	return nil
}

// Stop ends Run. Probes still in flight complete without effect.
func (e *Engine) Stop() {
	e.loop.Stop()
}

func (e *Engine) heartbeat(ctx context.Context) {
	defer func() {
		if ctx.Err() == nil {
			e.loop.AfterFunc(e.cfg.CheckInterval(), func() { e.heartbeat(ctx) })
		}
	}()

	hasBody, err := e.doc.HasBody(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Failed to inspect document")
		return
	}
	if !hasBody {
		return
	}

	if !e.discovered {
		e.discover(ctx)
		if !e.discovered {
			return
		}
	}
	e.checkForChanges(ctx)
}

func (e *Engine) discover(ctx context.Context) {
	location, err := e.doc.Location(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Failed to read page location")
		return
	}

	found, err := e.discoverer.Discover(ctx, e.doc, location)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Resource discovery failed, retrying next tick")
		return
	}

	for _, res := range found.Resources {
		e.registry.Register(res.URL, res.Ref, res.Class)
	}
	for u, link := range found.Stylesheets {
		e.swapper.Track(u, link)
	}

	if err := e.doc.InstallStyle(ctx, TransitionCSS(e.cfg.LoadingClass)); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to install transition style")
	}

	if found.Activation.Notify && !e.notified {
		e.notified = true
		if err := e.doc.Notify(ctx, LoadedMessage); err != nil {
			e.logger.Warn().Err(err).Msg("Failed to show acknowledgement")
		}
	}

	e.discovered = true
}

// checkForChanges probes every watched URL that has no probe outstanding.
// The first successful probe of a URL seeds its snapshot.
func (e *Engine) checkForChanges(ctx context.Context) {
	for _, u := range e.registry.URLs() {
		e.prober.Probe(ctx, u, func(u string, snap models.Snapshot) {
			e.onProbe(ctx, u, snap)
		})
	}
}

func (e *Engine) onProbe(ctx context.Context, u string, snap models.Snapshot) {
	old, seeded := e.registry.SnapshotOf(u)
	e.registry.RecordSnapshot(u, snap)
	if !seeded {
		e.logger.Debug().Str("url", u).Str("etag", snap.ETag).Msg("Snapshot seeded")
		return
	}

	changed, class := models.HasChanged(old, snap)
	if !changed {
		return
	}

	e.logger.Info().Str("url", u).Str("class", class.String()).Msg("Resource changed")
	e.dispatcher.Dispatch(ctx, u, class)
}

// resetPage forgets everything tied to the page that was just reloaded; the
// next heartbeat discovers the new page.
func (e *Engine) resetPage() {
	e.registry.Reset()
	e.prober.Reset()
	e.swapper.Reset()
	e.discovered = false
}
