package monitor

import (
	"context"

	"github.com/aleister1102/livereload/internal/document"
	"github.com/aleister1102/livereload/internal/models"
	"github.com/rs/zerolog"
)

// Action is what the dispatcher did about a change.
type Action string

const (
	ActionNone   Action = "none"
	ActionSwap   Action = "swap"
	ActionReload Action = "reload"
)

type refreshFunc func(ctx context.Context, url string) Action

// Dispatcher maps a changed resource's content class to a refresh action.
type Dispatcher struct {
	doc      document.Document
	swapper  *StylesheetSwapper
	onReload func()
	logger   zerolog.Logger
	table    map[models.ContentClass]refreshFunc
}

// NewDispatcher creates a dispatcher. onReload runs after every successful
// reload so the caller can drop state tied to the previous page.
func NewDispatcher(doc document.Document, swapper *StylesheetSwapper, onReload func(), logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		doc:      doc,
		swapper:  swapper,
		onReload: onReload,
		logger:   logger.With().Str("component", "Dispatcher").Logger(),
	}
	d.table = map[models.ContentClass]refreshFunc{
		models.ClassStylesheet: d.swapStylesheet,
		models.ClassMarkup:     d.reloadIfCurrentPage,
		models.ClassScript:     d.reload,
	}
	return d
}

// Dispatch refreshes url according to class. Unknown classes do nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, url string, class models.ContentClass) Action {
	fn, ok := d.table[class]
	if !ok {
		d.logger.Debug().Str("url", url).Str("class", class.String()).Msg("No refresh action for content class")
		return ActionNone
	}
	return fn(ctx, url)
}

func (d *Dispatcher) swapStylesheet(ctx context.Context, url string) Action {
	if _, ok := d.swapper.CurrentLink(url); !ok {
		d.logger.Warn().Str("url", url).Msg("Stylesheet changed but no link element is tracked for it")
		return ActionNone
	}
	if err := d.swapper.Swap(ctx, url); err != nil {
		d.logger.Warn().Err(err).Str("url", url).Msg("Stylesheet swap failed")
		return ActionNone
	}
	return ActionSwap
}

func (d *Dispatcher) reloadIfCurrentPage(ctx context.Context, url string) Action {
	location, err := d.doc.Location(ctx)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Failed to read page location")
		return ActionNone
	}
	if url != location {
		d.logger.Debug().Str("url", url).Str("location", location).Msg("Changed HTML is not the current page, ignoring")
		return ActionNone
	}
	return d.reload(ctx, url)
}

func (d *Dispatcher) reload(ctx context.Context, url string) Action {
	d.logger.Info().Str("url", url).Msg("Reloading page")
	if err := d.doc.Reload(ctx); err != nil {
		d.logger.Warn().Err(err).Msg("Page reload failed")
		return ActionNone
	}
	if d.onReload != nil {
		d.onReload()
	}
	return ActionReload
}
