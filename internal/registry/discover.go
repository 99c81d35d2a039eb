package registry

import (
	"context"
	"strings"

	"github.com/aleister1102/livereload/internal/common/errorwrapper"
	"github.com/aleister1102/livereload/internal/document"
	"github.com/aleister1102/livereload/internal/models"
	"github.com/rs/zerolog"
)

// Discovery is the result of inspecting the document once.
type Discovery struct {
	Activation Activation
	Resources  []models.WatchedResource
	// Stylesheets maps each watched stylesheet URL to its current link.
	Stylesheets map[string]document.Link
}

// Discoverer enumerates the resources of a page.
type Discoverer struct {
	defaults Activation
	marker   string
	logger   zerolog.Logger
}

// NewDiscoverer creates a Discoverer. defaults applies when no script carries
// the activation marker.
func NewDiscoverer(defaults Activation, marker string, logger zerolog.Logger) *Discoverer {
	return &Discoverer{
		defaults: defaults,
		marker:   marker,
		logger:   logger.With().Str("component", "Discoverer").Logger(),
	}
}

// Discover reads the scripts and stylesheet links of doc, keeping only those
// local to pageURL.
func (d *Discoverer) Discover(ctx context.Context, doc document.Document, pageURL string) (*Discovery, error) {
	srcs, err := doc.ScriptSources(ctx)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to list scripts")
	}

	result := &Discovery{
		Activation:  d.defaults,
		Stylesheets: make(map[string]document.Link),
	}

	var scripts []models.WatchedResource
	for _, src := range srcs {
		if IsLocal(src, pageURL) {
			if abs, ok := d.resolve(src, pageURL); ok {
				scripts = append(scripts, models.WatchedResource{URL: abs, Ref: src, Class: models.ClassScript})
			}
		}
		if act, ok := ParseActivation(src, d.marker); ok {
			result.Activation = act
			d.logger.Debug().Str("src", src).Interface("activation", act).Msg("Activation marker found")
		}
	}

	act := result.Activation
	if act.Scripts {
		result.Resources = append(result.Resources, scripts...)
	}
	if act.Markup {
		result.Resources = append(result.Resources, models.WatchedResource{URL: pageURL, Ref: pageURL, Class: models.ClassMarkup})
	}
	if act.Styles {
		links, err := doc.Links(ctx)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to list links")
		}
		for _, link := range links {
			// A link swapped in by an earlier engine is watched under the
			// URL it replaced, not its cache-busted href.
			ref := link.Href
			if link.Source != "" {
				ref = link.Source
			}
			if !strings.Contains(strings.ToLower(link.Rel), "stylesheet") || !IsLocal(ref, pageURL) {
				continue
			}
			abs, ok := d.resolve(ref, pageURL)
			if !ok {
				continue
			}
			if _, seen := result.Stylesheets[abs]; !seen {
				result.Resources = append(result.Resources, models.WatchedResource{URL: abs, Ref: ref, Class: models.ClassStylesheet})
			}
			result.Stylesheets[abs] = link
		}
	}

	d.logger.Info().
		Int("resources", len(result.Resources)).
		Bool("markup", act.Markup).
		Bool("styles", act.Styles).
		Bool("scripts", act.Scripts).
		Msg("Discovery complete")

	return result, nil
}

func (d *Discoverer) resolve(ref, pageURL string) (string, bool) {
	abs, err := Resolve(ref, pageURL)
	if err != nil {
		d.logger.Warn().Err(err).Str("ref", ref).Msg("Skipping unresolvable reference")
		return "", false
	}
	return abs, true
}
