package monitor

import (
	"context"
	"net/http"

	"github.com/aleister1102/livereload/internal/httpclient"
	"github.com/aleister1102/livereload/internal/models"
	"github.com/rs/zerolog"
)

// HeadClient issues HEAD requests.
type HeadClient interface {
	Head(ctx context.Context, url string, headers map[string]string) (*httpclient.HTTPResponse, error)
}

// ProbeCallback receives the snapshot of a completed probe on the loop.
type ProbeCallback func(url string, snap models.Snapshot)

var noCacheHeaders = map[string]string{
	"Cache-Control": "no-cache, no-store, max-age=0",
}

// Prober fetches resource metadata with at most one outstanding request per
// URL. Its methods must run on the loop.
type Prober struct {
	client   HeadClient
	loop     *Loop
	logger   zerolog.Logger
	inFlight map[string]struct{}
	// generation invalidates completions of probes issued before Reset.
	generation uint64
}

// NewProber creates a prober that posts completions onto loop.
func NewProber(client HeadClient, loop *Loop, logger zerolog.Logger) *Prober {
	return &Prober{
		client:   client,
		loop:     loop,
		logger:   logger.With().Str("component", "Prober").Logger(),
		inFlight: make(map[string]struct{}),
	}
}

// Probe issues a HEAD request for url unless one is already outstanding, in
// which case it returns false and does nothing. cb runs on the loop for any
// response other than 304 Not Modified; transport failures only log.
func (p *Prober) Probe(ctx context.Context, url string, cb ProbeCallback) bool {
	if _, busy := p.inFlight[url]; busy {
		return false
	}
	p.inFlight[url] = struct{}{}
	gen := p.generation

	go func() {
		resp, err := p.client.Head(ctx, url, noCacheHeaders)
		p.loop.Post(func() { p.complete(gen, url, resp, err, cb) })
	}()
	return true
}

func (p *Prober) complete(gen uint64, url string, resp *httpclient.HTTPResponse, err error, cb ProbeCallback) {
	if gen != p.generation {
		return
	}
	delete(p.inFlight, url)

	if err != nil {
		p.logger.Warn().Err(err).Str("url", url).Msg("Probe failed")
		return
	}
	if resp.StatusCode == http.StatusNotModified {
		p.logger.Debug().Str("url", url).Msg("Not modified")
		return
	}
	cb(url, models.NewSnapshot(resp.Headers))
}

// InFlight reports whether a probe for url is outstanding.
func (p *Prober) InFlight(url string) bool {
	_, ok := p.inFlight[url]
	return ok
}

// Reset forgets outstanding probes; their completions are ignored.
func (p *Prober) Reset() {
	p.generation++
	p.inFlight = make(map[string]struct{})
}
