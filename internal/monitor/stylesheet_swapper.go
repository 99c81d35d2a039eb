package monitor

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aleister1102/livereload/internal/document"
	"github.com/rs/zerolog"
)

// TransitionCSS animates style changes while the loading class is on the
// root element.
func TransitionCSS(loadingClass string) string {
	rule := "transition: all .3s ease-out;"
	return "." + loadingClass + " * { " + rule + " -webkit-" + rule + " -moz-" + rule + " -o-" + rule + " }"
}

// SwapperConfig tunes stylesheet verification.
type SwapperConfig struct {
	LoadingClass    string
	VerifyBackoff   time.Duration
	ClassClearDelay time.Duration
	// MaxVerifyAttempts bounds verification per swap; 0 retries until the
	// new sheet is readable.
	MaxVerifyAttempts int
}

type swapState struct {
	incoming document.Link
	outgoing document.Link
	attempts int
}

// StylesheetSwapper replaces stylesheet links without reloading the page.
// The old link stays attached until the new sheet's rules are readable.
// Its methods must run on the loop.
type StylesheetSwapper struct {
	doc    document.Document
	loop   *Loop
	cfg    SwapperConfig
	logger zerolog.Logger
	now    func() time.Time

	links   map[string]document.Link
	pending map[string]*swapState

	verifyTimer *time.Timer
	clearTimer  *time.Timer
	// A timer callback only runs if its sequence number is still current,
	// so a stopped timer whose callback was already queued does nothing.
	verifySeq uint64
	clearSeq  uint64
}

// NewStylesheetSwapper creates a swapper for doc.
func NewStylesheetSwapper(doc document.Document, loop *Loop, cfg SwapperConfig, logger zerolog.Logger) *StylesheetSwapper {
	return &StylesheetSwapper{
		doc:     doc,
		loop:    loop,
		cfg:     cfg,
		logger:  logger.With().Str("component", "StylesheetSwapper").Logger(),
		now:     time.Now,
		links:   make(map[string]document.Link),
		pending: make(map[string]*swapState),
	}
}

// Track records the current link element for a stylesheet URL.
func (s *StylesheetSwapper) Track(url string, link document.Link) {
	s.links[url] = link
}

// CurrentLink returns the link currently serving url.
func (s *StylesheetSwapper) CurrentLink(url string) (document.Link, bool) {
	link, ok := s.links[url]
	return link, ok
}

// Pending returns the number of swaps waiting for verification.
func (s *StylesheetSwapper) Pending() int {
	return len(s.pending)
}

// Swap inserts a cache-busted copy of url after its current link and starts
// verification. A swap requested while another one for url is still pending
// drops the unverified link and keeps the original one until the newest copy
// is readable.
func (s *StylesheetSwapper) Swap(ctx context.Context, url string) error {
	current, ok := s.links[url]
	if !ok {
		s.logger.Warn().Str("url", url).Msg("No link element tracked for stylesheet, skipping swap")
		return nil
	}

	if err := s.doc.AddRootClass(ctx, s.cfg.LoadingClass); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to add loading class")
	}

	href := cacheBust(url, s.now())
	incoming, err := s.doc.InsertStylesheetAfter(ctx, current, href, url)
	if err != nil {
		if len(s.pending) == 0 {
			s.scheduleClassClear(ctx)
		}
		return err
	}
	s.links[url] = incoming

	if st, busy := s.pending[url]; busy {
		if err := s.doc.RemoveLink(ctx, st.incoming); err != nil && !errors.Is(err, document.ErrLinkNotFound) {
			s.logger.Warn().Err(err).Str("url", url).Msg("Failed to remove superseded link")
		}
		st.incoming = incoming
		st.attempts = 0
	} else {
		s.pending[url] = &swapState{incoming: incoming, outgoing: current}
	}

	s.logger.Info().Str("url", url).Str("href", href).Msg("Stylesheet swap started")
	s.verify(ctx)
	return nil
}

// verify checks every pending swap once and schedules one more pass if any
// remain.
func (s *StylesheetSwapper) verify(ctx context.Context) {
	s.stopVerifyTimer()

	urls := make([]string, 0, len(s.pending))
	for url := range s.pending {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	for _, url := range urls {
		st := s.pending[url]
		st.attempts++

		err := s.doc.StylesheetReady(ctx, st.incoming)
		switch {
		case err == nil:
			s.finish(ctx, url, st)
		case errors.Is(err, document.ErrLinkNotFound):
			s.logger.Warn().Str("url", url).Msg("New link disappeared, keeping old one")
			s.links[url] = st.outgoing
			delete(s.pending, url)
			if len(s.pending) == 0 {
				s.scheduleClassClear(ctx)
			}
		case s.cfg.MaxVerifyAttempts > 0 && st.attempts >= s.cfg.MaxVerifyAttempts:
			s.logger.Warn().Err(err).Str("url", url).Int("attempts", st.attempts).
				Msg("Stylesheet never became readable, removing old link anyway")
			s.finish(ctx, url, st)
		case !errors.Is(err, document.ErrStylesheetNotReady):
			s.logger.Debug().Err(err).Str("url", url).Msg("Stylesheet check failed")
		}
	}

	if len(s.pending) > 0 {
		seq := s.verifySeq
		s.verifyTimer = s.loop.AfterFunc(s.cfg.VerifyBackoff, func() {
			if seq != s.verifySeq {
				return
			}
			s.verifyTimer = nil
			s.verify(ctx)
		})
	}
}

func (s *StylesheetSwapper) finish(ctx context.Context, url string, st *swapState) {
	if err := s.doc.RemoveLink(ctx, st.outgoing); err != nil && !errors.Is(err, document.ErrLinkNotFound) {
		s.logger.Warn().Err(err).Str("url", url).Msg("Failed to remove old link")
	}
	delete(s.pending, url)
	s.logger.Info().Str("url", url).Int("attempts", st.attempts).Msg("Stylesheet swapped")

	if len(s.pending) == 0 {
		s.scheduleClassClear(ctx)
	}
}

func (s *StylesheetSwapper) scheduleClassClear(ctx context.Context) {
	s.stopClearTimer()
	seq := s.clearSeq
	s.clearTimer = s.loop.AfterFunc(s.cfg.ClassClearDelay, func() {
		if seq != s.clearSeq || len(s.pending) > 0 {
			return
		}
		s.clearTimer = nil
		if err := s.doc.RemoveRootClass(ctx, s.cfg.LoadingClass); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to clear loading class")
		}
	})
}

// Reset drops all links, pending swaps and timers.
func (s *StylesheetSwapper) Reset() {
	s.stopVerifyTimer()
	s.stopClearTimer()
	s.links = make(map[string]document.Link)
	s.pending = make(map[string]*swapState)
}

func (s *StylesheetSwapper) stopVerifyTimer() {
	s.verifySeq++
	if s.verifyTimer != nil {
		s.verifyTimer.Stop()
		s.verifyTimer = nil
	}
}

func (s *StylesheetSwapper) stopClearTimer() {
	s.clearSeq++
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
}

func cacheBust(url string, t time.Time) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "now=" + strconv.FormatInt(t.UnixMilli(), 10)
}
