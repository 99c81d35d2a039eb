// Package activation starts and stops the reload engine for a page and keeps
// it in line with the persisted enable flag.
package activation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrAlreadyRunning is returned by Start when an engine is active.
var ErrAlreadyRunning = errors.New("live reload is already running for this page")

// Engine is a runnable reload engine.
type Engine interface {
	Run(ctx context.Context) error
}

// EngineFactory builds a fresh engine for each start.
type EngineFactory func() Engine

// FlagStore reads the persisted enable flag.
type FlagStore interface {
	Enabled(ctx context.Context, port string) (bool, error)
}

// Controller owns at most one running engine per page.
type Controller struct {
	port      string
	newEngine EngineFactory
	store     FlagStore
	poll      time.Duration
	status    io.Writer
	logger    zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	outMu sync.Mutex
}

// NewController creates a controller for the page served on port. Status
// lines go to status as well as the log.
func NewController(port string, newEngine EngineFactory, store FlagStore, poll time.Duration, status io.Writer, logger zerolog.Logger) *Controller {
	if status == nil {
		status = io.Discard
	}
	return &Controller{
		port:      port,
		newEngine: newEngine,
		store:     store,
		poll:      poll,
		status:    status,
		logger:    logger.With().Str("component", "ActivationController").Str("port", port).Logger(),
	}
}

// Start launches a new engine. The engine stops when ctx is cancelled or
// Stop is called.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.start(ctx); err != nil {
		return err
	}
	c.say(EnabledMessage(c.port))
	return nil
}

func (c *Controller) start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		select {
		case <-c.done:
		default:
			return ErrAlreadyRunning
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine := c.newEngine()
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		defer cancel()
		if err := engine.Run(runCtx); err != nil {
			c.logger.Error().Err(err).Msg("Live reload engine exited")
			c.notice(ErrorNotice(fmt.Sprintf("Live reload stopped: %v", err)))
		}
	}()

	return nil
}

// Stop stops the running engine and waits for it. It is a no-op when nothing
// runs.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	c.say(DisabledMessage(c.port))
}

// Running reports whether an engine is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Follow applies the stored flag now and then on every poll until ctx is
// done. Only changes of the flag start or stop the engine, so an engine that
// exited on its own is not restarted until the flag is turned off and on
// again. Store errors are reported and never stop a running engine.
func (c *Controller) Follow(ctx context.Context) error {
	enabled, err := c.store.Enabled(ctx, c.port)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to read enable flag")
		c.notice(ErrorNotice("Failed to read live reload preference"))
	}
	if enabled {
		if err := c.start(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
			return err
		}
		c.say(InitializedMessage(c.port))
	} else {
		c.say(StatusMessage(c.port, false))
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	last := enabled
	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return nil
		case <-ticker.C:
			now, err := c.store.Enabled(ctx, c.port)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				c.logger.Warn().Err(err).Msg("Failed to poll enable flag")
				continue
			}
			if now == last {
				continue
			}
			last = now
			if now {
				if err := c.Start(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
					c.logger.Error().Err(err).Msg("Failed to start live reload")
				}
			} else {
				c.Stop()
			}
		}
	}
}

func (c *Controller) say(line string) {
	c.logger.Info().Msg(line)
	c.notice(line)
}

func (c *Controller) notice(line string) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintln(c.status, line)
}
