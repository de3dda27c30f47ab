package rotator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/archangelinux/portfolio/internal/morph"
)

// DefaultInterval is the cadence between transitions.
const DefaultInterval = 1500 * time.Millisecond

// ErrStopped is returned by Advance and PublishSnapshot once the rotator has
// been stopped.
var ErrStopped = errors.New("rotator stopped")

// Rotator advances through a fixed list of variants and publishes a Frame per
// transition.
//
// Thread-safety model:
//   - Advance, Snapshot, Stop: safe from any goroutine, serialized internally
//   - Run: call from at most one goroutine
//
// INVARIANTS:
//   - variants never change after construction
//   - step is always in [0, len(variants))
//   - at most one transition is in flight
type Rotator struct {
	variants  []string
	interval  time.Duration
	pub       Publisher
	rules     *morph.RuleTable
	newTicker TickerFactory
	runIDs    RunIDGenerator
	runID     string

	mu      sync.Mutex
	morpher *morph.Morpher
	current Frame
	stopped bool
	done    chan struct{}
}

// Option configures a Rotator.
type Option func(*Rotator)

// WithRules sets the override rules applied after every diff.
// Default: no overrides.
func WithRules(rules *morph.RuleTable) Option {
	return func(r *Rotator) {
		r.rules = rules
	}
}

// WithTickerFactory replaces the wall-clock ticker, typically with a manual
// one in tests.
func WithTickerFactory(f TickerFactory) Option {
	return func(r *Rotator) {
		r.newTicker = f
	}
}

// WithRunIDGenerator sets the generator for the run token.
// Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(r *Rotator) {
		r.runIDs = g
	}
}

// WithRunID fixes the run token.
func WithRunID(id string) Option {
	return func(r *Rotator) {
		r.runID = id
	}
}

// New creates a Rotator seeded with the first variant.
//
// Fails fast with an EMPTY_VARIANT_LIST error for no variants and an
// INVALID_INTERVAL error for a non-positive interval. The variants slice is
// copied. A nil publisher discards frames.
func New(variants []string, interval time.Duration, pub Publisher, opts ...Option) (*Rotator, error) {
	if len(variants) == 0 {
		return nil, morph.NewEmptyVariantListError()
	}
	if interval <= 0 {
		return nil, morph.NewInvalidIntervalError(interval)
	}
	if pub == nil {
		pub = Discard
	}

	r := &Rotator{
		variants:  slices.Clone(variants),
		interval:  interval,
		pub:       pub,
		newTicker: NewTimeTicker,
		runIDs:    UUIDv7Generator{},
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = r.runIDs.Generate()
	}

	r.morpher = morph.NewMorpher(r.variants[0], r.rules)
	r.current = Frame{
		Run:     r.runID,
		Step:    0,
		Count:   len(r.variants),
		Variant: r.variants[0],
		Letters: r.morpher.Current(),
	}
	return r, nil
}

// RunID returns the token tagging this rotation's frames.
func (r *Rotator) RunID() string {
	return r.runID
}

// Interval returns the cadence between transitions.
func (r *Rotator) Interval() time.Duration {
	return r.interval
}

// Variants returns a copy of the rotation list.
func (r *Rotator) Variants() []string {
	return slices.Clone(r.variants)
}

// Snapshot returns the frame currently on display.
func (r *Rotator) Snapshot() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.clone()
}

// Advance performs one transition and publishes its frame.
//
// The frame is returned even when publishing fails; the transition itself is
// not rolled back. Returns ErrStopped after Stop, and ctx.Err() once ctx is
// done, in both cases without transitioning.
func (r *Rotator) Advance(ctx context.Context) (Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return Frame{}, ErrStopped
	}
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	prev := r.current.Letters
	step := (r.current.Step + 1) % len(r.variants)
	variant := r.variants[step]
	letters := r.morpher.Morph(variant)

	r.current = Frame{
		Run:     r.runID,
		Tick:    r.current.Tick + 1,
		Step:    step,
		Count:   len(r.variants),
		Variant: variant,
		Letters: letters,
		Stats:   morph.Measure(prev, letters),
	}

	f := r.current.clone()
	if err := r.pub.Publish(ctx, f.clone()); err != nil {
		return f, fmt.Errorf("publish tick %d: %w", f.Tick, err)
	}
	return f, nil
}

// Run publishes the current frame, then advances once per tick until ctx is
// cancelled or Stop is called.
//
// Returns ctx.Err() on cancellation and nil after Stop. Publish failures are
// logged and the rotation continues.
func (r *Rotator) Run(ctx context.Context) error {
	logger := slog.With("run", r.runID)

	if err := r.PublishSnapshot(ctx); err != nil {
		if errors.Is(err, ErrStopped) {
			return ErrStopped
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.Stop()
			return ctxErr
		}
		logger.Error("publish failed", "tick", 0, "error", err)
	}

	ticker := r.newTicker(r.interval)
	defer ticker.Stop()

	logger.Info("rotator starting", "variants", len(r.variants), "interval", r.interval)
	for {
		select {
		case <-ctx.Done():
			logger.Info("rotator stopping: context cancelled")
			r.Stop()
			return ctx.Err()

		case <-r.done:
			logger.Info("rotator stopping: stopped")
			return nil

		case <-ticker.Chan():
			// select picks at random when a tick and cancellation are both ready.
			if err := ctx.Err(); err != nil {
				logger.Info("rotator stopping: context cancelled")
				r.Stop()
				return err
			}
			f, err := r.Advance(ctx)
			if errors.Is(err, ErrStopped) {
				logger.Info("rotator stopping: stopped")
				return nil
			}
			if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
				logger.Info("rotator stopping: context cancelled")
				r.Stop()
				return ctxErr
			}
			if err != nil {
				logger.Error("publish failed", "tick", f.Tick, "step", f.Step, "error", err)
				continue
			}
			logger.Debug("transition", "tick", f.Tick, "variant", f.Variant,
				"kept", f.Stats.Kept, "introduced", f.Stats.Introduced)
		}
	}
}

// Stop tears the rotation down. It waits for an in-flight transition to
// finish; afterwards no frame is published. Safe to call more than once.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	r.stopped = true
	close(r.done)
}

// PublishSnapshot publishes the frame on display without transitioning.
// Callers driving the rotation with Advance use it to emit the seeded frame.
// Nothing is published after Stop or once ctx is done.
func (r *Rotator) PublishSnapshot(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrStopped
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.pub.Publish(ctx, r.current.clone())
}
