package harness

import (
	"context"
	"fmt"

	"github.com/archangelinux/portfolio/internal/config"
	"github.com/archangelinux/portfolio/internal/journal"
	"github.com/archangelinux/portfolio/internal/rotator"
	"github.com/archangelinux/portfolio/internal/testutil"
)

// Result contains the outcome of a scenario execution.
type Result struct {
	// Pass is true if all assertions passed.
	Pass bool

	// Frames holds the seed frame followed by one frame per tick, as read back
	// from the journal.
	Frames []rotator.Frame

	// Errors contains any assertion failures.
	Errors []error
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Open an in-memory journal
//  2. Build a rotator with a fixed run token and the scenario's overrides
//  3. Publish the seed frame, then Advance once per tick
//  4. Read the frames back and evaluate assertions
//
// Returns an error only for infrastructure failures. Assertion failures are
// reported in Result.Errors.
func Run(s *Scenario) (*Result, error) {
	ctx := context.Background()

	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	cfg := config.Config{
		Variants:   s.Variants,
		IntervalMS: config.DefaultIntervalMS,
		Overrides:  s.Overrides,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}

	r, err := rotator.New(cfg.Variants, cfg.Interval(), j,
		rotator.WithRules(cfg.Rules()),
		rotator.WithRunIDGenerator(testutil.NewFixedRunID(s.RunID)),
	)
	if err != nil {
		return nil, fmt.Errorf("create rotator: %w", err)
	}
	defer r.Stop()

	if err := j.Append(ctx, r.Snapshot()); err != nil {
		return nil, fmt.Errorf("record seed frame: %w", err)
	}
	for i := 0; i < s.Ticks; i++ {
		if _, err := r.Advance(ctx); err != nil {
			return nil, fmt.Errorf("tick %d: %w", i+1, err)
		}
	}

	frames, err := j.Frames(ctx, r.RunID())
	if err != nil {
		return nil, fmt.Errorf("read frames: %w", err)
	}

	result := &Result{Frames: frames, Pass: true}
	for i, a := range s.Assertions {
		if err := evaluateAssertion(frames, a); err != nil {
			result.Pass = false
			result.Errors = append(result.Errors, fmt.Errorf("assertion %d (%s): %w", i, a.Type, err))
		}
	}
	return result, nil
}
