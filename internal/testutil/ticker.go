package testutil

import (
	"sync"
	"time"
)

// ManualTicker is a ticker driven by the test instead of the wall clock.
//
// Its channel is unbuffered, so Tick returns only once the receiving loop has
// taken the tick. This makes "tick, then observe the published frame" tests
// deterministic.
//
// Thread-safety: All methods are safe for concurrent use.
type ManualTicker struct {
	ch chan time.Time

	mu       sync.Mutex
	stopped  bool
	interval time.Duration
}

// NewManualTicker creates a ticker that only fires when Tick is called.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time)}
}

// Chan returns the tick channel.
func (m *ManualTicker) Chan() <-chan time.Time {
	return m.ch
}

// Stop marks the ticker stopped. Later calls to Tick report false.
func (m *ManualTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

// Stopped reports whether Stop has been called.
func (m *ManualTicker) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// SetInterval records the interval the ticker was created with.
func (m *ManualTicker) SetInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = d
}

// Interval returns the interval recorded by SetInterval.
func (m *ManualTicker) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// Tick delivers one tick and waits up to a second for it to be received.
// Returns false if the ticker is stopped or nobody received the tick.
func (m *ManualTicker) Tick() bool {
	if m.Stopped() {
		return false
	}
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(time.Second):
		return false
	}
}

// FixedRunID generates the same run token every time.
//
// Rotations started with the same FixedRunID produce byte-identical frames
// and journals, which golden comparisons rely on.
type FixedRunID struct {
	token string
}

// NewFixedRunID creates a generator for token. If token is empty, Generate
// returns "test-run-default".
func NewFixedRunID(token string) *FixedRunID {
	if token == "" {
		token = "test-run-default"
	}
	return &FixedRunID{token: token}
}

// Generate returns the fixed run token.
func (g *FixedRunID) Generate() string {
	return g.token
}
