package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualTicker_TickDelivers(t *testing.T) {
	m := NewManualTicker()

	got := make(chan time.Time, 1)
	go func() {
		got <- <-m.Chan()
	}()

	assert.True(t, m.Tick())
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("tick was not delivered")
	}
}

func TestManualTicker_TickWithoutReceiver(t *testing.T) {
	m := NewManualTicker()
	assert.False(t, m.Tick(), "tick with no receiver should time out")
}

func TestManualTicker_Stop(t *testing.T) {
	m := NewManualTicker()
	assert.False(t, m.Stopped())

	m.Stop()

	assert.True(t, m.Stopped())
	assert.False(t, m.Tick())
}

func TestManualTicker_Interval(t *testing.T) {
	m := NewManualTicker()
	m.SetInterval(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, m.Interval())
}

func TestFixedRunID(t *testing.T) {
	assert.Equal(t, "run-1", NewFixedRunID("run-1").Generate())
	assert.Equal(t, "test-run-default", NewFixedRunID("").Generate())
}
