package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/archangelinux/portfolio/internal/morph"
	"github.com/archangelinux/portfolio/internal/rotator"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Tick     int64
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s at tick %d: expected %s, got %s", e.Type, e.Tick, e.Expected, e.Actual)
}

var statFields = map[string]func(morph.Stats) int{
	"kept":       func(s morph.Stats) int { return s.Kept },
	"introduced": func(s morph.Stats) int { return s.Introduced },
	"forced":     func(s morph.Stats) int { return s.Forced },
	"dropped":    func(s morph.Stats) int { return s.Dropped },
	"distance":   func(s morph.Stats) int { return s.Distance },
}

func evaluateAssertion(frames []rotator.Frame, a Assertion) error {
	f, ok := frameAt(frames, a.Tick)
	if !ok {
		return fmt.Errorf("no frame for tick %d", a.Tick)
	}

	switch a.Type {
	case AssertNewLetters:
		return assertNewLetters(f, *a.Letters)
	case AssertIDs:
		return assertIDs(f, a.IDs)
	case AssertStep:
		if f.Step != *a.Step {
			return &AssertionError{Type: a.Type, Tick: f.Tick,
				Expected: fmt.Sprint(*a.Step), Actual: fmt.Sprint(f.Step)}
		}
		return nil
	case AssertStats:
		return assertStats(f, a.Stats)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func frameAt(frames []rotator.Frame, tick int64) (rotator.Frame, bool) {
	for _, f := range frames {
		if f.Tick == tick {
			return f, true
		}
	}
	return rotator.Frame{}, false
}

// NewLetters concatenates the letters of f flagged new, in display order.
func NewLetters(f rotator.Frame) string {
	var b strings.Builder
	for _, l := range f.Letters {
		if l.IsNew {
			b.WriteString(l.Char)
		}
	}
	return b.String()
}

func assertNewLetters(f rotator.Frame, want string) error {
	if got := NewLetters(f); got != want {
		return &AssertionError{Type: AssertNewLetters, Tick: f.Tick,
			Expected: fmt.Sprintf("%q", want), Actual: fmt.Sprintf("%q", got)}
	}
	return nil
}

func assertIDs(f rotator.Frame, want []uint64) error {
	got := make([]uint64, len(f.Letters))
	for i, l := range f.Letters {
		got[i] = uint64(l.ID)
	}
	if !slices.Equal(got, want) {
		return &AssertionError{Type: AssertIDs, Tick: f.Tick,
			Expected: fmt.Sprint(want), Actual: fmt.Sprint(got)}
	}
	return nil
}

func assertStats(f rotator.Frame, want map[string]int) error {
	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		get, ok := statFields[k]
		if !ok {
			return fmt.Errorf("unknown stats field %q", k)
		}
		if got := get(f.Stats); got != want[k] {
			return &AssertionError{Type: AssertStats, Tick: f.Tick,
				Expected: fmt.Sprintf("%s=%d", k, want[k]), Actual: fmt.Sprintf("%s=%d", k, got)}
		}
	}
	return nil
}
