package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/archangelinux/portfolio/internal/rotator"
)

// FormatTrace renders frames as the line-oriented text stored in golden files:
//
//	scenario: <name>
//	run: <run token>
//	tick=<n> step=<n> variant="<text>" kept=<n> introduced=<n> forced=<n> dropped=<n> distance=<n>
//	  "<char>":<id> ... (a trailing + marks a new letter)
func FormatTrace(name string, frames []rotator.Frame) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	if len(frames) > 0 {
		fmt.Fprintf(&b, "run: %s\n", frames[0].Run)
	}
	for _, f := range frames {
		fmt.Fprintf(&b, "tick=%d step=%d variant=%q kept=%d introduced=%d forced=%d dropped=%d distance=%d\n",
			f.Tick, f.Step, f.Variant,
			f.Stats.Kept, f.Stats.Introduced, f.Stats.Forced, f.Stats.Dropped, f.Stats.Distance)

		letters := make([]string, len(f.Letters))
		for i, l := range f.Letters {
			letters[i] = fmt.Sprintf("%q:%d", l.Char, l.ID)
			if l.IsNew {
				letters[i] += "+"
			}
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(letters, " "))
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check assertions. Trace mismatches
// fail the test through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, FormatTrace(name, result.Frames))
}
