package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archangelinux/portfolio/internal/harness"
)

// ScenarioResult is the per-scenario entry of the test command's output.
type ScenarioResult struct {
	Path   string   `json:"path"`
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Frames int      `json:"frames"`
	Errors []string `json:"errors,omitempty"`
}

// TestSummary is the JSON payload of the test command.
type TestSummary struct {
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <scenario-file-or-dir>",
		Short: "Run rotation scenarios",
		Long: `Run one scenario file, or every .yaml/.yml scenario in a directory,
and check its assertions.

Examples:
  morph test internal/harness/testdata/scenarios
  morph test cat_cart.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runTest(opts *RootOptions, cmd *cobra.Command, path string) error {
	p := newPrinter(opts, cmd)

	files, err := scenarioFiles(path)
	if err != nil {
		return p.Fail(ExitUsage, ErrCodeNotFound, "scenario path not found", err)
	}
	if len(files) == 0 {
		return p.Fail(ExitUsage, ErrCodeNotFound, fmt.Sprintf("no scenarios found in %s", path), nil)
	}

	var summary TestSummary
	var b strings.Builder
	for _, file := range files {
		p.Debugf("running %s", file)

		s, err := harness.LoadScenario(file)
		if err != nil {
			return p.Fail(ExitUsage, ErrCodeScenario, "failed to load scenario "+file, err)
		}

		res, err := harness.Run(s)
		if err != nil {
			return p.Fail(ExitUsage, ErrCodeScenario, "failed to run scenario "+file, err)
		}

		entry := ScenarioResult{Path: file, Name: s.Name, Pass: res.Pass, Frames: len(res.Frames)}
		for _, e := range res.Errors {
			entry.Errors = append(entry.Errors, e.Error())
		}
		summary.Scenarios = append(summary.Scenarios, entry)

		if res.Pass {
			summary.Passed++
			fmt.Fprintf(&b, "PASS %s\n", s.Name)
			continue
		}
		summary.Failed++
		fmt.Fprintf(&b, "FAIL %s\n", s.Name)
		for _, e := range entry.Errors {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}
	fmt.Fprintf(&b, "\n%d passed, %d failed\n", summary.Passed, summary.Failed)

	if err := p.Result(summary, b.String()); err != nil {
		return err
	}
	if summary.Failed > 0 {
		// The summary already names each failure.
		ee := exitErr(ExitFail, fmt.Sprintf("%d scenario(s) failed", summary.Failed), nil)
		ee.Reported = true
		return ee
	}
	return nil
}

// scenarioFiles expands a directory into its YAML files, sorted by name.
func scenarioFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return files, nil
}
