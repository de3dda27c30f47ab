package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ValidateResult is the JSON payload of the validate command.
type ValidateResult struct {
	Path       string `json:"path"`
	Variants   int    `json:"variants"`
	IntervalMS int    `json:"interval_ms"`
	Overrides  int    `json:"overrides"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a rotation config",
		Long: `Load a .yaml, .yml or .cue rotation config and check it.

Unknown fields, an empty variant list and non-positive intervals are errors.

Examples:
  morph validate rotation.yaml
  morph validate --format json rotation.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	p := newPrinter(opts, cmd)

	if _, err := os.Stat(path); err != nil {
		return p.Fail(ExitUsage, ErrCodeNotFound, "config not found", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return p.Fail(ExitFail, ErrCodeConfig, "invalid config", err)
	}

	res := ValidateResult{
		Path:       path,
		Variants:   len(cfg.Variants),
		IntervalMS: cfg.IntervalMS,
		Overrides:  cfg.Rules().Len(),
	}
	text := fmt.Sprintf("Config valid: %d variant(s), interval %s, %d override rule(s)\n",
		res.Variants, cfg.Interval(), res.Overrides)
	return p.Result(res, text)
}
