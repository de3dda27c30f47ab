package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archangelinux/portfolio/internal/harness"
	"github.com/archangelinux/portfolio/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	DB  string
	Run string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect a frame journal",
		Long: `List the runs recorded in a journal, or the frames of one run.

Examples:
  morph trace --db ./morph.db
  morph trace --db ./morph.db --run 01928f7e-...
  morph trace --db ./morph.db --run 01928f7e-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "path to journal database (required)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show the frames of this run")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	p := newPrinter(opts.RootOptions, cmd)

	// Opening would silently create an empty database.
	if _, err := os.Stat(opts.DB); err != nil {
		return p.Fail(ExitUsage, ErrCodeNotFound, "journal not found", err)
	}

	j, err := journal.Open(opts.DB)
	if err != nil {
		return p.Fail(ExitUsage, ErrCodeJournal, "failed to open journal", err)
	}
	defer j.Close()

	ctx := cmd.Context()

	if opts.Run == "" {
		runs, err := j.Runs(ctx)
		if err != nil {
			return p.Fail(ExitUsage, ErrCodeJournal, "failed to list runs", err)
		}
		var b strings.Builder
		if len(runs) == 0 {
			b.WriteString("No runs recorded.\n")
		}
		for _, r := range runs {
			fmt.Fprintf(&b, "%s frames=%d last_tick=%d variants=%d\n", r.Run, r.Frames, r.LastTick, r.Variants)
		}
		return p.Result(runs, b.String())
	}

	frames, err := j.Frames(ctx, opts.Run)
	if err != nil {
		return p.Fail(ExitUsage, ErrCodeJournal, "failed to read frames", err)
	}
	if len(frames) == 0 {
		return p.Fail(ExitFail, ErrCodeNotFound, fmt.Sprintf("run %q not found", opts.Run), nil)
	}

	p.Debugf("read %d frame(s) for run %s", len(frames), opts.Run)
	return p.Result(frames, string(harness.FormatTrace(opts.Run, frames)))
}
