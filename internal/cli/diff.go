package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archangelinux/portfolio/internal/morph"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	Config string
}

// DiffResult is the JSON payload of the diff command.
type DiffResult struct {
	From    string         `json:"from"`
	To      string         `json:"to"`
	Seed    morph.Sequence `json:"seed"`
	Letters morph.Sequence `json:"letters"`
	Stats   morph.Stats    `json:"stats"`
	NextID  morph.ID       `json:"next_id"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Show a single transition",
		Long: `Seed <from> and morph it into <to>, applying the configured overrides.

Each letter of <to> is listed with its id. Letters marked "new" either did
not survive from <from> or were forced new by an override.

Examples:
  morph diff cat cart
  morph diff archangel architect
  morph diff --format json angelina angelinux`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "config file providing overrides")

	return cmd
}

func runDiff(opts *DiffOptions, cmd *cobra.Command, from, to string) error {
	p := newPrinter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return p.Fail(ExitFail, ErrCodeConfig, "failed to load config", err)
	}

	m := morph.NewMorpher(from, cfg.Rules())
	seed := m.Current()
	next := m.Morph(to)
	res := DiffResult{
		From:    from,
		To:      m.Target(),
		Seed:    seed,
		Letters: next,
		Stats:   morph.Measure(seed, next),
		NextID:  m.Allocator().Peek(),
	}

	p.Debugf("%d override rule(s) for %q", len(cfg.Rules().Rules(to)), to)
	return p.Result(res, formatDiff(res))
}

func formatDiff(res DiffResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s\n", res.From, res.To)
	for _, l := range res.Letters {
		if l.IsNew {
			fmt.Fprintf(&b, "  %-2s id=%-3d new\n", l.Char, l.ID)
			continue
		}
		fmt.Fprintf(&b, "  %-2s id=%d\n", l.Char, l.ID)
	}
	fmt.Fprintf(&b, "kept=%d introduced=%d forced=%d dropped=%d distance=%d\n",
		res.Stats.Kept, res.Stats.Introduced, res.Stats.Forced, res.Stats.Dropped, res.Stats.Distance)
	fmt.Fprintf(&b, "next id=%d\n", res.NextID)
	return b.String()
}
