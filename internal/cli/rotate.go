package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/archangelinux/portfolio/internal/journal"
	"github.com/archangelinux/portfolio/internal/palette"
	"github.com/archangelinux/portfolio/internal/rotator"
	"github.com/archangelinux/portfolio/internal/tui"
)

// RotateOptions holds flags for the rotate command.
type RotateOptions struct {
	*RootOptions
	Config   string
	Interval time.Duration
	Ticks    int
	Journal  string
	NoColor  bool
	TUI      bool

	// TickerFactory allows overriding the wall-clock ticker (for testing).
	TickerFactory rotator.TickerFactory

	// RunIDs allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs rotator.RunIDGenerator
}

// NewRotateCommand creates the rotate command.
func NewRotateCommand(rootOpts *RootOptions) *cobra.Command {
	return newRotateCommand(&RotateOptions{RootOptions: rootOpts})
}

func newRotateCommand(opts *RotateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Cycle through the variants",
		Long: `Cycle through the configured variants, printing one line per transition.

New letters are highlighted. The first variant is shown in the first colour
and the last variant entirely in the accent colour.

Examples:
  morph rotate
  morph rotate --config rotation.yaml --ticks 7
  morph rotate --interval 500ms --journal ./morph.db
  morph rotate --format json --ticks 3
  morph rotate --tui

Unset flags are read from MORPH_* environment variables, e.g. MORPH_INTERVAL=2s
or MORPH_NO_COLOR=true.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRotate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "rotation config file (.yaml, .yml or .cue)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "override the interval between transitions")
	cmd.Flags().IntVar(&opts.Ticks, "ticks", 0, "stop after this many transitions (0 runs until interrupted)")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record frames to this SQLite database")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colours")
	cmd.Flags().BoolVar(&opts.TUI, "tui", false, "full-screen display (q to quit)")

	return cmd
}

func runRotate(opts *RotateOptions, cmd *cobra.Command) error {
	setupLogging(opts.RootOptions, cmd.ErrOrStderr())
	pr := newPrinter(opts.RootOptions, cmd)

	if err := resolveFromEnv(cmd, opts); err != nil {
		return pr.Fail(ExitUsage, ErrCodeUsage, "failed to read environment", err)
	}
	if opts.TUI && opts.Format == "json" {
		return pr.Fail(ExitUsage, ErrCodeUsage, "--tui cannot be combined with --format json", nil)
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return pr.Fail(ExitFail, ErrCodeConfig, "failed to load config", err)
	}
	if opts.Interval != 0 {
		cfg.IntervalMS = int(opts.Interval / time.Millisecond)
	}
	if opts.Ticks < 0 {
		return pr.Fail(ExitUsage, ErrCodeUsage, "--ticks must not be negative", nil)
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	pal := cfg.PaletteStyle()
	pal.Plain = opts.NoColor
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)

	var pubs rotator.MultiPublisher
	if !opts.TUI {
		pubs = append(pubs, rotator.PublisherFunc(func(_ context.Context, f rotator.Frame) error {
			if opts.Format == "json" {
				return enc.Encode(f)
			}
			_, err := fmt.Fprintln(out, pal.Render(f))
			return err
		}))
	}

	if opts.Journal != "" {
		slog.Info("opening journal", "path", opts.Journal)
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return pr.Fail(ExitUsage, ErrCodeJournal, "failed to open journal", err)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()
		pubs = append(pubs, j)
	}

	var pub rotator.Publisher = pubs
	if opts.Ticks > 0 && !opts.TUI {
		// The rotator publishes nothing once ctx is cancelled.
		limit := int64(opts.Ticks)
		pub = rotator.PublisherFunc(func(ctx context.Context, f rotator.Frame) error {
			err := pubs.Publish(ctx, f)
			if f.Tick >= limit {
				cancel()
			}
			return err
		})
	}

	rotOpts := []rotator.Option{rotator.WithRules(cfg.Rules())}
	if opts.TickerFactory != nil {
		rotOpts = append(rotOpts, rotator.WithTickerFactory(opts.TickerFactory))
	}
	if opts.RunIDs != nil {
		rotOpts = append(rotOpts, rotator.WithRunIDGenerator(opts.RunIDs))
	}

	r, err := rotator.New(cfg.Variants, cfg.Interval(), pub, rotOpts...)
	if err != nil {
		return pr.Fail(ExitFail, ErrCodeRotation, "invalid rotation", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	slog.Debug("rotation starting", "run", r.RunID(), "variants", r.Variants(), "interval", cfg.Interval())
	if opts.TUI {
		return runRotateTUI(ctx, cmd, pr, r, pal, opts.Ticks)
	}

	err = r.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return pr.Fail(ExitFail, ErrCodeRotation, "rotation error", err)
	}

	slog.Debug("rotation stopped", "run", r.RunID())
	return nil
}

// runRotateTUI hands the rotation to bubbletea, which advances it on its own
// schedule.
func runRotateTUI(ctx context.Context, cmd *cobra.Command, pr *Printer, r *rotator.Rotator, pal palette.Palette, ticks int) error {
	defer r.Stop()

	if err := r.PublishSnapshot(ctx); err != nil {
		slog.Error("publish failed", "tick", 0, "error", err)
	}

	p := tea.NewProgram(tui.New(ctx, r, pal, ticks),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return pr.Fail(ExitFail, ErrCodeRotation, "display error", err)
	}
	if m, ok := final.(tui.Model); ok {
		slog.Debug("rotation stopped", "run", r.RunID(), "tick", m.Frame().Tick)
	}
	return nil
}
