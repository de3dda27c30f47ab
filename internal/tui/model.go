// Package tui shows a rotation full screen with bubbletea.
//
// The model drives the rotator through Advance on its own tea.Tick schedule
// instead of Rotator.Run, so every transition happens inside Update.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archangelinux/portfolio/internal/palette"
	"github.com/archangelinux/portfolio/internal/rotator"
)

type tickMsg time.Time

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

// Model is the bubbletea model of one rotation.
type Model struct {
	ctx   context.Context
	rot   *rotator.Rotator
	pal   palette.Palette
	frame rotator.Frame
	limit int64
	err   error
	done  bool
}

// New creates a model showing r's current frame. With ticks > 0 the program
// quits after that many transitions.
func New(ctx context.Context, r *rotator.Rotator, pal palette.Palette, ticks int) Model {
	return Model{
		ctx:   ctx,
		rot:   r,
		pal:   pal,
		frame: r.Snapshot(),
		limit: int64(ticks),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.rot.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	case tickMsg:
		f, err := m.rot.Advance(m.ctx)
		if err != nil && (errors.Is(err, rotator.ErrStopped) || m.ctx.Err() != nil) {
			m.done = true
			return m, tea.Quit
		}
		// A failed publish still transitions.
		m.frame = f
		m.err = err
		if m.limit > 0 && f.Tick >= m.limit {
			m.done = true
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(m.pal.Render(m.frame))
	b.WriteString("\n\n")

	status := fmt.Sprintf("  %d/%d  tick %d  %d new", m.frame.Step+1, m.frame.Count, m.frame.Tick, m.frame.Letters.NewCount())
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("  " + m.err.Error()))
		b.WriteString("\n")
	}
	if !m.done {
		b.WriteString(statusStyle.Render("  q to quit"))
		b.WriteString("\n")
	}
	return b.String()
}

// Frame returns the frame on display.
func (m Model) Frame() rotator.Frame {
	return m.frame
}

// Err returns the last publish error, if the latest transition had one.
func (m Model) Err() error {
	return m.err
}

// Done reports whether the model asked the program to quit.
func (m Model) Done() bool {
	return m.done
}
