// Package palette colours frames for terminal display.
//
// The colour of a letter depends only on which variant is active and on the
// letter's IsNew flag, never on the diff itself.
package palette

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archangelinux/portfolio/internal/morph"
	"github.com/archangelinux/portfolio/internal/rotator"
)

// Role classifies the active variant.
type Role int

const (
	RoleOther Role = iota
	RoleFirst
	RoleLast
)

func (r Role) String() string {
	switch r {
	case RoleFirst:
		return "first"
	case RoleLast:
		return "last"
	default:
		return "other"
	}
}

// RoleOf returns the role of f's variant. With a single variant the first
// role wins.
func RoleOf(f rotator.Frame) Role {
	switch {
	case f.IsFirst():
		return RoleFirst
	case f.IsLast():
		return RoleLast
	default:
		return RoleOther
	}
}

// Default colours.
const (
	DefaultFirst  = "#FFFFFF"
	DefaultAccent = "#FFA500"
)

// Palette holds the override colours.
type Palette struct {
	// First colours every letter while the first variant is active.
	First lipgloss.Color
	// Accent colours new letters, and every letter of the last variant.
	Accent lipgloss.Color
	// Plain disables styling entirely.
	Plain bool
}

// Default returns the stock palette.
func Default() Palette {
	return Palette{
		First:  lipgloss.Color(DefaultFirst),
		Accent: lipgloss.Color(DefaultAccent),
	}
}

// ColorFor returns the override colour for l under role. ok is false when the
// letter keeps the terminal's default colour.
func (p Palette) ColorFor(role Role, l morph.Letter) (c lipgloss.Color, ok bool) {
	switch {
	case role == RoleFirst:
		return p.First, true
	case role == RoleLast || l.IsNew:
		return p.Accent, true
	default:
		return "", false
	}
}

// Render returns the frame's letters as a styled string.
func (p Palette) Render(f rotator.Frame) string {
	if p.Plain {
		return f.Letters.String()
	}
	role := RoleOf(f)
	var b strings.Builder
	for _, l := range f.Letters {
		c, ok := p.ColorFor(role, l)
		if !ok {
			b.WriteString(l.Char)
			continue
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(c).Render(l.Char))
	}
	return b.String()
}
