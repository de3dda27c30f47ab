package palette

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/archangelinux/portfolio/internal/morph"
	"github.com/archangelinux/portfolio/internal/rotator"
)

func TestRoleOf(t *testing.T) {
	tests := []struct {
		name  string
		frame rotator.Frame
		want  Role
	}{
		{"first", rotator.Frame{Step: 0, Count: 7}, RoleFirst},
		{"last", rotator.Frame{Step: 6, Count: 7}, RoleLast},
		{"other", rotator.Frame{Step: 3, Count: 7}, RoleOther},
		{"single variant", rotator.Frame{Step: 0, Count: 1}, RoleFirst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleOf(tt.frame))
		})
	}
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "first", RoleFirst.String())
	assert.Equal(t, "last", RoleLast.String())
	assert.Equal(t, "other", RoleOther.String())
}

func TestColorFor(t *testing.T) {
	p := Default()
	kept := morph.Letter{Char: "a", ID: 1}
	fresh := morph.Letter{Char: "b", ID: 2, IsNew: true}

	c, ok := p.ColorFor(RoleFirst, fresh)
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color(DefaultFirst), c, "first variant overrides new letters")

	c, ok = p.ColorFor(RoleLast, kept)
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color(DefaultAccent), c)

	c, ok = p.ColorFor(RoleOther, fresh)
	assert.True(t, ok)
	assert.Equal(t, lipgloss.Color(DefaultAccent), c)

	_, ok = p.ColorFor(RoleOther, kept)
	assert.False(t, ok, "kept letters use the default colour")
}

func TestRender_PlainKeepsText(t *testing.T) {
	f := rotator.Frame{
		Step:    3,
		Count:   7,
		Letters: morph.Sequence{{Char: "a", ID: 0}, {Char: " ", ID: 1, IsNew: true}, {Char: "b", ID: 2}},
	}
	p := Default()
	p.Plain = true

	assert.Equal(t, "a b", p.Render(f))
}

func TestRender_UnstyledLettersPassThrough(t *testing.T) {
	f := rotator.Frame{
		Step:    3,
		Count:   7,
		Letters: morph.Sequence{{Char: "a", ID: 0}, {Char: "b", ID: 1}},
	}

	assert.Equal(t, "ab", Default().Render(f))
}
