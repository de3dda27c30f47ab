package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleTable_DefaultArchitect(t *testing.T) {
	alloc := NewAllocator()
	prev := Seed("archangel", alloc)

	seq := Diff(prev, "architect", alloc)
	require.False(t, seq[6].IsNew, "diff alone keeps the e")

	got := DefaultRules().Apply("architect", seq)

	for i, l := range got {
		if l.Char == "e" {
			assert.True(t, l.IsNew, "e at %d must be forced new", i)
		}
		assert.Equal(t, seq[i].ID, l.ID, "override must not change ids")
		assert.Equal(t, seq[i].Char, l.Char, "override must not change chars")
	}
	assert.False(t, seq[6].IsNew, "Apply must not mutate its input")
}

func TestRuleTable_OtherTargetsUntouched(t *testing.T) {
	seq := Seed("angelina", NewAllocator())

	got := DefaultRules().Apply("angelina", seq)

	assert.Equal(t, seq, got)
}

func TestRuleTable_NeverClearsNew(t *testing.T) {
	table := NewRuleTable(Rule{
		Name:   "none",
		Target: "ab",
		Match:  func(int, Letter) bool { return false },
	})
	seq := Sequence{{Char: "a", ID: 0, IsNew: true}, {Char: "b", ID: 1}}

	got := table.Apply("ab", seq)

	assert.True(t, got[0].IsNew)
	assert.False(t, got[1].IsNew)
}

func TestRuleTable_ForcePositions(t *testing.T) {
	table := NewRuleTable(ForcePositions("abc", 0, 2, 9))
	seq := Seed("abc", NewAllocator())

	got := table.Apply("abc", seq)

	assert.True(t, got[0].IsNew)
	assert.False(t, got[1].IsNew)
	assert.True(t, got[2].IsNew)
}

func TestRuleTable_AddAndRules(t *testing.T) {
	table := NewRuleTable()
	table.Add(ForceChars("x", "a"))
	table.Add(ForcePositions("x", 1))
	table.Add(Rule{Target: "x"}) // nil predicate is ignored

	rules := table.Rules("x")
	require.Len(t, rules, 2)
	assert.Equal(t, "force-chars", rules[0].Name)
	assert.Equal(t, "force-positions", rules[1].Name)
	assert.Equal(t, 2, table.Len())
	assert.Empty(t, table.Rules("y"))
}

func TestRuleTable_Nil(t *testing.T) {
	var table *RuleTable
	seq := Seed("abc", NewAllocator())

	assert.Equal(t, seq, table.Apply("abc", seq))
	assert.Zero(t, table.Len())
	assert.Nil(t, table.Rules("abc"))
}
