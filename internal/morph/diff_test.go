package morph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLCS_Basic(t *testing.T) {
	matches := LCS(Split("cat"), Split("cart"))

	assert.Equal(t, []Match{{0, 0}, {1, 1}, {2, 3}}, matches)
}

func TestLCS_Empty(t *testing.T) {
	assert.Empty(t, LCS(nil, Split("abc")))
	assert.Empty(t, LCS(Split("abc"), nil))
}

func TestLCS_TieFavorsInsertion(t *testing.T) {
	// "ab" -> "ba": both letters are an LCS of length 1. Stepping back in next
	// on the tie keeps the "b".
	assert.Equal(t, []Match{{Prev: 1, Next: 0}}, LCS(Split("ab"), Split("ba")))

	// "aa" -> "a": the trailing "a" of prev is kept.
	assert.Equal(t, []Match{{Prev: 1, Next: 0}}, LCS(Split("aa"), Split("a")))
}

func TestLCS_AscendingNextOrder(t *testing.T) {
	matches := LCS(Split("architect of"), Split("architect of change"))
	require.Len(t, matches, 12)
	for i := 1; i < len(matches); i++ {
		assert.Less(t, matches[i-1].Next, matches[i].Next)
		assert.Less(t, matches[i-1].Prev, matches[i].Prev)
	}
}

func TestDiff_CatToCart(t *testing.T) {
	prev := Sequence{
		{Char: "c", ID: 0},
		{Char: "a", ID: 1},
		{Char: "t", ID: 2},
	}
	alloc := NewAllocatorAt(4)

	got := Diff(prev, "cart", alloc)

	want := Sequence{
		{Char: "c", ID: 0},
		{Char: "a", ID: 1},
		{Char: "r", ID: 4, IsNew: true},
		{Char: "t", ID: 2},
	}
	assert.Equal(t, want, got)
}

func TestDiff_EmptyPrevious(t *testing.T) {
	alloc := NewAllocatorAt(10)
	got := Diff(nil, "abc", alloc)

	require.Len(t, got, 3)
	assert.Equal(t, 3, got.NewCount())
	assert.Equal(t, []ID{10, 11, 12}, got.IDs())
}

func TestDiff_EmptyNext(t *testing.T) {
	alloc := NewAllocatorAt(3)
	prev := Seed("abc", NewAllocator())

	got := Diff(prev, "", alloc)

	assert.Empty(t, got)
	assert.Equal(t, ID(3), alloc.Peek(), "allocator must stay untouched")
}

func TestDiff_IdenticalIsNoop(t *testing.T) {
	alloc := NewAllocator()
	prev := Seed("archangelinux", alloc)
	before := alloc.Peek()

	got := Diff(prev, prev.String(), alloc)

	assert.Equal(t, prev.IDs(), got.IDs())
	assert.Zero(t, got.NewCount())
	assert.Equal(t, before, alloc.Peek())
}

func TestDiff_RepeatedLetters(t *testing.T) {
	alloc := NewAllocator()
	prev := Seed("ab", alloc)

	got := Diff(prev, "ba", alloc)

	assert.Equal(t, Sequence{
		{Char: "b", ID: 1},
		{Char: "a", ID: 2, IsNew: true},
	}, got)
}

func TestDiff_ReappearingLetterGetsFreshID(t *testing.T) {
	alloc := NewAllocator()
	seq := Seed("ax", alloc)
	seq = Diff(seq, "a", alloc)
	seq = Diff(seq, "ax", alloc)

	require.Len(t, seq, 2)
	assert.Equal(t, ID(0), seq[0].ID)
	assert.Equal(t, ID(2), seq[1].ID, "x must not reuse its old id 1")
	assert.True(t, seq[1].IsNew)
}

// TestDiff_Properties checks the output invariants over pairs drawn from a
// small corpus with repeated letters and spaces.
func TestDiff_Properties(t *testing.T) {
	corpus := []string{
		"", "a", "aa", "ab", "ba", "cat", "cart", "banana", "ananas",
		"angelina", "angelinux", "archangel", "architect", "architect of",
		"architect of change", "archangelinux", "  ", "a a a",
	}

	for _, from := range corpus {
		for _, to := range corpus {
			t.Run(fmt.Sprintf("%q->%q", from, to), func(t *testing.T) {
				alloc := NewAllocator()
				prev := Seed(from, alloc)
				issuedBefore := alloc.Peek()

				got := Diff(prev, to, alloc)
				chars := Split(to)

				// Length property
				require.Len(t, got, len(chars))

				prevByID := make(map[ID]Letter, len(prev))
				for _, l := range prev {
					prevByID[l.ID] = l
				}

				seen := make(map[ID]bool, len(got))
				for k, l := range got {
					// Char fidelity
					assert.Equal(t, chars[k], l.Char)

					// Id uniqueness
					assert.False(t, seen[l.ID], "duplicate id %d", l.ID)
					seen[l.ID] = true

					if l.IsNew {
						// Id monotonicity
						assert.GreaterOrEqual(t, l.ID, issuedBefore)
						continue
					}
					// Matched fidelity
					p, ok := prevByID[l.ID]
					require.True(t, ok, "matched id %d missing from previous", l.ID)
					assert.Equal(t, p.Char, l.Char)
				}
			})
		}
	}
}
