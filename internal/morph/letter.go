package morph

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Letter is one displayed symbol together with its identity.
type Letter struct {
	Char  string `json:"char"`
	ID    ID     `json:"id"`
	IsNew bool   `json:"isNew"`
}

// Sequence is the ordered list of letters on screen, left to right.
type Sequence []Letter

// String joins the letters back into the displayed string.
func (s Sequence) String() string {
	var b strings.Builder
	for _, l := range s {
		b.WriteString(l.Char)
	}
	return b.String()
}

// Chars returns the symbols of the sequence in order.
func (s Sequence) Chars() []string {
	chars := make([]string, len(s))
	for i, l := range s {
		chars[i] = l.Char
	}
	return chars
}

// IDs returns the letter IDs in order.
func (s Sequence) IDs() []ID {
	ids := make([]ID, len(s))
	for i, l := range s {
		ids[i] = l.ID
	}
	return ids
}

// NewCount returns how many letters are flagged new.
func (s Sequence) NewCount() int {
	n := 0
	for _, l := range s {
		if l.IsNew {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no backing array with s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Split breaks s into user-perceived symbols.
//
// The string is NFC-normalized first so that "e" + combining acute and the
// precomposed "é" compare equal, then split into grapheme clusters. Any
// content is accepted, including spaces and emoji.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	s = norm.NFC.String(s)
	chars := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		chars = append(chars, g.Str())
	}
	return chars
}

// Seed converts a string into a Sequence of fresh letters, all with
// IsNew=false. With a new allocator the IDs are 0..len-1.
func Seed(s string, alloc *Allocator) Sequence {
	chars := Split(s)
	seq := make(Sequence, len(chars))
	for i, c := range chars {
		seq[i] = Letter{Char: c, ID: alloc.Next()}
	}
	return seq
}
