package morph

// Morpher owns the allocator, the override table and the current Sequence of
// one rotating display.
//
// Not safe for concurrent use. The rotator serializes calls to Morph.
type Morpher struct {
	alloc   *Allocator
	rules   *RuleTable
	current Sequence
	target  string
}

// NewMorpher seeds the display with initial. rules may be nil.
func NewMorpher(initial string, rules *RuleTable) *Morpher {
	alloc := NewAllocator()
	return &Morpher{
		alloc:   alloc,
		rules:   rules,
		current: Seed(initial, alloc),
		target:  initial,
	}
}

// Morph transitions the display to next and returns the new Sequence.
func (m *Morpher) Morph(next string) Sequence {
	seq := Diff(m.current, next, m.alloc)
	seq = m.rules.Apply(next, seq)
	m.current = seq
	m.target = next
	return seq.Clone()
}

// Current returns a copy of the Sequence on display.
func (m *Morpher) Current() Sequence {
	return m.current.Clone()
}

// Target returns the string the current Sequence represents.
func (m *Morpher) Target() string {
	return m.target
}

// Allocator returns the allocator owned by this morpher.
func (m *Morpher) Allocator() *Allocator {
	return m.alloc
}
