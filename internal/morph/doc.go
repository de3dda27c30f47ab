// Package morph implements the identity-preserving letter diff behind the
// rotating name display.
//
// A Sequence is the list of letters currently on screen. Each Letter carries an
// opaque ID that survives across transitions when the same symbol is kept in
// place, so a renderer can animate it instead of redrawing it.
//
// ARCHITECTURE:
//
//	Allocator  - monotonic ID source owned by one Morpher
//	LCS/Diff   - maps the previous Sequence onto the next string
//	RuleTable  - post-diff overrides that force letters to be new
//	Morpher    - ties the three together and holds the current Sequence
//
// INVARIANTS:
//   - IDs within a Sequence are unique
//   - IDs are never reused by one Allocator, even for a reappearing symbol
//   - len(Sequence) equals the number of symbols in the string it represents
//   - Overrides only flip IsNew from false to true
//
// Nothing in this package is safe for concurrent mutation. Callers serialize
// transitions (see package rotator).
package morph
