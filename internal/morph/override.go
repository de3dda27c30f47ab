package morph

import "slices"

// Predicate selects letters of a transition output by position and value.
type Predicate func(pos int, l Letter) bool

// Rule forces the letters selected by Match to be flagged new whenever the
// rotation lands on Target.
type Rule struct {
	Name   string
	Target string
	Match  Predicate
}

// RuleTable holds override rules keyed by target variant.
//
// Rules run after Diff and may only flip IsNew from false to true. They never
// change IDs or symbols, so the Diff guarantees still hold after Apply.
type RuleTable struct {
	byTarget map[string][]Rule
}

// NewRuleTable creates a table holding rules in the order given.
func NewRuleTable(rules ...Rule) *RuleTable {
	t := &RuleTable{byTarget: make(map[string][]Rule)}
	for _, r := range rules {
		t.Add(r)
	}
	return t
}

// The stock override: every DefaultRuleChar of DefaultRuleTarget is shown as
// new.
const (
	DefaultRuleTarget = "architect"
	DefaultRuleChar   = "e"
)

// DefaultRules returns the overrides of the stock rotation.
func DefaultRules() *RuleTable {
	return NewRuleTable(ForceChars(DefaultRuleTarget, DefaultRuleChar))
}

// Add appends a rule. Rules with a nil predicate are ignored.
func (t *RuleTable) Add(r Rule) {
	if r.Match == nil {
		return
	}
	t.byTarget[r.Target] = append(t.byTarget[r.Target], r)
}

// Rules returns the rules registered for target, in insertion order.
func (t *RuleTable) Rules(target string) []Rule {
	if t == nil {
		return nil
	}
	return slices.Clone(t.byTarget[target])
}

// Len returns the total number of rules.
func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, rs := range t.byTarget {
		n += len(rs)
	}
	return n
}

// Apply returns a copy of seq with every letter selected by a rule for target
// flagged new. seq itself is not modified. A nil table is a no-op.
func (t *RuleTable) Apply(target string, seq Sequence) Sequence {
	out := seq.Clone()
	if t == nil {
		return out
	}
	rules := t.byTarget[target]
	if len(rules) == 0 {
		return out
	}
	for pos, l := range out {
		if l.IsNew {
			continue
		}
		for _, r := range rules {
			if r.Match(pos, l) {
				out[pos].IsNew = true
				break
			}
		}
	}
	return out
}

// ForceChars builds a rule flagging every occurrence of chars in target as new.
func ForceChars(target string, chars ...string) Rule {
	set := make(map[string]struct{}, len(chars))
	for _, c := range chars {
		for _, s := range Split(c) {
			set[s] = struct{}{}
		}
	}
	return Rule{
		Name:   "force-chars",
		Target: target,
		Match: func(_ int, l Letter) bool {
			_, ok := set[l.Char]
			return ok
		},
	}
}

// ForcePositions builds a rule flagging the letters at the given zero-based
// positions of target as new. Out-of-range positions never match.
func ForcePositions(target string, positions ...int) Rule {
	set := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		set[p] = struct{}{}
	}
	return Rule{
		Name:   "force-positions",
		Target: target,
		Match: func(pos int, _ Letter) bool {
			_, ok := set[pos]
			return ok
		},
	}
}
