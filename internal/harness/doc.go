// Package harness runs rotation scenarios and checks their traces.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: architect_override
//	description: "The e of architect is always shown as new"
//	variants: [archangel, architect]
//	ticks: 1
//	overrides:
//	  - target: architect
//	    chars: [e]
//	assertions:
//	  - type: new_letters
//	    tick: 1
//	    letters: "itect"
//
// # Assertion Types
//
//   - new_letters: the letters flagged new at a tick, concatenated in order
//   - ids: the letter IDs at a tick
//   - step: the active variant index at a tick
//   - stats: the transition statistics at a tick (only listed fields are checked)
//
// # Deterministic Testing
//
// Every scenario runs with a fixed run token, no timer (ticks are driven by
// Rotator.Advance) and an in-memory journal. Frames are read back from the
// journal, so the trace is exactly what a recorded rotation would replay.
package harness
