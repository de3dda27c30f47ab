package morph

import "github.com/agnivade/levenshtein"

// Stats summarizes one transition.
type Stats struct {
	Kept       int `json:"kept"`       // IDs carried over from prev
	Introduced int `json:"introduced"` // fresh IDs
	Forced     int `json:"forced"`     // carried-over IDs flagged new by an override
	Dropped    int `json:"dropped"`    // IDs of prev that disappeared
	Distance   int `json:"distance"`   // edit distance between the two strings
}

// Measure compares two consecutive sequences.
func Measure(prev, next Sequence) Stats {
	seen := make(map[ID]struct{}, len(prev))
	for _, l := range prev {
		seen[l.ID] = struct{}{}
	}

	var st Stats
	for _, l := range next {
		if _, ok := seen[l.ID]; !ok {
			st.Introduced++
			continue
		}
		st.Kept++
		if l.IsNew {
			st.Forced++
		}
	}
	st.Dropped = len(prev) - st.Kept
	st.Distance = levenshtein.ComputeDistance(prev.String(), next.String())
	return st
}
