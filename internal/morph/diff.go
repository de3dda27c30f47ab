package morph

// Match pairs a position in the previous sequence with a position in the
// next one that holds the same symbol.
type Match struct {
	Prev int
	Next int
}

// LCS returns the matches of a longest common subsequence of prev and next,
// in ascending Next order.
//
// Backtracking starts at (m, n). On unequal symbols it steps back in prev only
// when that keeps a strictly longer subsequence; on a tie it steps back in
// next. This tie-break decides which of several repeated letters is kept, so
// changing it changes which letters animate as new.
func LCS(prev, next []string) []Match {
	m, n := len(prev), len(next)
	if m == 0 || n == 0 {
		return nil
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if prev[i-1] == next[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	matches := make([]Match, dp[m][n])
	k := len(matches)
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case prev[i-1] == next[j-1]:
			k--
			matches[k] = Match{Prev: i - 1, Next: j - 1}
			i--
			j--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return matches
}

// Diff maps prev onto next and returns the new Sequence.
//
// Positions of next that belong to the LCS reuse the matched letter's ID with
// IsNew=false. Every other position gets a fresh ID from alloc and IsNew=true.
// An empty next yields an empty Sequence without touching alloc.
func Diff(prev Sequence, next string, alloc *Allocator) Sequence {
	chars := Split(next)
	out := make(Sequence, len(chars))
	if len(chars) == 0 {
		return out
	}

	reuse := make([]int, len(chars))
	for k := range reuse {
		reuse[k] = -1
	}
	for _, mt := range LCS(prev.Chars(), chars) {
		reuse[mt.Next] = mt.Prev
	}

	for k, c := range chars {
		if p := reuse[k]; p >= 0 {
			out[k] = Letter{Char: c, ID: prev[p].ID}
			continue
		}
		out[k] = Letter{Char: c, ID: alloc.Next(), IsNew: true}
	}
	return out
}
