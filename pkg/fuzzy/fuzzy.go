package fuzzy

// Match reports whether a query token matches a candidate token: either
// string containing the other counts, otherwise the edit distance must
// stay within a length-adaptive threshold. Short query tokens get a
// tighter threshold so e.g. "pg" does not drag in everything two edits
// away.
func Match(query, candidate string) bool {
	if query == "" || candidate == "" {
		return false
	}
	if containsEither(query, candidate) {
		return true
	}
	threshold := 2
	if len(query) <= 4 {
		threshold = 1
	}
	return Distance(query, candidate) <= threshold
}

func containsEither(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for i := 0; i+len(a) <= len(b); i++ {
		if b[i:i+len(a)] == a {
			return true
		}
	}
	return false
}

// Distance is the Levenshtein edit distance between a and b: unit-cost
// insertions, deletions and substitutions, no transposition discount.
func Distance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
