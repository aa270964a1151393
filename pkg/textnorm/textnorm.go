package textnorm

import "strings"

// Normalize lowercases s, replaces every character outside [a-z0-9\s]
// with a space, collapses whitespace runs and trims the result.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	var builder strings.Builder
	builder.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
		} else {
			builder.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// Tokens returns the whitespace-delimited tokens of the normalized form
// of s. Empty or whitespace-only input yields no tokens.
func Tokens(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
