// Package tags turns free-text tag input into canonical tag tokens.
package tags

import "strings"

// Normalize cleans a raw tag string into a list of tokens. Every character
// outside [A-Za-z0-9-,] is stripped (whitespace included), the remainder is
// split on commas when any are present, and candidates equal to "" or "-"
// are dropped. Order is preserved and duplicates are kept; the store treats
// duplicate associations as idempotent inserts.
func Normalize(raw string) []string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == ',':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	candidates := []string{cleaned}
	if strings.Contains(cleaned, ",") {
		candidates = strings.Split(cleaned, ",")
	}

	var out []string
	for _, cand := range candidates {
		if cand == "" || cand == "-" {
			continue
		}
		out = append(out, cand)
	}
	return out
}
