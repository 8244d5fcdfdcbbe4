package align

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// NormEditDistance is the rune edit distance between s and t divided by
// their mean rune length. Two empty strings are at distance 0.
func NormEditDistance(s, t string) float64 {
	n := utf8.RuneCountInString(s) + utf8.RuneCountInString(t)
	if n == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(s, t)) / (float64(n) / 2)
}

// Cost scores how unlike two sentences are. Sentences that open with the
// same clause score low even when their tails differ.
func Cost(a, b string) float64 {
	return math.Min(NormEditDistance(a, b), NormEditDistance(firstClause(a), firstClause(b)))
}

func firstClause(s string) string {
	if i := strings.Index(s, "。"); i >= 0 {
		return s[:i]
	}
	return s
}
