package query

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultKeywordRatio is the share of keywords a text must contain to pass
// FilterKeywords.
const DefaultKeywordRatio = 0.1

// FilterKeywords keeps the texts that contain at least ratio of keywords.
// With no keywords every text is kept.
func FilterKeywords(texts, keywords []string, ratio float64) []string {
	if len(keywords) == 0 {
		return texts
	}
	var out []string
	for _, t := range texts {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(t, kw) {
				hits++
			}
		}
		if float64(hits)/float64(len(keywords)) >= ratio {
			out = append(out, t)
		}
	}
	return out
}

// DedupeContained orders texts longest first and drops every text whose
// body (without surrounding "。") already appears in a longer or earlier one.
func DedupeContained(texts []string) []string {
	if len(texts) < 2 {
		return texts
	}
	sorted := append([]string(nil), texts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})

	out := sorted[:0:0]
	for i, t := range sorted {
		body := strings.Trim(t, "。")
		contained := false
		for _, longer := range sorted[:i] {
			if strings.Contains(longer, body) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, t)
		}
	}
	return out
}
