package analyzer

import (
	"strings"
	"unicode"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// Segment groups fragments into labelled pages. A blank fragment closes the
// page being buffered; the label is taken from the page footer when it is a
// numeral, from the first line otherwise, and the first page without a
// footer numeral becomes the cover.
func Segment(fragments []doctree.Fragment) *doctree.PageSet {
	pages := doctree.NewPageSet()

	var cache []doctree.Fragment
	inPage := false

	flush := func() {
		label := strings.TrimSpace(cache[len(cache)-1].Text)
		content := cache[:len(cache)-1]

		if !isPageNumeral(label) {
			if pages.Len() == 0 {
				label = doctree.CoverLabel
				content = cache
			} else {
				label = strings.TrimSpace(cache[0].Text)
				content = cache[1:]
			}
		}

		pages.Set(label, append([]doctree.Fragment(nil), content...))
		cache = nil
		inPage = false
	}

	// The trailing blank terminator flushes the final page.
	stream := append(append([]doctree.Fragment(nil), fragments...), doctree.Fragment{})
	for _, f := range stream {
		if strings.TrimSpace(f.Text) == "" {
			if inPage {
				flush()
			}
			continue
		}
		inPage = true
		cache = append(cache, f)
	}

	return pages
}

// isPageNumeral reports whether a footer line looks like a page number:
// all numeric, or starting with a roman numeral character.
func isPageNumeral(s string) bool {
	return isNumeric(s) || isRomanLabel(s)
}

// isNumeric reports whether s is non-empty and made only of number runes.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func isRomanLabel(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case 'I', 'V', 'X':
		return true
	}
	return false
}

// IsBodyPage reports whether a page label is a body page (numeric).
func IsBodyPage(label string) bool {
	return isNumeric(label)
}

// DocumentName joins the first two lines of the cover page.
func DocumentName(pages *doctree.PageSet) string {
	cover, ok := pages.Get(doctree.CoverLabel)
	if !ok {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(cover) && i < 2; i++ {
		b.WriteString(cover[i].Text)
	}
	return b.String()
}
