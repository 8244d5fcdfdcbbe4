package align

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Split is a text cut into sentences. Separators[i] sits between
// Sentences[i] and Sentences[i+1]; Leading and Trailing are the punctuation
// before the first and after the last sentence. Joining them in order gives
// back the original text.
type Split struct {
	Sentences  []string
	Separators []string
	Leading    string
	Trailing   string
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) || r == '_'
}

// SplitSentences cuts text at every run of non-word runes. Runs are slices
// of text, so invalid UTF-8 survives a Join unchanged.
func SplitSentences(text string) Split {
	var (
		runs  []string
		words []bool
	)
	runStart := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		w := isWordRune(r)
		if i == 0 {
			words = append(words, w)
		} else if w != words[len(words)-1] {
			runs = append(runs, text[runStart:i])
			runStart = i
			words = append(words, w)
		}
		i += size
	}
	if len(text) == 0 {
		return Split{}
	}
	runs = append(runs, text[runStart:])

	var s Split
	start, end := 0, len(runs)
	if !words[0] {
		s.Leading = runs[0]
		start = 1
	}
	if end > start && !words[end-1] {
		s.Trailing = runs[end-1]
		end--
	}
	for k := start; k < end; k++ {
		if words[k] {
			s.Sentences = append(s.Sentences, runs[k])
		} else {
			s.Separators = append(s.Separators, runs[k])
		}
	}
	return s
}

// Join rebuilds the text the split was made from.
func (s Split) Join() string {
	var b strings.Builder
	b.WriteString(s.Leading)
	for i, sent := range s.Sentences {
		b.WriteString(sent)
		if i < len(s.Separators) {
			b.WriteString(s.Separators[i])
		}
	}
	b.WriteString(s.Trailing)
	return b.String()
}
