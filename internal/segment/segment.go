// Package segment splits text into words.
package segment

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-ego/gse"
)

// Segmenter cuts text into tokens whose concatenation is the input text.
type Segmenter interface {
	Cut(text string) []string
}

// Func adapts a plain function to a Segmenter.
type Func func(text string) []string

// Cut calls f(text).
func (f Func) Cut(text string) []string { return f(text) }

// Runes is a Segmenter that yields one token per rune. Invalid UTF-8 bytes
// come back unchanged, one per token.
var Runes = Func(func(text string) []string {
	out := make([]string, 0, len(text))
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		out = append(out, text[i:i+size])
		i += size
	}
	return out
})

// Dictionary segments Chinese text with the gse dictionary segmenter. It is
// safe for concurrent use once constructed.
type Dictionary struct {
	seg gse.Segmenter
}

// New loads the embedded Chinese dictionary plus any user dictionaries.
// User dictionary files use the gse text format: word, frequency and an
// optional part of speech per line.
func New(userDicts ...string) (*Dictionary, error) {
	d := &Dictionary{}
	if err := d.seg.LoadDictEmbed(); err != nil {
		return nil, fmt.Errorf("load embedded dictionary: %w", err)
	}
	for _, path := range userDicts {
		if path == "" {
			continue
		}
		if err := d.seg.LoadDict(path); err != nil {
			return nil, fmt.Errorf("load user dictionary %s: %w", path, err)
		}
	}
	return d, nil
}

// Cut segments text in precise mode with HMM enabled for unknown words.
func (d *Dictionary) Cut(text string) []string {
	return d.seg.Cut(text, true)
}
