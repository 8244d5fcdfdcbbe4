package align

import (
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dgallion1/reportdiff/internal/segment"
)

// symbols is the placeholder alphabet words are mapped onto before diffing.
const symbols = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// WordDiff diffs two sentences word by word. a is the old text and b the new
// one: words only in a come back as Delete on the a side, words only in b as
// Insert on the b side, and changed runs as Replace on both. A replaced run
// whose two sides are both plain numbers is reported as Equal.
func WordDiff(a, b string, seg segment.Segmenter) (opsA, opsB []Op, err error) {
	switch {
	case a == "" && b == "":
		return nil, nil, nil
	case b == "":
		return []Op{{Kind: Delete, Text: a}}, nil, nil
	case a == "":
		return nil, []Op{{Kind: Insert, Text: b}}, nil
	}

	wordsA := cut(seg, a)
	wordsB := cut(seg, b)

	// Autojunk is off: with a small alphabet every symbol of a long sentence
	// would count as popular and nothing would match.
	enc := newEncoder()
	symA, err := enc.encode(wordsA)
	if err != nil {
		return nil, nil, err
	}
	symB, err := enc.encode(wordsB)
	if err != nil {
		return nil, nil, err
	}

	for _, oc := range difflib.NewMatcherWithJunk(symA, symB, false, nil).GetOpCodes() {
		textA := strings.Join(wordsA[oc.I1:oc.I2], "")
		textB := strings.Join(wordsB[oc.J1:oc.J2], "")

		switch oc.Tag {
		case 'e':
			opsA = append(opsA, Op{Kind: Equal, Text: textA})
			opsB = append(opsB, Op{Kind: Equal, Text: textB})
		case 'd':
			opsA = append(opsA, Op{Kind: Delete, Text: textA})
		case 'i':
			opsB = append(opsB, Op{Kind: Insert, Text: textB})
		case 'r':
			kind := Replace
			if isNumber(textA) && isNumber(textB) {
				kind = Equal
			}
			opsA = append(opsA, Op{Kind: kind, Text: textA})
			opsB = append(opsB, Op{Kind: kind, Text: textB})
		}
	}
	return coalesce(opsA), coalesce(opsB), nil
}

// cut segments text, falling back to one token per rune when the segmenter
// does not reproduce the text exactly.
func cut(seg segment.Segmenter, text string) []string {
	if seg != nil {
		words := seg.Cut(text)
		if strings.Join(words, "") == text {
			return words
		}
	}
	return segment.Runes.Cut(text)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// encoder assigns one placeholder symbol per distinct word, shared by both
// sides of a pair.
type encoder struct {
	index map[string]string
}

func newEncoder() *encoder {
	return &encoder{index: make(map[string]string)}
}

func (e *encoder) encode(words []string) ([]string, error) {
	out := make([]string, len(words))
	for i, w := range words {
		sym, ok := e.index[w]
		if !ok {
			if len(e.index) == len(symbols) {
				return nil, ErrAlphabetExhausted
			}
			sym = symbols[len(e.index) : len(e.index)+1]
			e.index[w] = sym
		}
		out[i] = sym
	}
	return out, nil
}
