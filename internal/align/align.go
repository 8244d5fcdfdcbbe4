// Package align lines up two texts sentence by sentence and word by word.
package align

import (
	"fmt"

	"github.com/dgallion1/reportdiff/internal/segment"
)

// Alignment is the result of aligning two texts. Concatenating the text of A
// gives back the first input exactly, and likewise for B.
type Alignment struct {
	A     []Op
	B     []Op
	Pairs []Pair
}

// Changed reports whether any span differs between the two sides.
func (al Alignment) Changed() bool {
	for _, ops := range [][]Op{al.A, al.B} {
		for _, op := range ops {
			if op.Kind != Equal {
				return true
			}
		}
	}
	return false
}

// Aligner aligns texts using Segmenter to cut sentences into words. A nil
// Segmenter compares rune by rune.
type Aligner struct {
	Segmenter segment.Segmenter
}

// Align aligns old text a with new text b.
func (al Aligner) Align(a, b string) (Alignment, error) {
	sa := SplitSentences(a)
	sb := SplitSentences(b)
	pairs := MatchSentences(sa.Sentences, sb.Sentences)

	perA := make([][]Op, len(sa.Sentences))
	perB := make([][]Op, len(sb.Sentences))

	for _, p := range pairs {
		var textA, textB string
		if p.A != Unmatched {
			textA = sa.Sentences[p.A]
		}
		if p.B != Unmatched {
			textB = sb.Sentences[p.B]
		}

		opsA, opsB, err := WordDiff(textA, textB, al.Segmenter)
		if err != nil {
			return Alignment{}, fmt.Errorf("sentence pair (%d, %d): %w", p.A, p.B, err)
		}
		if p.A != Unmatched {
			perA[p.A] = opsA
		}
		if p.B != Unmatched {
			perB[p.B] = opsB
		}
	}

	return Alignment{
		A:     assemble(sa, perA),
		B:     assemble(sb, perB),
		Pairs: pairs,
	}, nil
}

// assemble lays out one side's sentence results in sentence order with the
// punctuation between them restored.
func assemble(s Split, per [][]Op) []Op {
	var ops []Op
	ops = append(ops, Op{Kind: Equal, Text: s.Leading})
	for i, sentOps := range per {
		ops = append(ops, sentOps...)
		if i < len(s.Separators) {
			ops = append(ops, Op{Kind: Equal, Text: s.Separators[i]})
		}
	}
	ops = append(ops, Op{Kind: Equal, Text: s.Trailing})
	return coalesce(ops)
}
