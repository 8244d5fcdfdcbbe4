package align

import "errors"

var (
	// ErrAlphabetExhausted is returned when a sentence pair has more distinct
	// words than there are placeholder symbols.
	ErrAlphabetExhausted = errors.New("align: token alphabet exhausted")
)
