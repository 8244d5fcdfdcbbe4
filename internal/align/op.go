package align

import "strings"

// Kind classifies a span of an aligned text.
type Kind int

const (
	Equal Kind = iota
	Replace
	Insert
	Delete
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Replace:
		return "replace"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is one span of one side of an alignment.
type Op struct {
	Kind Kind
	Text string
}

// Text concatenates the spans of ops.
func Text(ops []Op) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.Text)
	}
	return b.String()
}

// coalesce drops empty spans and joins neighbours of the same kind.
func coalesce(ops []Op) []Op {
	out := ops[:0:0]
	for _, op := range ops {
		if op.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == op.Kind {
			out[n-1].Text += op.Text
			continue
		}
		out = append(out, op)
	}
	return out
}
