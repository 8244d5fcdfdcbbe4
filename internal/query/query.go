// Package query selects text out of a document outline with short path
// expressions such as "c5/c2/ps1" or "c4/c1/p1s1,p2s1,p3s1".
//
// A path is a list of step groups separated by "/"; the steps of a group are
// separated by ",". Each group is applied to every item produced by the
// previous one, in order. Node steps walk the tree:
//
//	c<N>   the N-th child (1-based; negative counts from the end)
//	c      every child
//
// Text steps read the current nodes and may only appear in the last group:
//
//	t          the title without its leading numbering
//	p<N>, p    the N-th or every paragraph
//	p<N>s<M>…  sentences M… of the N-th paragraph (p s<M> for every paragraph)
//
// Out-of-range indices select nothing.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

var (
	// ErrInvalidPath is returned for malformed path expressions.
	ErrInvalidPath = errors.New("query: invalid path")
)

// StepKind is what a step selects.
type StepKind int

const (
	StepChild StepKind = iota
	StepTitle
	StepParagraph
)

// Step is one parsed step. Index 0 means "all".
type Step struct {
	Kind      StepKind
	Index     int
	Sentences []int
}

func (s Step) isText() bool { return s.Kind != StepChild }

// Path is a parsed path expression.
type Path struct {
	raw    string
	groups [][]Step
}

// String returns the expression the path was parsed from.
func (p Path) String() string { return p.raw }

// Groups returns the parsed step groups.
func (p Path) Groups() [][]Step { return p.groups }

// Parse parses a path expression.
func Parse(expr string) (Path, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Path{}, fmt.Errorf("%w: empty", ErrInvalidPath)
	}

	parts := strings.Split(expr, "/")
	groups := make([][]Step, 0, len(parts))
	for gi, part := range parts {
		var group []Step
		for _, raw := range strings.Split(part, ",") {
			st, err := parseStep(strings.TrimSpace(raw))
			if err != nil {
				return Path{}, fmt.Errorf("%w in %q", err, expr)
			}
			group = append(group, st)
		}

		text := group[0].isText()
		for _, st := range group[1:] {
			if st.isText() != text {
				return Path{}, fmt.Errorf("%w: group %q mixes node and text steps", ErrInvalidPath, part)
			}
		}
		last := gi == len(parts)-1
		if text != last {
			return Path{}, fmt.Errorf("%w: %q must end with exactly one text group", ErrInvalidPath, expr)
		}
		groups = append(groups, group)
	}
	return Path{raw: expr, groups: groups}, nil
}

// MustParse is like Parse but panics on error. For paths fixed at compile time.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func parseStep(s string) (Step, error) {
	switch {
	case s == "":
		return Step{}, fmt.Errorf("%w: empty step", ErrInvalidPath)

	case s == "t":
		return Step{Kind: StepTitle}, nil

	case s[0] == 'c':
		idx, err := parseIndex(s[1:], true)
		if err != nil {
			return Step{}, fmt.Errorf("%w: step %q", err, s)
		}
		return Step{Kind: StepChild, Index: idx}, nil

	case s[0] == 'p':
		rest := s[1:]
		var sents []int
		if i := strings.IndexByte(rest, 's'); i >= 0 {
			for _, part := range strings.Split(rest[i+1:], "s") {
				n, err := parseIndex(part, false)
				if err != nil {
					return Step{}, fmt.Errorf("%w: step %q", err, s)
				}
				sents = append(sents, n)
			}
			rest = rest[:i]
		}
		idx, err := parseIndex(rest, true)
		if err != nil {
			return Step{}, fmt.Errorf("%w: step %q", err, s)
		}
		return Step{Kind: StepParagraph, Index: idx, Sentences: sents}, nil
	}
	return Step{}, fmt.Errorf("%w: unknown step %q", ErrInvalidPath, s)
}

func parseIndex(s string, allowAll bool) (int, error) {
	if s == "" {
		if allowAll {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: missing index", ErrInvalidPath)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad index %q", ErrInvalidPath, s)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: indices start at 1", ErrInvalidPath)
	}
	return n, nil
}

// pick maps a 1-based (or negative, from the end) index onto a list of
// length n.
func pick(n, index int) (int, bool) {
	i := index - 1
	if index < 0 {
		i = n + index
	}
	return i, i >= 0 && i < n
}

// Select evaluates the path against tree and returns the selected texts in
// document order.
func (p Path) Select(tree *doctree.Tree) []string {
	if len(p.groups) == 0 || len(tree.Nodes) == 0 {
		return nil
	}

	nodes := []int{tree.Root()}
	for _, group := range p.groups[:len(p.groups)-1] {
		var next []int
		for _, n := range nodes {
			for _, st := range group {
				next = append(next, children(tree, n, st)...)
			}
		}
		nodes = next
	}

	var out []string
	last := p.groups[len(p.groups)-1]
	for _, n := range nodes {
		for _, st := range last {
			out = append(out, texts(tree, n, st)...)
		}
	}
	return out
}

func children(tree *doctree.Tree, n int, st Step) []int {
	kids := tree.Node(n).Children
	if st.Index == 0 {
		return append([]int(nil), kids...)
	}
	if i, ok := pick(len(kids), st.Index); ok {
		return []int{kids[i]}
	}
	return nil
}

func texts(tree *doctree.Tree, n int, st Step) []string {
	node := tree.Node(n)

	if st.Kind == StepTitle {
		return []string{terminate(StripNumbering(node.Title))}
	}

	var paras []string
	if st.Index == 0 {
		paras = node.Paragraphs
	} else if i, ok := pick(len(node.Paragraphs), st.Index); ok {
		paras = node.Paragraphs[i : i+1]
	}

	var out []string
	for _, para := range paras {
		if st.Sentences == nil {
			out = append(out, terminate(StripSubject(para)))
			continue
		}
		sents := Sentences(para)
		for _, s := range st.Sentences {
			if i, ok := pick(len(sents), s); ok {
				out = append(out, terminate(StripSubject(sents[i])))
			}
		}
	}
	return out
}

var sentenceEnd = regexp.MustCompile(`[。？！]`)

// Sentences splits a paragraph at sentence-ending punctuation. A paragraph
// ending in punctuation does not yield a trailing empty sentence.
func Sentences(paragraph string) []string {
	parts := sentenceEnd.Split(paragraph, -1)
	if n := len(parts); n > 1 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

// terminate ends s with "。" unless it already ends a sentence.
func terminate(s string) string {
	if strings.HasSuffix(s, "。") || strings.HasSuffix(s, "？") || strings.HasSuffix(s, "！") {
		return s
	}
	return s + "。"
}

// numberingMarks close a heading number, in order of precedence.
var numberingMarks = []string{"、", "）", "."}

// StripNumbering removes a heading number such as "一、" or "（二）" from the
// start of a title.
func StripNumbering(title string) string {
	head := prefix(title, 4)
	for _, m := range numberingMarks {
		if i := strings.Index(head, m); i >= 0 {
			return title[i+len(m):]
		}
	}
	return title
}

// StripSubject drops a short lead-in ending in "是" (as in "二是…").
func StripSubject(s string) string {
	if strings.Contains(prefix(s, 3), "是") {
		return s[strings.Index(s, "是")+len("是"):]
	}
	return s
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
