package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// Level is the numbering style of a heading.
type Level int

const (
	LevelNone Level = iota
	LevelA          // 第一部分
	LevelB          // 一、
	LevelC          // （一）
	LevelD          // 1.
	levelRoot
)

func (l Level) String() string {
	switch l {
	case LevelA:
		return "A"
	case LevelB:
		return "B"
	case LevelC:
		return "C"
	case LevelD:
		return "D"
	case levelRoot:
		return "root"
	default:
		return "none"
	}
}

var levelPatterns = []struct {
	level Level
	re    *regexp.Regexp
}{
	{LevelA, regexp.MustCompile(`^第[一二三四五六七八九十]{1,2}部分`)},
	{LevelB, regexp.MustCompile(`^[一二三四五六七八九十]{1,2}[.、]`)},
	{LevelC, regexp.MustCompile(`^[（(][一二三四五六七八九十0-9]{1,2}[)）]`)},
	{LevelD, regexp.MustCompile(`^[0-9]{1,2}[.、]`)},
}

// Classify returns the numbering level of text, ignoring spaces.
func Classify(text string) Level {
	s := strings.ReplaceAll(text, " ", "")
	for _, p := range levelPatterns {
		if p.re.MatchString(s) {
			return p.level
		}
	}
	return LevelNone
}

// markupLevel maps a markup heading level (h1, h2, ...) onto the numbering
// levels, treating everything below the fourth as LevelD.
func markupLevel(h int) Level {
	if h >= int(LevelD) {
		return LevelD
	}
	return Level(h)
}

// OutlineBuilder turns a flat block stream into a section tree.
type OutlineBuilder struct {
	// TitleMaxLength is the longest text, in runes, that can be a heading.
	TitleMaxLength int
	// KeepSpaces keeps the spaces in paragraph text. Spaces in text laid out
	// for print are justification artifacts and are dropped by default.
	KeepSpaces bool
}

type frame struct {
	level Level
	node  int
}

// Build returns the outline of blocks under a root titled name.
func (ob OutlineBuilder) Build(name string, blocks []doctree.Block) *doctree.Tree {
	maxLen := ob.TitleMaxLength
	if maxLen <= 0 {
		maxLen = DefaultTitleMaxLength
	}

	tree := doctree.NewTree(name)
	stack := []frame{{level: levelRoot, node: tree.Root()}}

	for _, b := range blocks {
		level := Classify(b.Text)
		switch {
		case b.Heading > 0:
			if level == LevelNone {
				level = markupLevel(b.Heading)
			}
		case level == LevelNone || utf8.RuneCountInString(b.Text) > maxLen:
			text := b.Text
			if !ob.KeepSpaces {
				text = strings.ReplaceAll(text, " ", "")
			}
			tree.AddParagraph(stack[len(stack)-1].node, text)
			continue
		}

		// A repeated level closes everything opened since its last frame.
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].level == level {
				stack = stack[:i]
				break
			}
		}

		node := tree.AddChild(stack[len(stack)-1].node, b.Text, b.Page)
		stack = append(stack, frame{level: level, node: node})
	}

	return tree
}
