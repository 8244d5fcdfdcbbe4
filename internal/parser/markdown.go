package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// MarkdownParser handles Markdown files using goldmark. Every top-level
// block becomes one Block; ATX and setext headings carry their level.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &Document{Title: baseTitle(filename)}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		t := extractText(n, src)
		if t == "" {
			continue
		}
		block := doctree.Block{Text: t}
		if h, ok := n.(*ast.Heading); ok {
			block.Heading = h.Level
		}
		doc.Blocks = append(doc.Blocks, block)
	}
	return doc, nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// such as code blocks carry raw lines; everything else is read from its
// inline children, with nested blocks on their own lines.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Value(src))
			if c.HardLineBreak() || c.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(c.Value)
		default:
			t := extractText(c, src)
			buf.WriteString(t)
			if c.Type() == ast.TypeBlock && t != "" {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
