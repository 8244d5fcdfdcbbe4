// Package render turns report comparisons into HTML, Markdown and XLSX.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/reportdiff/internal/align"
	"github.com/dgallion1/reportdiff/internal/report"
)

const (
	DefaultDeleteColor = "#FF69B4"
	DefaultInsertColor = "#32CD32"
)

const stylesheet = `
body {
    margin: 0 auto;
    font-family: "Microsoft YaHei", arial, sans-serif;
    color: #444444;
    line-height: 1;
    padding: 30px;
}
@media screen and (min-width: 768px) {
    body { width: 1000px; margin: 10px auto; }
}
table { border-spacing: 0; width: 100%; border: solid #ccc 5px; border-radius: 6px; }
table td { border-left: 1px solid #ccc; border-top: 1px solid #ccc; padding: 10px; }
table th {
    border: 1px solid #ccc;
    background-color: #dce9f9;
    text-shadow: 0 1px 0 rgba(255,255,255,.5);
    padding: 5px;
}
table th:first-child { width: 10%; }
`

var colorValue = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// Renderer renders comparisons. The zero value uses the default colours.
type Renderer struct {
	DeleteColor string
	InsertColor string

	policy *bluemonday.Policy
}

// New returns a Renderer with the given colours; empty strings select the
// defaults.
func New(deleteColor, insertColor string) *Renderer {
	r := &Renderer{DeleteColor: deleteColor, InsertColor: insertColor}
	if r.DeleteColor == "" {
		r.DeleteColor = DefaultDeleteColor
	}
	if r.InsertColor == "" {
		r.InsertColor = DefaultInsertColor
	}
	r.policy = cellPolicy()
	return r
}

// cellPolicy allows only the markup cells are built from.
func cellPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("s", "br")
	p.AllowAttrs("color").Matching(colorValue).OnElements("font")
	return p
}

func (r *Renderer) colors() (del, ins string) {
	del, ins = r.DeleteColor, r.InsertColor
	if del == "" {
		del = DefaultDeleteColor
	}
	if ins == "" {
		ins = DefaultInsertColor
	}
	return del, ins
}

// CellNodes builds the markup of one side of an alignment. oldSide selects
// how Replace spans are shown: struck in the delete colour on the old side,
// in the insert colour on the new side. Every "。" becomes a paragraph break.
func (r *Renderer) CellNodes(ops []align.Op, oldSide bool) []*html.Node {
	del, ins := r.colors()
	holder := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

	for _, op := range ops {
		switch {
		case op.Kind == align.Equal:
			appendText(holder, op.Text)
		case op.Kind == align.Delete, op.Kind == align.Replace && oldSide:
			s := element(atom.S)
			appendText(s, op.Text)
			font := fontNode(del)
			font.AppendChild(s)
			holder.AppendChild(font)
		default:
			font := fontNode(ins)
			appendText(font, op.Text)
			holder.AppendChild(font)
		}
	}

	var out []*html.Node
	for c := holder.FirstChild; c != nil; {
		next := c.NextSibling
		holder.RemoveChild(c)
		out = append(out, c)
		c = next
	}
	return out
}

// Cell renders and sanitizes one side of an alignment as an HTML fragment.
func (r *Renderer) Cell(ops []align.Op, oldSide bool) (string, error) {
	var buf bytes.Buffer
	for _, n := range r.CellNodes(ops, oldSide) {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render cell: %w", err)
		}
	}
	return r.sanitize(buf.String()), nil
}

func (r *Renderer) sanitize(s string) string {
	p := r.policy
	if p == nil {
		p = cellPolicy()
	}
	return p.Sanitize(s)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
}

func fontNode(color string) *html.Node {
	n := element(atom.Font)
	n.Attr = []html.Attribute{{Key: "color", Val: color}}
	return n
}

func appendText(parent *html.Node, text string) {
	parts := strings.Split(text, "。")
	for i, part := range parts {
		if i > 0 {
			parent.AppendChild(element(atom.Br))
			parent.AppendChild(element(atom.Br))
		}
		if part != "" {
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: part})
		}
	}
}

// Page renders a whole comparison as a standalone HTML document. Columns are
// category, item, new text and old text; consecutive rows of one category
// share a category cell.
func (r *Renderer) Page(rep *report.Report) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: rep.Name})
	head.AppendChild(title)
	style := element(atom.Style)
	style.AppendChild(&html.Node{Type: html.TextNode, Data: stylesheet})
	head.AppendChild(style)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	table := element(atom.Table)
	body.AppendChild(table)

	for i, row := range rep.Rows {
		tr := element(atom.Tr)
		table.AppendChild(tr)

		span := categorySpan(rep.Rows, i)
		firstOfGroup := i == 0 || rep.Rows[i-1].Category != row.Category

		switch {
		case span == 1 && row.Item == "":
			th := textCell(atom.Th, row.Category)
			setAttr(th, "colspan", "2")
			tr.AppendChild(th)
		case firstOfGroup:
			th := textCell(atom.Th, row.Category)
			if span > 1 {
				setAttr(th, "rowspan", fmt.Sprint(span))
			}
			tr.AppendChild(th)
			tr.AppendChild(textCell(atom.Th, row.Item))
		default:
			tr.AppendChild(textCell(atom.Th, row.Item))
		}

		kind := atom.Td
		if row.Header {
			kind = atom.Th
		}
		for _, oldSide := range []bool{false, true} {
			cell := element(kind)
			if err := r.fillCell(cell, row.Cells, oldSide); err != nil {
				return "", err
			}
			tr.AppendChild(cell)
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return buf.String(), nil
}

// fillCell appends the sanitized markup of every cell, separated by a
// paragraph break.
func (r *Renderer) fillCell(parent *html.Node, cells []report.Cell, oldSide bool) error {
	for k, c := range cells {
		if k > 0 && parent.FirstChild != nil {
			parent.AppendChild(element(atom.Br))
			parent.AppendChild(element(atom.Br))
		}
		ops := c.New
		if oldSide {
			ops = c.Old
		}
		markup, err := r.Cell(ops, oldSide)
		if err != nil {
			return err
		}
		nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
		if err != nil {
			return fmt.Errorf("parse cell: %w", err)
		}
		for _, n := range nodes {
			parent.AppendChild(n)
		}
	}
	return nil
}

func categorySpan(rows []report.RowResult, i int) int {
	start := i
	for start > 0 && rows[start-1].Category == rows[i].Category {
		start--
	}
	end := i
	for end+1 < len(rows) && rows[end+1].Category == rows[i].Category {
		end++
	}
	return end - start + 1
}

func textCell(a atom.Atom, text string) *html.Node {
	n := element(a)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

func setAttr(n *html.Node, key, val string) {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
