package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/reportdiff/internal/analyzer"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}
	if len(doc.Blocks) != 8 {
		t.Fatalf("expected 8 blocks, got %d", len(doc.Blocks))
	}
	if doc.Blocks[0].Heading != 1 || doc.Blocks[4].Heading != 3 {
		t.Errorf("unexpected heading levels: %+v", doc.Blocks)
	}
	if doc.Blocks[1].Text != "Intro text." {
		t.Errorf("expected %q, got %q", "Intro text.", doc.Blocks[1].Text)
	}

	tree := doc.Outline(analyzer.DefaultOptions()).Tree
	if tree.Title() != "doc" {
		t.Errorf("expected root title %q, got %q", "doc", tree.Title())
	}

	// Top-level: one h1 ("Title")
	root := tree.Node(tree.Root())
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(root.Children))
	}

	h1 := tree.Node(root.Children[0])
	if h1.Title != "Title" {
		t.Errorf("expected h1 title %q, got %q", "Title", h1.Title)
	}
	if len(h1.Paragraphs) != 1 || h1.Paragraphs[0] != "Intro text." {
		t.Errorf("expected h1 paragraphs [Intro text.], got %q", h1.Paragraphs)
	}

	// h1 has two h2 children: "Section A" and "Section B"
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	secA := tree.Node(h1.Children[0])
	if secA.Title != "Section A" {
		t.Errorf("expected %q, got %q", "Section A", secA.Title)
	}
	if len(secA.Children) != 1 {
		t.Fatalf("expected 1 h3 child under Section A, got %d", len(secA.Children))
	}
	if sub := tree.Node(secA.Children[0]); sub.Title != "Subsection A1" {
		t.Errorf("expected %q, got %q", "Subsection A1", sub.Title)
	}

	if secB := tree.Node(h1.Children[1]); secB.Title != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", secB.Title)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No headings: both paragraphs stay on the root.
	tree := doc.Outline(analyzer.DefaultOptions()).Tree
	root := tree.Node(tree.Root())
	if len(root.Children) != 0 {
		t.Fatalf("expected no sections for headingless markdown, got %d", len(root.Children))
	}
	want := []string{"Just some plain text.", "Another paragraph here."}
	if len(root.Paragraphs) != len(want) {
		t.Fatalf("expected %d paragraphs, got %q", len(want), root.Paragraphs)
	}
	for i, w := range want {
		if root.Paragraphs[i] != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, root.Paragraphs[i])
		}
	}
}

func TestMarkdownParser_MixedContentWithCodeBlocks(t *testing.T) {
	input := "# API Reference\n\nSome intro.\n\n## Endpoints\n\nList of endpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tree := doc.Outline(analyzer.DefaultOptions()).Tree
	endpoints, ok := tree.Child(1, 0)
	if !ok {
		t.Fatalf("expected an Endpoints section")
	}
	node := tree.Node(endpoints)
	if node.Title != "Endpoints" {
		t.Errorf("expected title %q, got %q", "Endpoints", node.Title)
	}

	text := strings.Join(node.Paragraphs, "\n")
	if !strings.Contains(text, "GET /api/users\nPOST /api/users") {
		t.Errorf("expected code block content in text, got %q", text)
	}
	if !strings.Contains(text, "More text after code.") {
		t.Errorf("expected post-code text, got %q", text)
	}
}

func TestMarkdownParser_NumberedHeadingsInBody(t *testing.T) {
	// Reports converted to Markdown often lose heading markup; numbering
	// still drives the outline.
	input := "一、总体情况\n\n经济运行稳定。\n\n（一）物价\n\n物价温和上涨。\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "report.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tree := doc.Outline(analyzer.DefaultOptions()).Tree
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(tree.Nodes))
	}
	if got := tree.Node(2).Paragraphs; len(got) != 1 || got[0] != "物价温和上涨。" {
		t.Errorf("unexpected paragraphs under （一）: %q", got)
	}
	if path := tree.PathTo(2); len(path) != 2 || path[0] != 0 || path[1] != 0 {
		t.Errorf("expected path [0 0], got %v", path)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Blocks) != 0 {
		t.Errorf("expected 0 blocks for empty input, got %d", len(doc.Blocks))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
