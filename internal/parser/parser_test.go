package parser

import (
	"errors"
	"testing"

	"github.com/dgallion1/reportdiff/internal/analyzer"
	"github.com/dgallion1/reportdiff/internal/doctree"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.txt", "*parser.TextParser"},
		{"a.MD", "*parser.MarkdownParser"},
		{"a.markdown", "*parser.MarkdownParser"},
		{"a.tsv", "*parser.FragmentDumpParser"},
		{"a.htm", "*parser.HTMLParser"},
		{"a.pdf", "*parser.PDFParser"},
		{"a.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
		if !IsSupportedExtension(tt.filename) {
			t.Errorf("%s: expected supported", tt.filename)
		}
	}

	_, err := ForFile("a.xls", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if IsSupportedExtension("a.xls") {
		t.Error("expected .xls to be unsupported")
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("report.pdf", Options{PDFPassword: "secret", FallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf := p.(*PDFParser)
	if pdf.Password != "secret" || !pdf.FallbackPdftotext {
		t.Errorf("options not carried: %+v", pdf)
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *FragmentDumpParser:
		return "*parser.FragmentDumpParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}

func TestDocument_OutlineFromFragments(t *testing.T) {
	doc := &Document{Fragments: []doctree.Fragment{
		{X0: 100, Height: 20, Text: "货币政策报告"},
		{X0: 100, Height: 16, Text: "2024年第一季度"},
		{},
		{X0: 74, Height: 12, Text: "一、总体情况"},
		{X0: 74, Height: 12, Text: "经济运行平稳，"},
		{X0: 50, Height: 12, Text: "就业稳定，"},
		{X0: 50, Height: 12, Text: "物价温和。"},
		{X0: 50, Height: 12, Text: "预期改善。"},
		{X0: 300, Height: 9, Text: "1"},
		{},
	}}

	res := doc.Outline(analyzer.DefaultOptions())
	if got := res.Tree.Title(); got != "货币政策报告2024年第一季度" {
		t.Errorf("expected the cover name, got %q", got)
	}
	if len(res.Tree.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(res.Tree.Nodes))
	}
	if got := res.Tree.Node(1).Paragraphs; len(got) != 1 || got[0] != "经济运行平稳，就业稳定，物价温和。预期改善。" {
		t.Errorf("unexpected paragraphs: %q", got)
	}

	opts := analyzer.DefaultOptions()
	opts.Title = "覆盖"
	if got := doc.Outline(opts).Tree.Title(); got != "覆盖" {
		t.Errorf("expected title override, got %q", got)
	}
}

func TestDocument_OutlineFromBlocks(t *testing.T) {
	doc := &Document{Title: "notes", Blocks: []doctree.Block{{Text: "hello world"}}}
	res := doc.Outline(analyzer.DefaultOptions())
	if res.Tree.Title() != "notes" {
		t.Errorf("expected %q, got %q", "notes", res.Tree.Title())
	}
	if got := res.Tree.Node(0).Paragraphs; len(got) != 1 || got[0] != "hello world" {
		t.Errorf("expected spaces kept, got %q", got)
	}
}
