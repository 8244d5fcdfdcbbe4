package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

func TestFragmentDump_RoundTrip(t *testing.T) {
	fragments := []doctree.Fragment{
		{X0: 100, Height: 20, Text: "中国货币政策执行报告"},
		{},
		{X0: 72.5, Height: 10.5, Text: `引用"内容"`},
		{X0: 90, Height: 10.5, Text: " 前导空格"},
		{X0: 300, Height: 9, Text: "1"},
		{},
	}

	var buf bytes.Buffer
	if err := WriteFragments(&buf, fragments); err != nil {
		t.Fatalf("write: %v", err)
	}

	p := &FragmentDumpParser{}
	doc, err := p.Parse(&buf, "dump.tsv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Fragments) != len(fragments) {
		t.Fatalf("expected %d fragments, got %d", len(fragments), len(doc.Fragments))
	}
	for i, want := range fragments {
		if doc.Fragments[i] != want {
			t.Errorf("fragment[%d]: expected %+v, got %+v", i, want, doc.Fragments[i])
		}
	}
}

func TestFragmentDump_TwoColumnRecordIsBlank(t *testing.T) {
	p := &FragmentDumpParser{}
	doc, err := p.Parse(strings.NewReader("50\t12\t正文\n0\t0\n"), "dump.tsv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Fragments) != 2 || doc.Fragments[1].Text != "" {
		t.Errorf("expected a trailing blank fragment, got %+v", doc.Fragments)
	}
}

func TestFragmentDump_BadNumber(t *testing.T) {
	p := &FragmentDumpParser{}
	_, err := p.Parse(strings.NewReader("50\t12\t正文\nleft\t12\t坏行\n"), "dump.tsv")
	if err == nil {
		t.Fatal("expected an error for a non-numeric x0")
	}
	if !strings.Contains(err.Error(), "dump.tsv line 2") {
		t.Errorf("expected the line number in %q", err.Error())
	}
}
