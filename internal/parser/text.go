package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate blocks; short
// numbered lines such as "一、总体情况" become headings during outlining.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &Document{Title: baseTitle(filename)}
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			doc.Blocks = append(doc.Blocks, doctree.Block{Text: current.String()})
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
