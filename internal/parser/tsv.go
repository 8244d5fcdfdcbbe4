package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// FragmentDumpParser reads a fragment stream saved as tab-separated
// "x0, height, text" records. A record with empty text is a page break.
// Dumps let an extraction be inspected, corrected by hand, and analyzed
// again without the original PDF.
type FragmentDumpParser struct{}

func (p *FragmentDumpParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	doc := &Document{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse fragment dump: %w", err)
		}

		frag, err := parseFragment(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filename, line, err)
		}
		doc.Fragments = append(doc.Fragments, frag)
	}
	return doc, nil
}

func parseFragment(record []string) (doctree.Fragment, error) {
	if len(record) < 2 {
		return doctree.Fragment{}, fmt.Errorf("expected at least 2 fields, got %d", len(record))
	}
	x0, err := strconv.ParseFloat(record[0], 64)
	if err != nil {
		return doctree.Fragment{}, fmt.Errorf("x0: %w", err)
	}
	height, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return doctree.Fragment{}, fmt.Errorf("height: %w", err)
	}
	var text string
	if len(record) > 2 {
		text = record[2]
	}
	return doctree.Fragment{X0: x0, Height: height, Text: text}, nil
}

// WriteFragments writes fragments in the format FragmentDumpParser reads.
func WriteFragments(w io.Writer, fragments []doctree.Fragment) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	for _, f := range fragments {
		record := []string{
			strconv.FormatFloat(f.X0, 'f', -1, 64),
			strconv.FormatFloat(f.Height, 'f', -1, 64),
			f.Text,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
