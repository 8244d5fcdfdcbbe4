package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// PDFParser turns every text row of a PDF into a positioned fragment, with a
// blank fragment closing each page. It tries the Go library first, then
// falls back to pdftotext if enabled.
type PDFParser struct {
	Password          string
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf and pdftotext both want a file, so we write to a temp file.
	tmp, err := os.CreateTemp("", "reportdiff-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	fragments, err := p.extractFragments(tmpPath)
	if err != nil && p.FallbackPdftotext {
		fragments, err = extractPdftotext(tmpPath, p.Password)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	// The title comes from the cover page during analysis.
	return &Document{Fragments: fragments}, nil
}

func (p *PDFParser) extractFragments(path string) ([]doctree.Fragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	var reader *pdflib.Reader
	if p.Password == "" {
		reader, err = pdflib.NewReader(f, info.Size())
	} else {
		tried := false
		reader, err = pdflib.NewReaderEncrypted(f, info.Size(), func() string {
			if tried {
				return ""
			}
			tried = true
			return p.Password
		})
	}
	if err != nil {
		return nil, err
	}

	var out []doctree.Fragment
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		for _, row := range rows {
			if frag, ok := rowFragment(row.Content); ok {
				out = append(out, frag)
			}
		}
		out = append(out, doctree.Fragment{})
	}
	return out, nil
}

// rowFragment merges the text runs of one row into a fragment. X0 is the
// leftmost run, Height the largest font size.
func rowFragment(runs []pdflib.Text) (doctree.Fragment, bool) {
	var b strings.Builder
	x0, height := math.Inf(1), 0.0
	for _, t := range runs {
		b.WriteString(t.S)
		x0 = math.Min(x0, t.X)
		height = math.Max(height, t.FontSize)
	}
	text := strings.TrimSpace(norm.NFC.String(b.String()))
	if text == "" {
		return doctree.Fragment{}, false
	}
	return doctree.Fragment{X0: round1(x0), Height: round1(height), Text: text}, true
}

// round1 rounds to one decimal so that coordinates of lines set in the same
// style compare equal.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// extractPdftotext reads a PDF with pdftotext in layout mode. Indentation
// in columns stands in for X0 and no height is known, so noise regions can
// only end at page breaks.
func extractPdftotext(path, password string) ([]doctree.Fragment, error) {
	args := []string{"-layout"}
	if password != "" {
		args = append(args, "-upw", password)
	}
	args = append(args, path, "-")

	out, err := exec.Command("pdftotext", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return layoutFragments(string(out)), nil
}

// layoutFragments converts pdftotext layout output (pages separated by form
// feeds) into fragments.
func layoutFragments(text string) []doctree.Fragment {
	var out []doctree.Fragment
	for _, page := range strings.Split(text, "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		sc := bufio.NewScanner(strings.NewReader(page))
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := norm.NFC.String(sc.Text())
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			indent := len(line) - len(strings.TrimLeft(line, " "))
			out = append(out, doctree.Fragment{X0: float64(indent), Text: trimmed})
		}
		out = append(out, doctree.Fragment{})
	}
	return out
}
