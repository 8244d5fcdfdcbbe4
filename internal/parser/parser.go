package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/reportdiff/internal/analyzer"
	"github.com/dgallion1/reportdiff/internal/doctree"
)

var (
	// ErrUnsupportedFormat is returned by ForFile for unknown extensions.
	ErrUnsupportedFormat = errors.New("parser: unsupported format")
)

// Document is the content extracted from one input file. Positioned sources
// (PDF, fragment dumps) fill Fragments; sources that already know their
// paragraphs fill Blocks.
type Document struct {
	Title     string
	Fragments []doctree.Fragment
	Blocks    []doctree.Block
}

// Outline runs structure extraction on the document. opts.Title, when set,
// overrides the document title.
func (d *Document) Outline(opts analyzer.Options) *analyzer.Result {
	if len(d.Blocks) == 0 {
		if opts.Title == "" {
			opts.Title = d.Title
		}
		return analyzer.Analyze(d.Fragments, opts)
	}
	name := opts.Title
	if name == "" {
		name = d.Title
	}
	return analyzer.BuildFromBlocks(name, d.Blocks, opts)
}

// Parser extracts a Document from raw file bytes.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".tsv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options configures the parsers ForFile returns.
type Options struct {
	// PDFPassword opens encrypted PDFs.
	PDFPassword string
	// FallbackPdftotext retries with the pdftotext tool when the PDF
	// library cannot read a file.
	FallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".tsv":
		return &FragmentDumpParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{Password: opts.PDFPassword, FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// baseTitle strips the extension from a file name.
func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
