// Package analyzer rebuilds the section outline of a paginated report from
// its positioned text lines.
//
// The stages run in a fixed order: page segmentation, body statistics,
// noise-region removal, paragraph merging and outline building. Each stage is
// a pure function of its input, so an Analyze call never mutates the
// fragments it is given and is safe to run concurrently.
package analyzer

import "github.com/dgallion1/reportdiff/internal/doctree"

const (
	DefaultTitleMaxLength  = 30
	DefaultMarginTolerance = 5.0
	DefaultColumnHeightCap = 14.0
)

// Options controls structure extraction.
type Options struct {
	TitleMaxLength  int     // Longest heading, in runes.
	MarginTolerance float64 // Distance from the margin that starts a paragraph.
	ColumnHeightCap float64 // Upper bound on the height that ends a noise region.
	Title           string  // Document name; taken from the cover page when empty.
}

// DefaultOptions returns the thresholds tuned for PBOC monetary policy reports.
func DefaultOptions() Options {
	return Options{
		TitleMaxLength:  DefaultTitleMaxLength,
		MarginTolerance: DefaultMarginTolerance,
		ColumnHeightCap: DefaultColumnHeightCap,
	}
}

// Result is the outline plus the statistics gathered on the way.
type Result struct {
	Tree           *doctree.Tree
	Pages          int
	Blocks         int
	DominantHeight float64
	DominantMargin float64
}

// Analyze runs the full structure extraction over a fragment stream.
func Analyze(fragments []doctree.Fragment, opts Options) *Result {
	if opts.TitleMaxLength <= 0 {
		opts.TitleMaxLength = DefaultTitleMaxLength
	}
	if opts.MarginTolerance <= 0 {
		opts.MarginTolerance = DefaultMarginTolerance
	}
	if opts.ColumnHeightCap <= 0 {
		opts.ColumnHeightCap = DefaultColumnHeightCap
	}

	pages := Segment(fragments)

	name := opts.Title
	if name == "" {
		name = DocumentName(pages)
	}

	height := DominantHeight(pages)
	pages = NoiseFilter{DominantHeight: height, HeightCap: opts.ColumnHeightCap}.Filter(pages)

	// Margin statistics are taken after filtering: table and figure
	// indentation would skew them.
	margin := DominantMargin(pages)
	blocks := Merger{Margin: margin, Tolerance: opts.MarginTolerance}.Merge(pages)

	tree := OutlineBuilder{TitleMaxLength: opts.TitleMaxLength}.Build(name, blocks)

	return &Result{
		Tree:           tree,
		Pages:          pages.Len(),
		Blocks:         len(blocks),
		DominantHeight: height,
		DominantMargin: margin,
	}
}

// BuildFromBlocks builds an outline from blocks produced by a source that
// already knows its paragraphs (Markdown, HTML, DOCX, plain text). Paragraph
// spaces are kept.
func BuildFromBlocks(name string, blocks []doctree.Block, opts Options) *Result {
	tree := OutlineBuilder{TitleMaxLength: opts.TitleMaxLength, KeepSpaces: true}.Build(name, blocks)
	return &Result{Tree: tree, Blocks: len(blocks)}
}
