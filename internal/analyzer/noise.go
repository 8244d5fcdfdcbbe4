package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// noiseState is the region the scanner is currently inside.
type noiseState int

const (
	stateBody noiseState = iota
	stateTable
	stateFigure
	stateColumn
)

var (
	columnStart   = regexp.MustCompile(`^专栏 \d+ `)
	tableStart    = regexp.MustCompile(`^表 \d+ `)
	sourceLine    = regexp.MustCompile(`^数据来源：[^。]+?。`)
	sourceInTable = regexp.MustCompile(`数据来源：[^。]+?。`)
	inlineFigure  = regexp.MustCompile(`^.+?图 \d+ `)
	figureCaption = regexp.MustCompile(`^图 \d+ `)
	cjk           = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]`)
)

const sourceMarker = "数据来源"

// NoiseFilter removes tables, figures and sidebar columns from body pages.
type NoiseFilter struct {
	// DominantHeight is the body text height of the document.
	DominantHeight float64
	// HeightCap bounds the height a line must exceed to end a region.
	HeightCap float64
}

// Filter returns a new page set in which every body page keeps only the
// fragments outside noise regions. Other pages are copied unchanged.
func (nf NoiseFilter) Filter(pages *doctree.PageSet) *doctree.PageSet {
	out := doctree.NewPageSet()
	for _, p := range pages.Pages() {
		if !IsBodyPage(p.Label) {
			out.Set(p.Label, p.Fragments)
			continue
		}
		out.Set(p.Label, nf.FilterPage(p.Fragments))
	}
	return out
}

// FilterPage scans one page and drops the lines inside noise regions.
func (nf NoiseFilter) FilterPage(fragments []doctree.Fragment) []doctree.Fragment {
	threshold := math.Min(nf.heightCap(), nf.DominantHeight)

	state := stateBody
	tableEnding := false

	// enter applies the body triggers to a line and reports whether the
	// line itself is noise.
	enter := func(text string) bool {
		switch {
		case columnStart.MatchString(text):
			state = stateColumn
			return true
		case tableStart.MatchString(text):
			state = stateTable
			tableEnding = false
			return true
		case sourceLine.MatchString(text):
			if !inlineFigure.MatchString(text) {
				state = stateFigure
			}
			return true
		}
		return false
	}

	endsRegion := func(f doctree.Fragment) bool {
		return f.Height > threshold && cjk.MatchString(f.Text)
	}

	kept := make([]doctree.Fragment, 0, len(fragments))
	for _, f := range fragments {
		noise := false

		switch state {
		case stateBody:
			noise = enter(f.Text)

		case stateColumn:
			if endsRegion(f) && !strings.Contains(f.Text, sourceMarker) {
				state = stateBody
				noise = enter(f.Text)
			} else {
				noise = true
			}

		case stateTable:
			switch {
			case sourceInTable.MatchString(f.Text):
				tableEnding = true
				noise = true
			case tableEnding && endsRegion(f):
				state = stateBody
				noise = enter(f.Text)
			default:
				if tableStart.MatchString(f.Text) {
					tableEnding = false
				}
				noise = true
			}

		case stateFigure:
			if figureCaption.MatchString(f.Text) {
				state = stateBody
				enter(f.Text)
			}
			noise = true
		}

		if !noise {
			kept = append(kept, f)
		}
	}
	return kept
}

func (nf NoiseFilter) heightCap() float64 {
	if nf.HeightCap <= 0 {
		return DefaultColumnHeightCap
	}
	return nf.HeightCap
}
