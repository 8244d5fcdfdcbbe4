package analyzer

import (
	"math"
	"sort"
	"strconv"

	"github.com/dgallion1/reportdiff/internal/doctree"
)

// Merger joins lines into paragraphs by comparing their left edge with the
// dominant body margin. A line off the margin starts a new paragraph.
type Merger struct {
	Margin    float64
	Tolerance float64
}

func (m Merger) offMargin(x0 float64) bool {
	tol := m.Tolerance
	if tol <= 0 {
		tol = DefaultMarginTolerance
	}
	return math.Abs(x0-m.Margin) >= tol
}

// MergePage coalesces one page's lines into blocks.
func (m Merger) MergePage(label string, fragments []doctree.Fragment) []doctree.Block {
	if len(fragments) == 0 {
		return nil
	}

	var blocks []doctree.Block
	var (
		x0      float64
		heights []float64
		text    string
	)

	flush := func() {
		blocks = append(blocks, doctree.Block{
			X0:     x0,
			Height: mean(heights),
			Text:   text,
			Page:   label,
		})
		text = ""
		heights = nil
	}

	for i, f := range fragments {
		if m.offMargin(f.X0) {
			if text != "" {
				flush()
			}
			text += f.Text
			heights = append(heights, f.Height)
			x0 = f.X0
			continue
		}

		text += f.Text
		heights = append(heights, f.Height)
		if i == 0 {
			x0 = f.X0
		}
	}
	flush()

	return blocks
}

// Merge merges every non-empty body page and joins the results across page
// breaks. Pages are visited in ascending numeric label order.
func (m Merger) Merge(pages *doctree.PageSet) []doctree.Block {
	body := make([]doctree.Page, 0, pages.Len())
	for _, p := range pages.Pages() {
		if IsBodyPage(p.Label) && len(p.Fragments) > 0 {
			body = append(body, p)
		}
	}
	sort.SliceStable(body, func(i, j int) bool {
		return labelNumber(body[i].Label) < labelNumber(body[j].Label)
	})

	var flat []doctree.Block
	for _, p := range body {
		for _, b := range m.MergePage(p.Label, p.Fragments) {
			if m.offMargin(b.X0) || len(flat) == 0 {
				flat = append(flat, b)
				continue
			}
			last := &flat[len(flat)-1]
			last.Height = (last.Height + b.Height) / 2
			last.Text += b.Text
		}
	}
	return flat
}

// labelNumber converts a body page label to its numeric value. Labels made of
// non-ASCII digits sort after every ASCII label.
func labelNumber(label string) float64 {
	n, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return math.Inf(1)
	}
	return n
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
