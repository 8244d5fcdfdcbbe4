package analyzer

import "github.com/dgallion1/reportdiff/internal/doctree"

// DominantHeight returns the most frequent fragment height over all pages.
func DominantHeight(pages *doctree.PageSet) float64 {
	return mostFrequent(pages, func(f doctree.Fragment) float64 { return f.Height })
}

// DominantMargin returns the most frequent left edge over all pages.
func DominantMargin(pages *doctree.PageSet) float64 {
	return mostFrequent(pages, func(f doctree.Fragment) float64 { return f.X0 })
}

// mostFrequent builds a histogram in first-seen order and returns the value
// with the highest count. Among tied values the one first seen last wins.
func mostFrequent(pages *doctree.PageSet, key func(doctree.Fragment) float64) float64 {
	counts := make(map[float64]int)
	var order []float64

	for _, p := range pages.Pages() {
		for _, f := range p.Fragments {
			v := key(f)
			if _, ok := counts[v]; !ok {
				order = append(order, v)
			}
			counts[v]++
		}
	}

	var best float64
	bestCount := 0
	for _, v := range order {
		if counts[v] >= bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
