package align

import (
	"container/heap"
	"math"
	"sort"
)

// Unmatched marks the missing side of a Pair.
const Unmatched = -1

// MaxPairCost is the highest cost at which two sentences are still paired.
const MaxPairCost = 1.0

// Pair links sentence A of one text with sentence B of the other. One side
// may be Unmatched, never both. Cost is only meaningful for matched pairs.
type Pair struct {
	A, B int
	Cost float64
}

// Matched reports whether both sides are present.
func (p Pair) Matched() bool { return p.A != Unmatched && p.B != Unmatched }

type candidate struct {
	i, j int
	cost float64
}

type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(x, y int) bool {
	a, b := h[x], h[y]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.i != b.i {
		return a.i < b.i
	}
	return a.j < b.j
}
func (h candidateHeap) Swap(x, y int) { h[x], h[y] = h[y], h[x] }
func (h *candidateHeap) Push(v any)   { *h = append(*h, v.(candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	v := old[len(old)-1]
	*h = old[:len(old)-1]
	return v
}

// MatchSentences pairs the sentences of a and b greedily: the cheapest
// remaining pair is committed first and its row and column retired. Pairs
// costing more than MaxPairCost are reported as two unmatched entries.
// The result is ordered by B index, then A index, with unmatched indices
// sorting last.
func MatchSentences(a, b []string) []Pair {
	h := make(candidateHeap, 0, len(a)*len(b))
	for i := range a {
		for j := range b {
			h = append(h, candidate{i: i, j: j, cost: Cost(a[i], b[j])})
		}
	}
	heap.Init(&h)

	usedA := make([]bool, len(a))
	usedB := make([]bool, len(b))
	var pairs []Pair

	for committed := 0; h.Len() > 0 && committed < min(len(a), len(b)); {
		c := heap.Pop(&h).(candidate)
		if usedA[c.i] || usedB[c.j] {
			continue
		}
		usedA[c.i], usedB[c.j] = true, true
		committed++

		if c.cost > MaxPairCost {
			pairs = append(pairs, Pair{A: c.i, B: Unmatched}, Pair{A: Unmatched, B: c.j})
			continue
		}
		pairs = append(pairs, Pair{A: c.i, B: c.j, Cost: c.cost})
	}

	for i, used := range usedA {
		if !used {
			pairs = append(pairs, Pair{A: i, B: Unmatched})
		}
	}
	for j, used := range usedB {
		if !used {
			pairs = append(pairs, Pair{A: Unmatched, B: j})
		}
	}

	sortKey := func(idx int) int {
		if idx == Unmatched {
			return math.MaxInt
		}
		return idx
	}
	sort.SliceStable(pairs, func(x, y int) bool {
		bx, by := sortKey(pairs[x].B), sortKey(pairs[y].B)
		if bx != by {
			return bx < by
		}
		return sortKey(pairs[x].A) < sortKey(pairs[y].A)
	})
	return pairs
}
