// Package report compares two document outlines row by row according to a
// report definition.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/reportdiff/internal/align"
	"github.com/dgallion1/reportdiff/internal/doctree"
	"github.com/dgallion1/reportdiff/internal/query"
)

// Cell is one aligned selection: the old text and the new text.
type Cell struct {
	Old []align.Op
	New []align.Op
}

// RowResult is the outcome of one definition row.
type RowResult struct {
	Category string
	Item     string
	Header   bool
	Cells    []Cell
}

// Changed reports whether any cell of the row differs.
func (r RowResult) Changed() bool {
	for _, c := range r.Cells {
		if (align.Alignment{A: c.Old, B: c.New}).Changed() {
			return true
		}
	}
	return false
}

// Report is a full comparison in definition row order.
type Report struct {
	Name     string
	OldTitle string
	NewTitle string
	Rows     []RowResult
}

// Comparer evaluates report definitions.
type Comparer struct {
	Aligner align.Aligner
	Workers int
	// KeywordRatio overrides the definition's ratio when positive.
	KeywordRatio float64
	Log          *slog.Logger
}

type rowOutcome struct {
	idx int
	row RowResult
	err error
}

// Compare aligns every row of def between the old and new outlines. Rows are
// evaluated concurrently, at most Workers at a time; the result keeps the
// definition order. The error of the earliest failing row is returned.
func (c *Comparer) Compare(ctx context.Context, oldTree, newTree *doctree.Tree, def *Definition) (*Report, error) {
	log := c.Log
	if log == nil {
		log = slog.Default()
	}
	workers := c.Workers
	if workers <= 0 {
		workers = 1
	}
	ratio := def.KeywordRatio
	if c.KeywordRatio > 0 {
		ratio = c.KeywordRatio
	}
	start := time.Now()

	results := make(chan rowOutcome, len(def.Rows))
	sem := make(chan struct{}, workers)

	for i, row := range def.Rows {
		sem <- struct{}{}
		go func(i int, row Row) {
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				results <- rowOutcome{idx: i, err: err}
				return
			}
			res, err := c.compareRow(oldTree, newTree, row, ratio)
			results <- rowOutcome{idx: i, row: res, err: err}
		}(i, row)
	}

	rows := make([]RowResult, len(def.Rows))
	var firstErr error
	firstIdx := len(def.Rows)
	changed := 0
	for range def.Rows {
		r := <-results
		if r.err != nil {
			if r.idx < firstIdx {
				firstErr, firstIdx = r.err, r.idx
			}
			continue
		}
		rows[r.idx] = r.row
		if r.row.Changed() {
			changed++
		}
		log.Debug("row compared",
			"row", r.idx+1,
			"category", r.row.Category,
			"item", r.row.Item,
			"cells", len(r.row.Cells),
			"changed", r.row.Changed(),
		)
	}
	if firstErr != nil {
		row := def.Rows[firstIdx]
		return nil, fmt.Errorf("row %d (%s %s): %w", firstIdx+1, row.Category, row.Item, firstErr)
	}

	log.Info("report compared",
		"definition", def.Name,
		"rows", len(rows),
		"changed_rows", changed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Report{
		Name:     def.Name,
		OldTitle: oldTree.Title(),
		NewTitle: newTree.Title(),
		Rows:     rows,
	}, nil
}

func (c *Comparer) compareRow(oldTree, newTree *doctree.Tree, row Row, ratio float64) (RowResult, error) {
	res := RowResult{Category: row.Category, Item: row.Item, Header: row.Header}
	paths := row.parsed
	if len(paths) == 0 {
		return res, fmt.Errorf("%w: row has no parsed paths", ErrInvalidDefinition)
	}

	switch {
	case row.Header:
		o := plain(first(paths[0].Select(oldTree)))
		n := plain(first(paths[0].Select(newTree)))
		res.Cells = []Cell{{
			Old: []align.Op{{Kind: align.Equal, Text: o}},
			New: []align.Op{{Kind: align.Equal, Text: n}},
		}}

	case row.Mode == ModeContinuous:
		cell, err := c.alignCell(first(paths[0].Select(oldTree)), first(paths[0].Select(newTree)))
		if err != nil {
			return res, err
		}
		res.Cells = []Cell{cell}

	default:
		for _, p := range paths {
			o := strings.Join(query.DedupeContained(query.FilterKeywords(p.Select(oldTree), row.Keywords, ratio)), "")
			n := strings.Join(query.DedupeContained(query.FilterKeywords(p.Select(newTree), row.Keywords, ratio)), "")
			if o == "" && n == "" {
				continue
			}
			cell, err := c.alignCell(o, n)
			if err != nil {
				return res, fmt.Errorf("path %s: %w", p, err)
			}
			res.Cells = append(res.Cells, cell)
		}
	}
	return res, nil
}

func (c *Comparer) alignCell(oldText, newText string) (Cell, error) {
	al, err := c.Aligner.Align(oldText, newText)
	if err != nil {
		return Cell{}, err
	}
	return Cell{Old: al.A, New: al.B}, nil
}

func first(texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	return texts[0]
}

// plain formats a header selection: no spaces, no sentence terminator.
func plain(s string) string {
	return strings.Trim(strings.ReplaceAll(s, " ", ""), "。")
}
