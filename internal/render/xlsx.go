package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/image/colornames"

	"github.com/dgallion1/reportdiff/internal/align"
	"github.com/dgallion1/reportdiff/internal/report"
)

// SheetName is the worksheet comparisons are written to.
const SheetName = "Comparison"

var xlsxHeader = []string{"类别", "项目", "新", "旧"}

// XLSX builds a workbook with one row per comparison row. Changed spans are
// rich-text runs in the configured colours; old-side deletions are struck.
// The caller closes the returned file.
func (r *Renderer) XLSX(rep *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}

	if err := r.fillSheet(f, rep, wrap); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (r *Renderer) fillSheet(f *excelize.File, rep *report.Report, style int) error {
	for col, h := range xlsxHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SetColWidth(SheetName, "C", "D", 60); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	for i, row := range rep.Rows {
		line := i + 2
		catCell, _ := excelize.CoordinatesToCellName(1, line)
		itemCell, _ := excelize.CoordinatesToCellName(2, line)
		newCell, _ := excelize.CoordinatesToCellName(3, line)
		oldCell, _ := excelize.CoordinatesToCellName(4, line)

		if i == 0 || rep.Rows[i-1].Category != row.Category {
			if err := f.SetCellValue(SheetName, catCell, row.Category); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			if span := categorySpan(rep.Rows, i); span > 1 {
				bottom, _ := excelize.CoordinatesToCellName(1, line+span-1)
				if err := f.MergeCell(SheetName, catCell, bottom); err != nil {
					return fmt.Errorf("row %d: merge category: %w", i+1, err)
				}
			}
		}
		if err := f.SetCellValue(SheetName, itemCell, row.Item); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}

		for _, side := range []struct {
			cell    string
			oldSide bool
		}{{newCell, false}, {oldCell, true}} {
			runs := r.runs(row.Cells, side.oldSide)
			if len(runs) == 0 {
				continue
			}
			if err := f.SetCellRichText(SheetName, side.cell, runs); err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(xlsxHeader), len(rep.Rows)+1)
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("apply style: %w", err)
	}
	return nil
}

// runs converts the cells of one side into rich-text runs, one paragraph
// per cell.
func (r *Renderer) runs(cells []report.Cell, oldSide bool) []excelize.RichTextRun {
	del, ins := r.colors()
	var out []excelize.RichTextRun
	for k, c := range cells {
		if k > 0 && len(out) > 0 {
			out = append(out, excelize.RichTextRun{Text: "\n\n"})
		}
		ops := c.New
		if oldSide {
			ops = c.Old
		}
		for _, op := range ops {
			run := excelize.RichTextRun{Text: op.Text}
			switch {
			case op.Kind == align.Equal:
			case op.Kind == align.Delete, op.Kind == align.Replace && oldSide:
				run.Font = &excelize.Font{Color: xlsxColor(del), Strike: true}
			default:
				run.Font = &excelize.Font{Color: xlsxColor(ins)}
			}
			out = append(out, run)
		}
	}
	return out
}

// xlsxColor converts an HTML colour to the RRGGBB hex excelize expects.
// Named colours are resolved through the SVG colour table; unknown names
// yield "", which leaves the run in the default font colour.
func xlsxColor(c string) string {
	c = strings.TrimSpace(c)
	if hex, ok := strings.CutPrefix(c, "#"); ok {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return strings.ToUpper(hex)
	}
	rgba, ok := colornames.Map[strings.ToLower(c)]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02X%02X%02X", rgba.R, rgba.G, rgba.B)
}

// WriteXLSX writes the workbook for rep to w.
func (r *Renderer) WriteXLSX(w io.Writer, rep *report.Report) error {
	f, err := r.XLSX(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
