package render

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/dgallion1/reportdiff/internal/report"
)

func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// Markdown renders a comparison as a Markdown table. Deleted and replaced
// old text is struck through; colours are dropped.
func (r *Renderer) Markdown(rep *report.Report) (string, error) {
	page, err := r.Page(rep)
	if err != nil {
		return "", err
	}
	md, err := newMarkdownConverter().ConvertString(page)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return md, nil
}
