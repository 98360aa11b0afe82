package markup

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// MarkdownConverter turns explanation fragments into CommonMark.
type MarkdownConverter struct {
	conv *converter.Converter
}

// NewMarkdownConverter builds a converter with the base, CommonMark and table plugins.
func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert renders fragment as Markdown.
func (m *MarkdownConverter) Convert(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}
	out, err := m.conv.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}
