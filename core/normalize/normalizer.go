// Package normalize implements the Normalizer interface.
// It converts cleaned HTML into Markdown so HTML inputs can go through
// the same conversion engine as Markdown files.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var (
	fenceLeadingBlankRe  = regexp.MustCompile("(```\\w*)\n(\n)+")
	fenceTrailingBlankRe = regexp.MustCompile("\n(\n)+```")
	excessBlankRe        = regexp.MustCompile(`\n{3,}`)
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
// The converter is goroutine-safe and built once.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer. Tables come out as pipe tables, which
// is what the engine parses.
func New() *MarkdownNormalizer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)
	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return tidy(markdown), nil
}

// tidy removes blank lines hugging code fences and collapses blank runs.
func tidy(md string) string {
	md = fenceLeadingBlankRe.ReplaceAllString(md, "$1\n")
	md = fenceTrailingBlankRe.ReplaceAllString(md, "\n```")
	md = excessBlankRe.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md) + "\n"
}
