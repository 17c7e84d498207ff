// Package render — plain text renderer.
// Emits the document as readable UTF-8 text: underlined headings, indented
// list markers, box-free tables padded to display width.
package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gaurav-prasanna/mdconvert/core"
	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// TextRenderer renders document nodes as plain text.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the plain text form of nodes.
func (r *TextRenderer) Render(nodes []doc.Node, meta core.DocumentMetadata) ([]byte, error) {
	return []byte(PlainText(nodes)), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// PlainText renders nodes as text blocks separated by blank lines.
func PlainText(nodes []doc.Node) string {
	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		blocks = append(blocks, textBlock(n))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func textBlock(n doc.Node) string {
	switch n := n.(type) {
	case doc.Heading:
		text := n.Text()
		switch n.Level {
		case 1:
			return text + "\n" + strings.Repeat("=", max(3, runewidth.StringWidth(text)))
		case 2:
			return text + "\n" + strings.Repeat("-", max(3, runewidth.StringWidth(text)))
		default:
			return text
		}
	case doc.Paragraph:
		return n.Text()
	case doc.List:
		return textList(n.Entries)
	case doc.Table:
		return textTable(n)
	case doc.Blockquote:
		parts := make([]string, len(n.Paragraphs))
		for i, p := range n.Paragraphs {
			parts[i] = prefixLines(p.Text(), "> ")
		}
		return strings.Join(parts, "\n>\n")
	case doc.CodeBlock:
		lines := make([]string, len(n.Lines))
		for i, l := range n.Lines {
			lines[i] = "    " + expandTabs(l, 4)
		}
		return strings.Join(lines, "\n")
	case doc.Rule:
		return strings.Repeat("-", 40)
	default:
		panic("render: unhandled node " + n.Kind().String())
	}
}

func textList(entries []doc.ListEntry) string {
	counters := make(map[int]int)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		for lvl := range counters {
			if lvl > e.Level {
				delete(counters, lvl)
			}
		}
		marker := "- "
		if e.Ordered {
			counters[e.Level]++
			marker = strconv.Itoa(counters[e.Level]) + ". "
		}
		indent := strings.Repeat("  ", e.Level)
		text := prefixLines(e.Text(), indent+strings.Repeat(" ", len(marker)))
		lines = append(lines, indent+marker+strings.TrimLeft(text, " "))
	}
	return strings.Join(lines, "\n")
}

// textTable pads every column to its widest cell line. Multi-paragraph
// cells span several physical lines.
func textTable(t doc.Table) string {
	cols := t.Columns()
	if cols == 0 {
		return ""
	}
	rows := make([][][]string, 0, len(t.Rows)+1)
	rows = append(rows, cellLines(t.Header, cols))
	for _, r := range t.Rows {
		rows = append(rows, cellLines(r, cols))
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			for _, l := range cell {
				widths[i] = max(widths[i], runewidth.StringWidth(l))
			}
		}
	}

	var b strings.Builder
	writeRow := func(row [][]string) {
		height := 1
		for _, cell := range row {
			height = max(height, len(cell))
		}
		for line := 0; line < height; line++ {
			parts := make([]string, cols)
			for i, cell := range row {
				text := ""
				if line < len(cell) {
					text = cell[line]
				}
				align := doc.AlignDefault
				if i < len(t.Align) {
					align = t.Align[i]
				}
				parts[i] = pad(text, widths[i], align)
			}
			b.WriteString(strings.TrimRight(strings.Join(parts, " | "), " "))
			b.WriteByte('\n')
		}
	}

	writeRow(rows[0])
	seps := make([]string, cols)
	for i, w := range widths {
		seps[i] = strings.Repeat("-", max(w, 1))
	}
	b.WriteString(strings.Join(seps, "-+-"))
	b.WriteByte('\n')
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}

func cellLines(cells []doc.Cell, cols int) [][]string {
	out := make([][]string, cols)
	for i := 0; i < cols; i++ {
		if i < len(cells) {
			out[i] = strings.Split(cellText(cells[i]), "\n")
		}
	}
	return out
}

func pad(s string, width int, align doc.Alignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case doc.AlignRight:
		return strings.Repeat(" ", gap) + s
	case doc.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

func prefixLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// expandTabs replaces tabs with spaces up to the next tab stop, measured
// in display columns.
func expandTabs(s string, tabWidth int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}
