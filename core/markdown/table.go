package markdown

import (
	"html"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// TableStatus is the outcome of a table parse attempt.
type TableStatus int

const (
	// TableParsed means a header and separator were found.
	TableParsed TableStatus = iota
	// TableNotCandidate means the start line has no pipe.
	TableNotCandidate
	// TableMissingSeparator means the line looked like a header but no
	// separator row followed; callers fall back to paragraph text.
	TableMissingSeparator
)

func (s TableStatus) String() string {
	switch s {
	case TableParsed:
		return "parsed"
	case TableNotCandidate:
		return "not_candidate"
	case TableMissingSeparator:
		return "missing_separator"
	default:
		return "unknown"
	}
}

// TableResult carries a parsed table and where scanning stopped.
// Dropped lists the line indexes of body rows rejected for a cell-count mismatch.
type TableResult struct {
	Data    TableData
	Next    int
	Status  TableStatus
	Dropped []int
}

const escapedPipe = "\x00"

var cellListRe = regexp.MustCompile(`^(\s*)(\d+\.|-|\+|\*)\s+(.*)$`)

// ParseTable attempts a pipe table at lines[start]. A body row is kept only
// when its cell count equals the header count; other rows are dropped, not
// padded. The table ends at a blank line or a line without a pipe.
func ParseTable(lines []string, start int) TableResult {
	if start >= len(lines) || !strings.Contains(lines[start], "|") {
		return TableResult{Next: start, Status: TableNotCandidate}
	}
	if start+1 >= len(lines) || !isTableSeparator(lines[start+1]) {
		return TableResult{Next: start, Status: TableMissingSeparator}
	}

	headers := splitTableRow(lines[start])
	if len(headers) == 0 {
		return TableResult{Next: start, Status: TableNotCandidate}
	}

	result := TableResult{
		Data: TableData{
			Headers: headers,
			Align:   parseTableAlignment(splitTableRow(lines[start+1]), len(headers)),
		},
		Status: TableParsed,
	}

	i := start + 2
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) || !strings.Contains(line, "|") {
			break
		}
		cells := splitTableRow(line)
		if len(cells) != len(headers) {
			result.Dropped = append(result.Dropped, i)
			i++
			continue
		}
		result.Data.Rows = append(result.Data.Rows, cells)
		i++
	}
	result.Next = i
	return result
}

func isTableSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "|") || !strings.Contains(trimmed, "-") {
		return false
	}
	return strings.IndexFunc(trimmed, func(r rune) bool {
		return r != '|' && r != '-' && r != ':' && r != ' ' && r != '\t'
	}) == -1
}

// splitTableRow splits on unescaped pipes and drops the empty fragments
// produced by a leading or trailing pipe.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	leading := strings.HasPrefix(line, "|")
	trailing := strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`)
	line = strings.ReplaceAll(line, `\|`, escapedPipe)

	parts := strings.Split(line, "|")
	if leading && len(parts) > 0 {
		parts = parts[1:]
	}
	if trailing && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	for i := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(parts[i]), escapedPipe, "|")
	}
	return parts
}

func parseTableAlignment(parts []string, columns int) []doc.Alignment {
	align := make([]doc.Alignment, columns)
	for i := 0; i < columns && i < len(parts); i++ {
		part := strings.TrimSpace(parts[i])
		left := strings.HasPrefix(part, ":")
		right := strings.HasSuffix(part, ":")
		switch {
		case left && right:
			align[i] = doc.AlignCenter
		case right:
			align[i] = doc.AlignRight
		case left:
			align[i] = doc.AlignLeft
		}
	}
	return align
}

// MaterializeCell re-parses one cell. The cell is normalized in cell mode,
// split on BreakMarker, and each piece becomes a list-entry paragraph when
// it starts with a list marker or a plain paragraph otherwise. Entities are
// decoded per piece after the split. A list piece's level is its leading
// indentation in DefaultIndentUnit columns, clamped to one more than the
// previous list piece. The result always holds at least one paragraph.
func MaterializeCell(text string) doc.Cell {
	normalized := NormalizeHTML(text, true)
	parts := strings.Split(normalized, BreakMarker)

	paragraphs := make([]doc.Paragraph, 0, len(parts))
	prev := -1
	for _, part := range parts {
		if m := cellListRe.FindStringSubmatch(part); m != nil {
			level := clampLevel(len(m[1])/DefaultIndentUnit, prev)
			paragraphs = append(paragraphs, doc.Paragraph{
				Runs: FormatInline(strings.TrimSpace(html.UnescapeString(m[3]))),
				List: &doc.ListStyle{
					Ordered: m[2][0] >= '0' && m[2][0] <= '9',
					Level:   level,
				},
			})
			prev = level
			continue
		}
		prev = -1
		paragraphs = append(paragraphs, doc.Paragraph{Runs: FormatInline(strings.TrimSpace(html.UnescapeString(part)))})
	}
	if len(paragraphs) == 0 {
		paragraphs = append(paragraphs, doc.Paragraph{})
	}
	return doc.Cell{Paragraphs: paragraphs}
}

// MaterializeTable builds a table node, re-parsing every header and body cell.
func MaterializeTable(data TableData) doc.Table {
	table := doc.Table{
		Header: make([]doc.Cell, len(data.Headers)),
		Rows:   make([][]doc.Cell, 0, len(data.Rows)),
		Align:  append([]doc.Alignment(nil), data.Align...),
	}
	for i, h := range data.Headers {
		table.Header[i] = MaterializeCell(h)
	}
	for _, row := range data.Rows {
		cells := make([]doc.Cell, len(row))
		for i, c := range row {
			cells[i] = MaterializeCell(c)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
