// Package doc defines the format-agnostic document model produced by the
// Markdown engine and consumed by the renderers.
//
// Nodes describe what to render, never how. Renderers own numbering,
// fonts, page layout and byte packing.
package doc

import "strings"

// Run is the smallest unit of styled text.
// A Run with Break set is an explicit line break and carries no text.
type Run struct {
	Text      string `json:"text,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Strike    bool   `json:"strike,omitempty"`
	Monospace bool   `json:"monospace,omitempty"`
	Break     bool   `json:"break,omitempty"`
}

// Plain returns an unstyled run.
func Plain(text string) Run {
	return Run{Text: text}
}

// LineBreak returns a break run.
func LineBreak() Run {
	return Run{Break: true}
}

// SameStyle reports whether two runs share one exact combination of style flags.
func (r Run) SameStyle(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Strike == o.Strike &&
		r.Monospace == o.Monospace && r.Break == o.Break
}

// RunsText concatenates the text of runs, rendering breaks as "\n".
func RunsText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		if r.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(r.Text)
	}
	return b.String()
}

// Kind identifies a node variant.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindList
	KindTable
	KindBlockquote
	KindCodeBlock
	KindRule
)

var kindNames = [...]string{
	KindHeading:    "heading",
	KindParagraph:  "paragraph",
	KindList:       "list",
	KindTable:      "table",
	KindBlockquote: "blockquote",
	KindCodeBlock:  "code",
	KindRule:       "rule",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is one output unit. The set of implementations is closed.
type Node interface {
	Kind() Kind
	sealed()
}

// Heading is a section title, Level 1-6.
type Heading struct {
	Level int
	Runs  []Run
}

// Text returns the heading text without styling.
func (h Heading) Text() string { return RunsText(h.Runs) }

// ListStyle marks a paragraph as a list entry. It is used for list entries
// that live inside table cells, where a cell holds paragraphs only.
type ListStyle struct {
	Ordered bool `json:"ordered"`
	Level   int  `json:"level"`
}

// Paragraph is a block of runs. List is non-nil for list-entry paragraphs.
type Paragraph struct {
	Runs []Run
	List *ListStyle
}

// Text returns the paragraph text without styling.
func (p Paragraph) Text() string { return RunsText(p.Runs) }

// ListEntry is one item of a List.
type ListEntry struct {
	Runs    []Run `json:"runs"`
	Level   int   `json:"level"`
	Ordered bool  `json:"ordered"`
}

// Text returns the entry text without styling.
func (e ListEntry) Text() string { return RunsText(e.Runs) }

// List is a flat sequence of entries; nesting is carried by each entry's Level.
type List struct {
	Entries []ListEntry
}

// Alignment is a table column alignment.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "default"
	}
}

// Cell is a table cell. It always holds at least one paragraph.
type Cell struct {
	Paragraphs []Paragraph
}

// Text returns the cell paragraphs joined by newlines.
func (c Cell) Text() string {
	parts := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// Table is a header row plus body rows of equal width.
type Table struct {
	Header []Cell
	Rows   [][]Cell
	Align  []Alignment
}

// Columns returns the column count.
func (t Table) Columns() int { return len(t.Header) }

// Blockquote holds one paragraph per visually distinct quoted section.
type Blockquote struct {
	Paragraphs []Paragraph
}

// CodeBlock is verbatim text.
type CodeBlock struct {
	Language string
	Lines    []string
}

// Rule is a horizontal rule.
type Rule struct{}

func (Heading) Kind() Kind    { return KindHeading }
func (Paragraph) Kind() Kind  { return KindParagraph }
func (List) Kind() Kind       { return KindList }
func (Table) Kind() Kind      { return KindTable }
func (Blockquote) Kind() Kind { return KindBlockquote }
func (CodeBlock) Kind() Kind  { return KindCodeBlock }
func (Rule) Kind() Kind       { return KindRule }

func (Heading) sealed()    {}
func (Paragraph) sealed()  {}
func (List) sealed()       {}
func (Table) sealed()      {}
func (Blockquote) sealed() {}
func (CodeBlock) sealed()  {}
func (Rule) sealed()       {}
