// Package markdown converts Markdown text into document nodes.
//
// The pipeline is: Tokenize (block tokens) → materializers (lists, tables,
// inline runs, HTML fragments) → Assemble (ordered doc.Node sequence).
// Everything runs synchronously over in-memory strings; there is no
// package-level mutable state, so an Engine may be shared across goroutines.
package markdown

import (
	"fmt"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// Kind identifies a block token.
type Kind int

const (
	KindHeading1 Kind = iota
	KindHeading2
	KindHeading3
	KindHeading4
	KindHeading5
	KindHeading6
	KindParagraph
	KindUnorderedListItem
	KindOrderedListItem
	KindHTMLUnorderedList
	KindHTMLOrderedList
	KindCodeBlock
	KindTable
	KindBlockquote
	KindHorizontalRule

	kindCount
)

var tokenKindNames = [...]string{
	KindHeading1:          "heading1",
	KindHeading2:          "heading2",
	KindHeading3:          "heading3",
	KindHeading4:          "heading4",
	KindHeading5:          "heading5",
	KindHeading6:          "heading6",
	KindParagraph:         "paragraph",
	KindUnorderedListItem: "unordered_list_item",
	KindOrderedListItem:   "ordered_list_item",
	KindHTMLUnorderedList: "html_unordered_list",
	KindHTMLOrderedList:   "html_ordered_list",
	KindCodeBlock:         "code_block",
	KindTable:             "table",
	KindBlockquote:        "blockquote",
	KindHorizontalRule:    "horizontal_rule",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// headingKind maps a heading depth (1-6) to its token kind.
func headingKind(level int) Kind {
	return KindHeading1 + Kind(level-1)
}

// HeadingLevel returns 1-6 for heading kinds and 0 otherwise.
func (k Kind) HeadingLevel() int {
	if k >= KindHeading1 && k <= KindHeading6 {
		return int(k-KindHeading1) + 1
	}
	return 0
}

// IsListItem reports whether k is a markdown list item.
func (k Kind) IsListItem() bool {
	return k == KindUnorderedListItem || k == KindOrderedListItem
}

// Token is one block of the source document.
type Token struct {
	Kind     Kind
	Content  string
	Level    int
	Language string
	Table    *TableData
	// Line is the 0-based source line the token starts on.
	Line int
}

// TableData is a parsed pipe table. Every row has len(Headers) cells.
type TableData struct {
	Headers []string
	Rows    [][]string
	Align   []doc.Alignment
}

// DiagnosticKind classifies a recognized-but-invalid fragment.
type DiagnosticKind int

const (
	DiagMalformedTable DiagnosticKind = iota
	DiagDroppedTableRow
	DiagUnclosedHTMLList
	DiagUnclosedFence
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagMalformedTable:
		return "malformed_table"
	case DiagDroppedTableRow:
		return "dropped_table_row"
	case DiagUnclosedHTMLList:
		return "unclosed_html_list"
	case DiagUnclosedFence:
		return "unclosed_fence"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Diagnostic records a degradation the engine absorbed.
type Diagnostic struct {
	Kind   DiagnosticKind
	Line   int
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line+1, d.Kind, d.Detail)
}

// Options tune parsing. The zero value is usable.
type Options struct {
	// IndentUnit is the number of columns per list nesting level.
	IndentUnit int
	// TabWidth is the column width a tab expands to inside list indentation.
	// Zero means one IndentUnit.
	TabWidth int
}

// DefaultIndentUnit is the canonical list indent width.
const DefaultIndentUnit = 2

func (o Options) withDefaults() Options {
	if o.IndentUnit <= 0 {
		o.IndentUnit = DefaultIndentUnit
	}
	if o.TabWidth <= 0 {
		o.TabWidth = o.IndentUnit
	}
	return o
}
