package markdown

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// Assemble turns tokens into document nodes, in order, after the header
// nodes. Contiguous list-item tokens become a single List. A token kind
// without a case here is a programming error and panics.
func Assemble(tokens []Token, header []doc.Node) []doc.Node {
	nodes := make([]doc.Node, 0, len(header)+len(tokens))
	nodes = append(nodes, header...)

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		switch tok.Kind {
		case KindHeading1, KindHeading2, KindHeading3, KindHeading4, KindHeading5, KindHeading6:
			nodes = append(nodes, doc.Heading{
				Level: tok.Kind.HeadingLevel(),
				Runs:  blockRuns(tok.Content),
			})
		case KindParagraph:
			nodes = append(nodes, doc.Paragraph{Runs: blockRuns(tok.Content)})
		case KindUnorderedListItem, KindOrderedListItem:
			end := i
			for end < len(tokens) && tokens[end].Kind.IsListItem() {
				end++
			}
			nodes = append(nodes, doc.List{Entries: MaterializeItems(tokens[i:end])})
			i = end
			continue
		case KindHTMLUnorderedList, KindHTMLOrderedList:
			nodes = append(nodes, htmlListNode(tok.Content))
		case KindCodeBlock:
			nodes = append(nodes, doc.CodeBlock{
				Language: tok.Language,
				Lines:    strings.Split(tok.Content, "\n"),
			})
		case KindTable:
			if tok.Table == nil {
				panic(fmt.Sprintf("markdown: table token at line %d has no table data", tok.Line+1))
			}
			nodes = append(nodes, MaterializeTable(*tok.Table))
		case KindBlockquote:
			nodes = append(nodes, blockquoteNode(tok.Content))
		case KindHorizontalRule:
			nodes = append(nodes, doc.Rule{})
		default:
			panic(fmt.Sprintf("markdown: unhandled token kind %s", tok.Kind))
		}
		i++
	}
	return nodes
}

// blockRuns normalizes block-context HTML and formats the result. Hard
// breaks become break runs; whitespace around them is dropped.
func blockRuns(content string) []doc.Run {
	lines := strings.Split(NormalizeHTML(content, false), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return FormatText(strings.Join(lines, "\n"))
}

// htmlListNode materializes an HTML list block. A block with no <li> at
// all keeps its text as a paragraph rather than vanishing.
func htmlListNode(block string) doc.Node {
	entries := MaterializeHTML(block, 0)
	if len(entries) == 0 {
		return doc.Paragraph{Runs: blockRuns(collapseSpace(block))}
	}
	return doc.List{Entries: entries}
}

// blockquoteNode splits quoted content into sections at blank lines. A
// quoted ATX heading is always a section of its own and is rendered bold.
func blockquoteNode(content string) doc.Blockquote {
	var quote doc.Blockquote
	var section []string

	flush := func() {
		if len(section) == 0 {
			return
		}
		quote.Paragraphs = append(quote.Paragraphs, doc.Paragraph{Runs: blockRuns(joinParagraphLines(section))})
		section = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimLeft(line, "> ")
		if isBlankLine(line) {
			flush()
			continue
		}
		if _, text, ok := parseHeading(line); ok {
			flush()
			runs := blockRuns(text)
			for i := range runs {
				runs[i].Bold = !runs[i].Break
			}
			quote.Paragraphs = append(quote.Paragraphs, doc.Paragraph{Runs: runs})
			continue
		}
		section = append(section, line)
	}
	flush()
	return quote
}
