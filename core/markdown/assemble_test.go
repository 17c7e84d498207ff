package markdown

import (
	"testing"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

func TestAssembleHandlesEveryKind(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		tok := Token{Kind: k, Content: "x"}
		if k == KindTable {
			tok.Table = &TableData{Headers: []string{"h"}, Rows: [][]string{{"v"}}, Align: []doc.Alignment{doc.AlignDefault}}
		}
		nodes := Assemble([]Token{tok}, nil)
		if len(nodes) != 1 {
			t.Fatalf("%s: expected one node, got %d", k, len(nodes))
		}
	}
}

func TestAssemblePanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for an unhandled token kind")
		}
	}()
	Assemble([]Token{{Kind: kindCount}}, nil)
}

func TestAssembleGroupsListItems(t *testing.T) {
	tokens := []Token{
		{Kind: KindUnorderedListItem, Content: "a"},
		{Kind: KindUnorderedListItem, Content: "b", Level: 1},
		{Kind: KindOrderedListItem, Content: "c"},
		{Kind: KindParagraph, Content: "p"},
		{Kind: KindUnorderedListItem, Content: "d"},
	}
	nodes := Assemble(tokens, nil)
	if len(nodes) != 3 {
		t.Fatalf("expected list, paragraph, list; got %d nodes", len(nodes))
	}
	first, ok := nodes[0].(doc.List)
	if !ok || len(first.Entries) != 3 {
		t.Fatalf("expected a 3-entry list, got %+v", nodes[0])
	}
	if _, ok := nodes[2].(doc.List); !ok {
		t.Fatalf("expected a second list after the paragraph, got %T", nodes[2])
	}
}

func TestAssemblePrependsHeader(t *testing.T) {
	header := []doc.Node{doc.Heading{Level: 1, Runs: []doc.Run{doc.Plain("Doc")}}}
	nodes := Assemble([]Token{{Kind: KindParagraph, Content: "body"}}, header)
	if len(nodes) != 2 {
		t.Fatalf("expected header plus body, got %d", len(nodes))
	}
	if h, ok := nodes[0].(doc.Heading); !ok || h.Text() != "Doc" {
		t.Fatalf("expected header first, got %+v", nodes[0])
	}
}

func TestAssembleBreakRuns(t *testing.T) {
	nodes := Assemble([]Token{{Kind: KindParagraph, Content: "one<br>  two"}}, nil)
	p := nodes[0].(doc.Paragraph)
	if len(p.Runs) != 3 || !p.Runs[1].Break {
		t.Fatalf("expected a break run between lines, got %+v", p.Runs)
	}
	if p.Text() != "one\ntwo" {
		t.Fatalf("expected whitespace around the break to be dropped, got %q", p.Text())
	}
}

func TestAssembleCodeBlockLines(t *testing.T) {
	nodes := Assemble([]Token{{Kind: KindCodeBlock, Content: "a\n  **b**", Language: "md"}}, nil)
	code := nodes[0].(doc.CodeBlock)
	if len(code.Lines) != 2 || code.Lines[1] != "  **b**" || code.Language != "md" {
		t.Fatalf("expected verbatim lines, got %+v", code)
	}
}

func TestAssembleHTMLListWithoutItems(t *testing.T) {
	nodes := Assemble([]Token{{Kind: KindHTMLUnorderedList, Content: "<ul>\n  loose text\n</ul>"}}, nil)
	p, ok := nodes[0].(doc.Paragraph)
	if !ok || p.Text() != "loose text" {
		t.Fatalf("expected text to survive as a paragraph, got %+v", nodes[0])
	}
}

func TestBlockquoteSegmentation(t *testing.T) {
	cases := []string{
		"# Heading\n\nprose text",
		"# Heading\nprose text",
	}
	for _, content := range cases {
		quote := blockquoteNode(content)
		if len(quote.Paragraphs) != 2 {
			t.Fatalf("%q: expected 2 paragraphs, got %d", content, len(quote.Paragraphs))
		}
		head := quote.Paragraphs[0]
		if head.Text() != "Heading" || !head.Runs[0].Bold {
			t.Fatalf("%q: expected bold heading section, got %+v", content, head)
		}
		if quote.Paragraphs[1].Text() != "prose text" {
			t.Fatalf("%q: unexpected prose section %+v", content, quote.Paragraphs[1])
		}
	}
}

func TestBlockquoteJoinsWrappedLines(t *testing.T) {
	quote := blockquoteNode("first\nsecond\n\nthird")
	if len(quote.Paragraphs) != 2 || quote.Paragraphs[0].Text() != "first second" {
		t.Fatalf("unexpected sections %+v", quote.Paragraphs)
	}
}
