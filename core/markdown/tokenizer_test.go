package markdown

import (
	"strings"
	"testing"
)

func tokenKinds(tokens []Token) []Kind {
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func assertKinds(t *testing.T, tokens []Token, want ...Kind) {
	t.Helper()
	got := tokenKinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected kinds %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s (all: %v)", i, want[i], got[i], got)
		}
	}
}

func TestTokenizeBlockKinds(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"",
		"Para line",
		"",
		"- a",
		"- b",
		"",
		"1. x",
		"",
		"> quote",
		"",
		"---",
		"",
		"```go",
		"code",
		"```",
		"",
		"| a | b |",
		"|---|---|",
		"| 1 | 2 |",
	}, "\n")

	tokens, diags := Tokenize(src, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	assertKinds(t, tokens,
		KindHeading1, KindParagraph,
		KindUnorderedListItem, KindUnorderedListItem, KindOrderedListItem,
		KindBlockquote, KindHorizontalRule, KindCodeBlock, KindTable,
	)
	code := tokens[7]
	if code.Language != "go" || code.Content != "code" {
		t.Fatalf("unexpected code token %+v", code)
	}
	if tokens[8].Table == nil || len(tokens[8].Table.Rows) != 1 {
		t.Fatalf("expected table data with one row, got %+v", tokens[8].Table)
	}
}

func TestTokenizeHeadingVariants(t *testing.T) {
	tokens, _ := Tokenize("## Title ##\n###### deep", Options{})
	assertKinds(t, tokens, KindHeading2, KindHeading6)
	if tokens[0].Content != "Title" {
		t.Fatalf("expected closing hashes to be dropped, got %q", tokens[0].Content)
	}
	if tokens[1].Kind.HeadingLevel() != 6 {
		t.Fatalf("expected level 6")
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n\t\n"} {
		tokens, diags := Tokenize(src, Options{})
		if tokens != nil || diags != nil {
			t.Fatalf("expected nothing for %q, got %v %v", src, tokens, diags)
		}
	}
}

func TestTokenizeUnclosedFence(t *testing.T) {
	tokens, diags := Tokenize("```\nabc\ndef", Options{})
	assertKinds(t, tokens, KindCodeBlock)
	if tokens[0].Content != "abc\ndef" {
		t.Fatalf("expected code to run to the end, got %q", tokens[0].Content)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnclosedFence {
		t.Fatalf("expected unclosed fence diagnostic, got %v", diags)
	}
}

func TestTokenizeHTMLListSpansLines(t *testing.T) {
	src := strings.Join([]string{
		"<ul>",
		"  <li>One</li>",
		"  <li>Two",
		"    <ul><li>Inner</li></ul>",
		"  </li>",
		"</ul> tail text",
	}, "\n")

	tokens, diags := Tokenize(src, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	assertKinds(t, tokens, KindHTMLUnorderedList, KindParagraph)
	if !strings.Contains(tokens[0].Content, "Inner") || strings.Contains(tokens[0].Content, "tail") {
		t.Fatalf("unexpected list block %q", tokens[0].Content)
	}
	if tokens[1].Content != "tail text" {
		t.Fatalf("expected trailing text paragraph, got %q", tokens[1].Content)
	}
}

func TestTokenizeHTMLOrderedAndUnclosed(t *testing.T) {
	tokens, _ := Tokenize("<OL>\n<li>x</li>\n</OL>", Options{})
	assertKinds(t, tokens, KindHTMLOrderedList)

	tokens, diags := Tokenize("<ul><li>a\n<li>b", Options{})
	assertKinds(t, tokens, KindHTMLUnorderedList)
	if len(diags) != 1 || diags[0].Kind != DiagUnclosedHTMLList {
		t.Fatalf("expected unclosed list diagnostic, got %v", diags)
	}
}

func TestTokenizeListLevels(t *testing.T) {
	tokens, _ := Tokenize("- a\n  - b\n    - c\n- d", Options{})
	assertKinds(t, tokens, KindUnorderedListItem, KindUnorderedListItem, KindUnorderedListItem, KindUnorderedListItem)
	for i, want := range []int{0, 1, 2, 0} {
		if tokens[i].Level != want {
			t.Fatalf("item %d: expected level %d, got %d", i, want, tokens[i].Level)
		}
	}
}

func TestTokenizeListIndentOptions(t *testing.T) {
	tokens, _ := Tokenize("- a\n\t- b", Options{})
	if tokens[1].Level != 1 {
		t.Fatalf("expected a tab to count as one level, got %d", tokens[1].Level)
	}

	tokens, _ = Tokenize("1. a\n    2. b\n  3. c", Options{IndentUnit: 4})
	for i, want := range []int{0, 1, 0} {
		if tokens[i].Level != want {
			t.Fatalf("item %d: expected level %d with unit 4, got %d", i, want, tokens[i].Level)
		}
	}
}

func TestTokenizeListContinuation(t *testing.T) {
	tokens, _ := Tokenize("- item\n  continued\n- next", Options{})
	assertKinds(t, tokens, KindUnorderedListItem, KindUnorderedListItem)
	if tokens[0].Content != "item continued" {
		t.Fatalf("expected lazy continuation, got %q", tokens[0].Content)
	}
}

func TestTokenizeParagraphSplitsAtInlineHTMLList(t *testing.T) {
	tokens, _ := Tokenize("Intro text <ul><li>A</li><li>B</li></ul>", Options{})
	assertKinds(t, tokens, KindParagraph, KindHTMLUnorderedList)
	if tokens[0].Content != "Intro text" {
		t.Fatalf("unexpected paragraph %q", tokens[0].Content)
	}

	tokens, _ = Tokenize("Para\n<ul><li>x</li></ul>", Options{})
	assertKinds(t, tokens, KindParagraph, KindHTMLUnorderedList)
}

func TestTokenizeParagraphSplitsAtUnclosedInlineHTMLList(t *testing.T) {
	tokens, diags := Tokenize("Intro <ul><li>x</li><li>y</li>", Options{})
	assertKinds(t, tokens, KindParagraph, KindHTMLUnorderedList)
	if tokens[0].Content != "Intro" {
		t.Fatalf("unexpected paragraph %q", tokens[0].Content)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnclosedHTMLList {
		t.Fatalf("expected unclosed list diagnostic, got %v", diags)
	}
	if entries := MaterializeHTML(tokens[1].Content, 0); len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestTokenizeCodeSpanListTagStaysInParagraph(t *testing.T) {
	tokens, _ := Tokenize("Write `<ul>` and `</ul>` pairs", Options{})
	assertKinds(t, tokens, KindParagraph)
}

func TestTokenizeParagraphJoining(t *testing.T) {
	tokens, _ := Tokenize("a\r\nb", Options{})
	if tokens[0].Content != "a b" {
		t.Fatalf("expected soft wrap join, got %q", tokens[0].Content)
	}

	tokens, _ = Tokenize("one  \ntwo\\\nthree", Options{})
	if tokens[0].Content != "one\ntwo\nthree" {
		t.Fatalf("expected hard breaks, got %q", tokens[0].Content)
	}
}

func TestTokenizeMalformedTable(t *testing.T) {
	tokens, diags := Tokenize("| a | b |\nnot a separator", Options{})
	assertKinds(t, tokens, KindParagraph)
	if len(diags) != 1 || diags[0].Kind != DiagMalformedTable || diags[0].Line != 0 {
		t.Fatalf("expected malformed table diagnostic on line 0, got %v", diags)
	}
}

func TestTokenizeDroppedTableRow(t *testing.T) {
	src := "| a | b | c |\n|---|---|---|\n| 1 | 2 | 3 |\n| 1 | 2 |"
	tokens, diags := Tokenize(src, Options{})
	assertKinds(t, tokens, KindTable)
	if len(diags) != 1 || diags[0].Kind != DiagDroppedTableRow || diags[0].Line != 3 {
		t.Fatalf("expected dropped row diagnostic on line 3, got %v", diags)
	}
	if !strings.Contains(diags[0].String(), "line 4") {
		t.Fatalf("expected 1-based line in message, got %q", diags[0].String())
	}
}

func TestTokenizeBlockquoteContent(t *testing.T) {
	tokens, _ := Tokenize("> line one\n> line two\n>\n> # Head\nafter", Options{})
	assertKinds(t, tokens, KindBlockquote, KindParagraph)
	if tokens[0].Content != "line one\nline two\n\n# Head" {
		t.Fatalf("unexpected quote content %q", tokens[0].Content)
	}
}
