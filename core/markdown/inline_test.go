package markdown

import (
	"testing"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

func runsText(runs []doc.Run) string {
	return doc.RunsText(runs)
}

func TestFormatInlineReconstructsPlainLines(t *testing.T) {
	lines := []string{
		"Hello world, no markup here.",
		"snake_case_name stays intact",
		"no stars here at all",
		"price ~ 3 and tilde~",
		"",
	}
	for _, line := range lines {
		got := runsText(FormatInline(line))
		if got != line {
			t.Fatalf("expected %q to reconstruct, got %q", line, got)
		}
	}
}

func TestFormatInlineDropsOnlyAcceptedDelimiters(t *testing.T) {
	cases := map[string]string{
		"Hello **world**.":           "Hello world.",
		"a `code` b":                 "a code b",
		"~~gone~~ and _it_":          "gone and it",
		"**a *b* c**":                "a *b* c",
		"mixed __bold__ and *soft*.": "mixed bold and soft.",
	}
	for in, want := range cases {
		if got := runsText(FormatInline(in)); got != want {
			t.Fatalf("FormatInline(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestFormatInlineBoldItalicIsOneRun(t *testing.T) {
	runs := FormatInline("***bold italic***")
	if len(runs) != 1 {
		t.Fatalf("expected a single run, got %d: %+v", len(runs), runs)
	}
	r := runs[0]
	if !r.Bold || !r.Italic {
		t.Fatalf("expected bold and italic, got %+v", r)
	}
	if r.Text != "bold italic" {
		t.Fatalf("expected text %q, got %q", "bold italic", r.Text)
	}
}

func TestFormatInlineHelloWorld(t *testing.T) {
	runs := FormatInline("Hello **world**.")
	want := []doc.Run{
		{Text: "Hello "},
		{Text: "world", Bold: true},
		{Text: "."},
	}
	if len(runs) != len(want) {
		t.Fatalf("expected %d runs, got %d: %+v", len(want), len(runs), runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("run %d: expected %+v, got %+v", i, want[i], runs[i])
		}
	}
}

func TestFormatInlineFirstWinsDiscardsInnerSpans(t *testing.T) {
	runs := FormatInline("**a *b* c**")
	if len(runs) != 1 {
		t.Fatalf("expected inner italic to be discarded, got %+v", runs)
	}
	if !runs[0].Bold || runs[0].Italic {
		t.Fatalf("expected bold-only run, got %+v", runs[0])
	}
}

func TestFormatInlineCodeSpanKeepsMarkup(t *testing.T) {
	runs := FormatInline("use `**raw**` here")
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %+v", runs)
	}
	if !runs[1].Monospace || runs[1].Text != "**raw**" {
		t.Fatalf("expected monospace literal, got %+v", runs[1])
	}
	if runs[1].Bold {
		t.Fatalf("code span must not pick up bold: %+v", runs[1])
	}
}

func TestFormatInlineStyles(t *testing.T) {
	runs := FormatInline("a `code` and ~~gone~~ and _it_")
	var mono, strike, italic bool
	for _, r := range runs {
		switch {
		case r.Monospace && r.Text == "code":
			mono = true
		case r.Strike && r.Text == "gone":
			strike = true
		case r.Italic && r.Text == "it":
			italic = true
		}
	}
	if !mono || !strike || !italic {
		t.Fatalf("expected monospace, strike and italic runs, got %+v", runs)
	}
}

func TestFormatTextInsertsBreakRuns(t *testing.T) {
	runs := FormatText("one\n**two**")
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %+v", runs)
	}
	if !runs[1].Break {
		t.Fatalf("expected a break run in the middle, got %+v", runs[1])
	}
	if !runs[2].Bold || runs[2].Text != "two" {
		t.Fatalf("expected bold second line, got %+v", runs[2])
	}
	if FormatText("") != nil {
		t.Fatalf("expected no runs for empty text")
	}
}
