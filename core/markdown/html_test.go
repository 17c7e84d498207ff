package markdown

import "testing"

func TestNormalizeHTMLBlockContext(t *testing.T) {
	cases := map[string]string{
		"a<br>b":                              "a\nb",
		"a<br/>b<BR />c":                      "a\nb\nc",
		"<strong>x</strong> and <em>y</em>":   "**x** and *y*",
		"<b>x</b><br/>":                       "**x**\n",
		"<div><span class=\"k\">t</span></div>": "t",
		"<p>para</p>":                         "para",
		"<ul><li>A</li></ul>":                 "A",
		"<code>x</code> <del>old</del>":       "`x` ~~old~~",
		"fish &amp; chips &lt;3":              "fish & chips <3",
		"plain text":                          "plain text",
	}
	for in, want := range cases {
		if got := NormalizeHTML(in, false); got != want {
			t.Fatalf("NormalizeHTML(%q, false): expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalizeHTMLCellContextKeepsBreakMarker(t *testing.T) {
	got := NormalizeHTML("one<br/>two<BR>three", true)
	if got != "one<br>two<br>three" {
		t.Fatalf("expected canonical break markers, got %q", got)
	}
}

func TestNormalizeHTMLCellContextRewritesLists(t *testing.T) {
	got := NormalizeHTML("<ul><li>A</li><li>B</li></ul>", true)
	if got != "- A<br>- B" {
		t.Fatalf("expected bullet lines, got %q", got)
	}

	got = NormalizeHTML("Steps:<ol><li>x</li><li><b>y</b></li></ol>", true)
	if got != "Steps:<br>1. x<br>2. **y**" {
		t.Fatalf("expected numbered lines after lead text, got %q", got)
	}
}

func TestNormalizeHTMLCellContextUnclosedList(t *testing.T) {
	got := NormalizeHTML("<ul><li>A<li>B", true)
	if got != "- A<br>- B" {
		t.Fatalf("expected unclosed list to be rewritten, got %q", got)
	}
}

func TestNormalizeHTMLDecodesEntitiesLast(t *testing.T) {
	cases := map[string]string{
		"&lt;b&gt;x&lt;/b&gt;":                  "<b>x</b>",
		"&lt;br&gt;":                            "<br>",
		"&amp;lt;":                              "&lt;",
		"<code class=\"go\">f()</code>":          "`f()`",
		"<s>a</s> <strike>b</strike> <del>c</del>": "~~a~~ ~~b~~ ~~c~~",
		"<span>s</span> <sup>2</sup>":           "s <sup>2</sup>",
	}
	for in, want := range cases {
		if got := NormalizeHTML(in, false); got != want {
			t.Fatalf("NormalizeHTML(%q, false): expected %q, got %q", in, want, got)
		}
	}
}

func TestNormalizeHTMLCellContextKeepsEntities(t *testing.T) {
	got := NormalizeHTML("a &lt;br&gt; b<br/>c &amp; d", true)
	if got != "a &lt;br&gt; b<br>c &amp; d" {
		t.Fatalf("expected entities to stay encoded in cell context, got %q", got)
	}
}
