package extract

import (
	"strings"
	"testing"
)

const page = `<!doctype html>
<html lang="de">
<head><title> Guide </title><script>var x;</script></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
  <h1>Heading</h1>
  <ul><li>One</li><li>Two</li></ul>
  <img src="x.png">
</main>
<footer>bye</footer>
</body>
</html>`

func TestExtractMainContent(t *testing.T) {
	content, title, err := New().Extract(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Guide" {
		t.Fatalf("expected title %q, got %q", "Guide", title)
	}
	if !strings.Contains(content, "<li>Two</li>") {
		t.Fatalf("expected list to survive, got %q", content)
	}
	for _, noise := range []string{"Home", "bye", "<img", "var x"} {
		if strings.Contains(content, noise) {
			t.Fatalf("expected %q to be removed, got %q", noise, content)
		}
	}
}

func TestExtractTitleFallsBackToH1(t *testing.T) {
	_, title, err := New().Extract("<body><article><h1>First</h1><p>x</p></article></body>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "First" {
		t.Fatalf("expected h1 title, got %q", title)
	}
}

func TestLanguage(t *testing.T) {
	if got := Language(page); got != "de" {
		t.Fatalf("expected %q, got %q", "de", got)
	}
	if got := Language("<p>x</p>"); got != "" {
		t.Fatalf("expected no language, got %q", got)
	}
}
