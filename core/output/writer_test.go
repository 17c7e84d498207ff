package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFlatName(t *testing.T) {
	cases := map[string]string{
		"docs/guide.md":                        "guide",
		"/abs/path/notes.markdown":             "notes",
		"README":                               "README",
		"https://example.com":                  "example_com",
		"https://example.com/docs/intro.md":    "example_com_docs_intro",
		"https://example.com/a/b-c/page.html/": "example_com_a_b-c_page",
	}
	for in, want := range cases {
		if got := FlatName(in); got != want {
			t.Fatalf("FlatName(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path, err := w.Write("notes/guide.md", []byte("data"), ".docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "out", "guide.docx") {
		t.Fatalf("unexpected path %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "data" {
		t.Fatalf("expected written data, got %q (%v)", b, err)
	}
}

func TestWriteMirrored(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	root := filepath.Join("src", "docs")
	path, err := w.WriteMirrored(root, filepath.Join(root, "api", "intro.md"), []byte("x"), ".pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "api", "intro.pdf") {
		t.Fatalf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}

	if _, err := w.WriteMirrored(root, filepath.Join("elsewhere", "x.md"), nil, ".pdf"); err == nil {
		t.Fatalf("expected error for a path outside root")
	}
}

func TestNewDefaultsToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	w, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if w.OutputDir != wd {
		t.Fatalf("expected %s, got %s", wd, w.OutputDir)
	}
}
