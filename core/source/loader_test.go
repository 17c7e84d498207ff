package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaurav-prasanna/mdconvert/core"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(p, []byte("\xEF\xBB\xBF# Hi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := New().Load(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "# Hi\n" {
		t.Fatalf("expected BOM to be stripped, got %q", doc.Text)
	}
	if doc.Name != "notes.md" || doc.Format != core.FormatMarkdown || doc.Size != 8 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Modified.IsZero() {
		t.Fatalf("expected modification time")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := New().Load(context.Background(), filepath.Join(dir, "missing.md")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := New().Load(context.Background(), dir); err == nil {
		t.Fatalf("expected error for directory")
	}
	bin := filepath.Join(dir, "x.md")
	if err := os.WriteFile(bin, []byte{0x00, 0x01, 0x02}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New().Load(context.Background(), bin); err == nil {
		t.Fatalf("expected error for binary content")
	}
}

func TestLoadURL(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/guide":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
			_, _ = w.Write([]byte("<html><body><p>x</p></body></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := New(WithUserAgent("tester/1"), WithTimeout(5*time.Second))
	doc, err := loader.Load(context.Background(), srv.URL+"/guide")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Format != core.FormatHTML || doc.Name != "guide" {
		t.Fatalf("unexpected document %+v", doc)
	}
	if gotUA != "tester/1" {
		t.Fatalf("expected custom user agent, got %q", gotUA)
	}
	if doc.Modified.Year() != 2006 {
		t.Fatalf("expected Last-Modified to be parsed, got %s", doc.Modified)
	}

	if _, err := loader.Load(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoadURLCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Load(ctx, srv.URL+"/a.md"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		location    string
		contentType string
		data        string
		want        core.Format
	}{
		{"a.md", "", "<html>", core.FormatMarkdown},
		{"a.HTM", "", "", core.FormatHTML},
		{"https://x.test/page", "text/html", "", core.FormatHTML},
		{"https://x.test/readme", "text/markdown", "", core.FormatMarkdown},
		{"noext", "", "  <!DOCTYPE html><html>", core.FormatHTML},
		{"noext", "", "# heading", core.FormatMarkdown},
	}
	for _, c := range cases {
		if got := DetectFormat(c.location, c.contentType, []byte(c.data)); got != c.want {
			t.Fatalf("DetectFormat(%q, %q): expected %s, got %s", c.location, c.contentType, c.want, got)
		}
	}
}

func TestDecodeTextUTF16(t *testing.T) {
	le := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	if got := DecodeText(le); got != "hi" {
		t.Fatalf("expected %q, got %q", "hi", got)
	}
	be := []byte{0xFE, 0xFF, 0x00, 'o', 0x00, 'k'}
	if got := DecodeText(be); got != "ok" {
		t.Fatalf("expected %q, got %q", "ok", got)
	}
}
