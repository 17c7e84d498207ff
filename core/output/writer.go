// Package output handles file naming and writing for mdconvert outputs.
// Single inputs are written flat (guide.md → guide.docx, a URL becomes
// example_com_docs_intro.docx). Folder conversions mirror the source tree.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write writes output for a single input.
// Filename: the input's base name with ext, or a flattened URL.
func (w *Writer) Write(location string, data []byte, ext string) (string, error) {
	return w.write(filepath.Join(w.OutputDir, FlatName(location)+ext), data)
}

// WriteMirrored writes output for a file found under root, keeping its
// relative directory. Example: root/docs/intro.md → out/docs/intro.docx
func (w *Writer) WriteMirrored(root, path string, data []byte, ext string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not inside %s", path, root)
	}
	return w.write(filepath.Join(w.OutputDir, stripExt(rel)+ext), data)
}

func (w *Writer) write(fullPath string, data []byte) (string, error) {
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// FlatName derives an output base name (no extension) from a path or URL.
func FlatName(location string) string {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return filenameFromURL(location)
	}
	name := stripExt(filepath.Base(location))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "document"
	}
	return name
}

func stripExt(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro.md → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		path = strings.TrimSuffix(path, ".md")
		path = strings.TrimSuffix(path, ".html")
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
