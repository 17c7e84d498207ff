// Package core defines the pipeline interfaces for mdconvert.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// Format is the detected input format of a source document.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// SourceDocument is a loaded input, decoded to UTF-8.
type SourceDocument struct {
	Location string // path or URL as given
	Name     string // base name used for the source notice and output file
	Format   Format
	Text     string
	Size     int64
	Modified time.Time // zero when unknown
}

// DocumentMetadata describes a converted document.
type DocumentMetadata struct {
	Title       string   `json:"title"`
	Author      string   `json:"author,omitempty"`
	Date        string   `json:"date,omitempty"`
	Language    string   `json:"language,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Source      string   `json:"source"`
	SourceName  string   `json:"source_name"`
	Format      Format   `json:"format"`
	Size        int64    `json:"size"`
	Modified    string   `json:"modified,omitempty"` // RFC3339
	ConvertedAt string   `json:"converted_at"`       // RFC3339
	Warnings    []string `json:"warnings,omitempty"`
}

// Heading is one heading in the structure summary.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// DocumentStructure counts structural elements of a node sequence.
type DocumentStructure struct {
	Headings    []Heading `json:"headings"`
	Paragraphs  int       `json:"paragraphs"`
	Lists       int       `json:"lists"`
	ListEntries int       `json:"list_entries"`
	Tables      int       `json:"tables"`
	CodeBlocks  int       `json:"code_blocks"`
	Blockquotes int       `json:"blockquotes"`
	Rules       int       `json:"rules"`
}

// Loader reads a document from a file path or URL.
type Loader interface {
	Load(ctx context.Context, location string) (*SourceDocument, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
// It also returns the page title when one is present.
type Extractor interface {
	Extract(html string) (content string, title string, err error)
}

// Normalizer converts cleaned HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts document nodes (and metadata) into a final output format.
type Renderer interface {
	Render(nodes []doc.Node, meta DocumentMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".docx", ".pdf").
	Extension() string
}
