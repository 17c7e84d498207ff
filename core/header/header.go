// Package header builds the info block placed before a converted document:
// a title heading, the source notice, a metadata line and a list of
// conversion warnings. It also reads front matter, which feeds the title.
package header

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/mdconvert/core"
	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// Options selects the parts of the header block.
type Options struct {
	Enabled      bool
	SourceNotice bool
	Metadata     bool
	Warnings     bool
}

// DefaultOptions enables every part.
func DefaultOptions() Options {
	return Options{Enabled: true, SourceNotice: true, Metadata: true, Warnings: true}
}

// NewMetadata describes src. Front matter wins over the extracted HTML
// title, which wins over the file name.
func NewMetadata(src *core.SourceDocument, fm FrontMatter, htmlTitle string, now time.Time) core.DocumentMetadata {
	meta := core.DocumentMetadata{
		Title:       fm.Title,
		Author:      fm.Author,
		Date:        fm.Date,
		Language:    fm.Language,
		Keywords:    fm.Tags,
		Source:      src.Location,
		SourceName:  src.Name,
		Format:      src.Format,
		Size:        src.Size,
		ConvertedAt: now.UTC().Format(time.RFC3339),
	}
	if meta.Title == "" {
		meta.Title = htmlTitle
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSuffix(src.Name, filepath.Ext(src.Name))
	}
	if !src.Modified.IsZero() {
		meta.Modified = src.Modified.UTC().Format(time.RFC3339)
	}
	return meta
}

// Build returns the header nodes for meta. warnings are rendered as a
// bulleted list under a "Conversion warnings" line. A disabled header is nil.
func Build(meta core.DocumentMetadata, warnings []string, opts Options) []doc.Node {
	if !opts.Enabled {
		return nil
	}

	var nodes []doc.Node
	if meta.Title != "" {
		nodes = append(nodes, doc.Heading{Level: 1, Runs: []doc.Run{doc.Plain(meta.Title)}})
	}
	if opts.SourceNotice && meta.SourceName != "" {
		nodes = append(nodes, doc.Paragraph{Runs: []doc.Run{
			{Text: "Converted from ", Italic: true},
			{Text: meta.SourceName, Italic: true, Monospace: true},
		}})
	}
	if opts.Metadata {
		if line := metadataLine(meta); line != "" {
			nodes = append(nodes, doc.Paragraph{Runs: []doc.Run{{Text: line, Italic: true}}})
		}
	}
	if opts.Warnings && len(warnings) > 0 {
		nodes = append(nodes, doc.Paragraph{Runs: []doc.Run{{Text: "Conversion warnings", Bold: true}}})
		entries := make([]doc.ListEntry, len(warnings))
		for i, w := range warnings {
			entries[i] = doc.ListEntry{Runs: []doc.Run{doc.Plain(w)}}
		}
		nodes = append(nodes, doc.List{Entries: entries})
	}
	if len(nodes) > 0 {
		nodes = append(nodes, doc.Rule{})
	}
	return nodes
}

func metadataLine(meta core.DocumentMetadata) string {
	var parts []string
	if meta.Author != "" {
		parts = append(parts, "Author: "+meta.Author)
	}
	if meta.Date != "" {
		parts = append(parts, "Date: "+meta.Date)
	}
	if meta.Size > 0 {
		parts = append(parts, "Size: "+humanSize(meta.Size))
	}
	if meta.Modified != "" {
		parts = append(parts, "Modified: "+meta.Modified)
	}
	if meta.ConvertedAt != "" {
		parts = append(parts, "Converted: "+meta.ConvertedAt)
	}
	return strings.Join(parts, " · ")
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
