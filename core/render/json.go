// Package render — JSON renderer.
// Serializes the document nodes with a "type" discriminator next to the
// metadata, a structure summary and the plain text of the document.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/mdconvert/core"
	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// JSONDocument is the top-level JSON output.
type JSONDocument struct {
	Metadata  core.DocumentMetadata  `json:"metadata"`
	Structure core.DocumentStructure `json:"structure"`
	Text      string                 `json:"text"`
	Nodes     []JSONNode             `json:"nodes"`
}

// JSONNode is the wire form of one doc.Node. Only the fields of its
// type are populated.
type JSONNode struct {
	Type       string          `json:"type"`
	Level      int             `json:"level,omitempty"`
	Runs       []doc.Run       `json:"runs,omitempty"`
	Entries    []doc.ListEntry `json:"entries,omitempty"`
	Header     []JSONCell      `json:"header,omitempty"`
	Rows       [][]JSONCell    `json:"rows,omitempty"`
	Align      []string        `json:"align,omitempty"`
	Paragraphs []JSONParagraph `json:"paragraphs,omitempty"`
	Language   string          `json:"language,omitempty"`
	Lines      []string        `json:"lines,omitempty"`
}

// JSONParagraph is a paragraph inside a cell or blockquote.
type JSONParagraph struct {
	Runs []doc.Run      `json:"runs"`
	List *doc.ListStyle `json:"list,omitempty"`
}

// JSONCell is one table cell.
type JSONCell struct {
	Paragraphs []JSONParagraph `json:"paragraphs"`
}

// JSONRenderer produces structured JSON output from document nodes.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts nodes and metadata into indented JSON.
func (r *JSONRenderer) Render(nodes []doc.Node, meta core.DocumentMetadata) ([]byte, error) {
	out := JSONDocument{
		Metadata:  meta,
		Structure: Structure(nodes),
		Text:      PlainText(nodes),
		Nodes:     make([]JSONNode, 0, len(nodes)),
	}
	for _, n := range nodes {
		out.Nodes = append(out.Nodes, jsonNode(n))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func jsonNode(n doc.Node) JSONNode {
	out := JSONNode{Type: n.Kind().String()}
	switch n := n.(type) {
	case doc.Heading:
		out.Level = n.Level
		out.Runs = n.Runs
	case doc.Paragraph:
		out.Runs = n.Runs
	case doc.List:
		out.Entries = n.Entries
	case doc.Table:
		out.Header = jsonCells(n.Header)
		out.Rows = make([][]JSONCell, len(n.Rows))
		for i, row := range n.Rows {
			out.Rows[i] = jsonCells(row)
		}
		out.Align = make([]string, len(n.Align))
		for i, a := range n.Align {
			out.Align[i] = a.String()
		}
	case doc.Blockquote:
		out.Paragraphs = jsonParagraphs(n.Paragraphs)
	case doc.CodeBlock:
		out.Language = n.Language
		out.Lines = n.Lines
	case doc.Rule:
	default:
		panic(fmt.Sprintf("render: unhandled node %T", n))
	}
	return out
}

func jsonCells(cells []doc.Cell) []JSONCell {
	out := make([]JSONCell, len(cells))
	for i, c := range cells {
		out[i] = JSONCell{Paragraphs: jsonParagraphs(c.Paragraphs)}
	}
	return out
}

func jsonParagraphs(ps []doc.Paragraph) []JSONParagraph {
	out := make([]JSONParagraph, len(ps))
	for i, p := range ps {
		runs := p.Runs
		if runs == nil {
			runs = []doc.Run{}
		}
		out[i] = JSONParagraph{Runs: runs, List: p.List}
	}
	return out
}

// Structure counts the structural elements of nodes.
func Structure(nodes []doc.Node) core.DocumentStructure {
	s := core.DocumentStructure{Headings: []core.Heading{}}
	for _, n := range nodes {
		switch n := n.(type) {
		case doc.Heading:
			s.Headings = append(s.Headings, core.Heading{Level: n.Level, Text: strings.TrimSpace(n.Text())})
		case doc.Paragraph:
			s.Paragraphs++
		case doc.List:
			s.Lists++
			s.ListEntries += len(n.Entries)
		case doc.Table:
			s.Tables++
		case doc.Blockquote:
			s.Blockquotes++
		case doc.CodeBlock:
			s.CodeBlocks++
		case doc.Rule:
			s.Rules++
		}
	}
	return s
}
