package render

import (
	"encoding/json"
	"testing"

	"github.com/gaurav-prasanna/mdconvert/core"
)

func TestJSONRender(t *testing.T) {
	data, err := NewJSONRenderer().Render(sampleNodes(), core.DocumentMetadata{Title: "Guide", SourceName: "guide.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out JSONDocument
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("expected valid JSON: %v", err)
	}
	if out.Metadata.Title != "Guide" {
		t.Fatalf("unexpected metadata %+v", out.Metadata)
	}

	want := []string{"heading", "paragraph", "list", "list", "table", "blockquote", "code", "rule"}
	if len(out.Nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(out.Nodes))
	}
	for i, typ := range want {
		if out.Nodes[i].Type != typ {
			t.Fatalf("node %d: expected %s, got %s", i, typ, out.Nodes[i].Type)
		}
	}

	table := out.Nodes[4]
	if len(table.Header) != 2 || len(table.Rows) != 1 || table.Align[1] != "right" {
		t.Fatalf("unexpected table %+v", table)
	}
	if p := table.Rows[0][1].Paragraphs[1]; p.List == nil || p.List.Level != 1 {
		t.Fatalf("expected cell list style, got %+v", p)
	}
	if out.Nodes[6].Language != "go" || len(out.Nodes[6].Lines) != 2 {
		t.Fatalf("unexpected code node %+v", out.Nodes[6])
	}
	if out.Text == "" {
		t.Fatalf("expected plain text")
	}
}

func TestStructure(t *testing.T) {
	s := Structure(sampleNodes())
	if len(s.Headings) != 1 || s.Headings[0].Text != "Title & more" {
		t.Fatalf("unexpected headings %+v", s.Headings)
	}
	if s.Paragraphs != 1 || s.Lists != 2 || s.ListEntries != 3 || s.Tables != 1 ||
		s.Blockquotes != 1 || s.CodeBlocks != 1 || s.Rules != 1 {
		t.Fatalf("unexpected counts %+v", s)
	}
}

func TestJSONRenderEmpty(t *testing.T) {
	data, err := NewJSONRenderer().Render(nil, core.DocumentMetadata{})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["nodes"]) != "[]" {
		t.Fatalf("expected empty node array, got %s", raw["nodes"])
	}
}
