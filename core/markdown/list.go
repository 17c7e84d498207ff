package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// htmlItem is one <li> lifted out of an HTML list block.
type htmlItem struct {
	inner   string // inner HTML with nested lists removed
	depth   int    // 0 for items of an outermost list
	ordered bool
	index   int // position within its own list
}

// MaterializeItems converts a run of markdown list-item tokens into entries,
// one entry per token. Levels are clamped so an entry is at most one level
// deeper than the entry before it, and the first entry is at level 0.
func MaterializeItems(tokens []Token) []doc.ListEntry {
	entries := make([]doc.ListEntry, 0, len(tokens))
	prev := -1
	for _, t := range tokens {
		if !t.Kind.IsListItem() {
			continue
		}
		level := clampLevel(t.Level, prev)
		entries = append(entries, doc.ListEntry{
			Runs:    FormatText(strings.TrimSpace(NormalizeHTML(t.Content, false))),
			Level:   level,
			Ordered: t.Kind == KindOrderedListItem,
		})
		prev = level
	}
	return entries
}

func clampLevel(level, prev int) int {
	if level < 0 {
		return 0
	}
	if level > prev+1 {
		return prev + 1
	}
	return level
}

// MaterializeHTML converts an HTML list block into entries. Every <li> of
// every <ul>/<ol> in block yields exactly one entry, in document order.
// Items of outermost lists sit at baseLevel; each enclosing list adds one
// level.
func MaterializeHTML(block string, baseLevel int) []doc.ListEntry {
	items := collectHTMLItems(block)
	entries := make([]doc.ListEntry, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(NormalizeHTML(item.inner, false))
		entries = append(entries, doc.ListEntry{
			Runs:    FormatText(text),
			Level:   baseLevel + item.depth,
			Ordered: item.ordered,
		})
	}
	return entries
}

// collectHTMLItems visits every <li> in block in document order. An
// item's list is its nearest <ul>/<ol> ancestor, and its depth is the
// number of enclosing lists minus one, so lists nested directly inside a
// list are reached as well as lists nested inside an <li>. Depths are
// clamped to one more than the previous item's.
func collectHTMLItems(block string) []htmlItem {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(block))
	if err != nil {
		return nil
	}

	var items []htmlItem
	counts := make(map[*html.Node]int)
	prev := -1
	d.Find("li").Each(func(_ int, li *goquery.Selection) {
		lists := li.ParentsFiltered("ul, ol")
		item := htmlItem{depth: clampLevel(lists.Length()-1, prev)}
		if lists.Length() > 0 {
			list := lists.Nodes[0]
			item.ordered = list.DataAtom == atom.Ol
			item.index = counts[list]
			counts[list]++
		}

		own := li.Clone()
		own.Find("ul, ol").Remove()
		inner, _ := own.Html()
		item.inner = collapseSpace(inner)

		items = append(items, item)
		prev = item.depth
	})
	return items
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
