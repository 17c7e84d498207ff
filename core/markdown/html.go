package markdown

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// BreakMarker is the line-break marker kept by cell-mode normalization.
const BreakMarker = "<br>"

var (
	brTagRe      = regexp.MustCompile(`(?i)<br\s*/?>`)
	listTagRe    = regexp.MustCompile(`(?i)</?(?:ul|ol|li)(?:\s[^>]*)?>`)
	wrapperTagRe = regexp.MustCompile(`(?i)</?(?:div|span|p)(?:\s[^>]*)?>`)
	strongTagRe  = regexp.MustCompile(`(?i)</?(?:strong|b)(?:\s[^>]*)?>`)
	emTagRe      = regexp.MustCompile(`(?i)</?(?:em|i)(?:\s[^>]*)?>`)
	codeTagRe    = regexp.MustCompile(`(?i)</?code(?:\s[^>]*)?>`)
	strikeTagRe  = regexp.MustCompile(`(?i)</?(?:s|del|strike)(?:\s[^>]*)?>`)
	listEdgeRe   = regexp.MustCompile(`(?i)<(/?)(ul|ol)(?:\s[^>]*)?>`)
	brSuffixRe   = regexp.MustCompile(`(?i)<br\s*/?>\s*$`)
	brPrefixRe   = regexp.MustCompile(`(?i)^\s*<br\s*/?>`)
)

// NormalizeHTML rewrites the supported HTML subset.
//
// With preserveBreak false (block context) <br> becomes "\n" and list tags
// are dropped, since lists were already lifted into list entries. With
// preserveBreak true (cell context) <br> is kept as BreakMarker and HTML
// lists are rewritten into marker lines ("- a", "1. b") joined by
// BreakMarker so the cell splitter can pick them up. Entities are left
// encoded in cell context; the cell splitter decodes each piece, so an
// escaped &lt;br&gt; never splits a cell.
func NormalizeHTML(text string, preserveBreak bool) string {
	if !strings.Contains(text, "<") && !strings.Contains(text, "&") {
		return text
	}
	if preserveBreak {
		text = rewriteCellLists(text)
		text = brTagRe.ReplaceAllString(text, BreakMarker)
	} else {
		text = brTagRe.ReplaceAllString(text, "\n")
		text = listTagRe.ReplaceAllString(text, "")
	}
	text = wrapperTagRe.ReplaceAllString(text, "")
	text = strongTagRe.ReplaceAllString(text, "**")
	text = emTagRe.ReplaceAllString(text, "*")
	text = codeTagRe.ReplaceAllString(text, "`")
	text = strikeTagRe.ReplaceAllString(text, "~~")
	if preserveBreak {
		return text
	}
	return html.UnescapeString(text)
}

// rewriteCellLists replaces every outermost <ul>/<ol> block in text with
// marker lines joined by BreakMarker. An unclosed block runs to the end.
func rewriteCellLists(text string) string {
	if !listEdgeRe.MatchString(text) {
		return text
	}

	var b strings.Builder
	pos := 0
	for pos < len(text) {
		start, end, ok := nextListBlock(text, pos)
		if !ok {
			break
		}
		before := strings.TrimSpace(text[pos:start])
		b.WriteString(text[pos:start])
		if before != "" && !brSuffixRe.MatchString(before) {
			b.WriteString(BreakMarker)
		}

		items := collectHTMLItems(text[start:end])
		lines := make([]string, 0, len(items))
		for _, item := range items {
			marker := "-"
			if item.ordered {
				marker = strconv.Itoa(item.index+1) + "."
			}
			indent := strings.Repeat(" ", item.depth*DefaultIndentUnit)
			lines = append(lines, indent+marker+" "+strings.TrimSpace(item.inner))
		}
		b.WriteString(strings.Join(lines, BreakMarker))

		pos = end
		if rest := strings.TrimSpace(text[pos:]); rest != "" && !brPrefixRe.MatchString(rest) {
			b.WriteString(BreakMarker)
		}
	}
	b.WriteString(text[pos:])
	return b.String()
}

// nextListBlock finds the next outermost list block at or after pos,
// matching nested <ul>/<ol> pairs by depth.
func nextListBlock(text string, pos int) (start, end int, ok bool) {
	depth := 0
	start = -1
	for _, m := range listEdgeRe.FindAllStringSubmatchIndex(text[pos:], -1) {
		closing := m[3] > m[2]
		if !closing {
			if depth == 0 {
				start = pos + m[0]
			}
			depth++
			continue
		}
		if depth == 0 {
			continue
		}
		depth--
		if depth == 0 {
			return start, pos + m[1], true
		}
	}
	if start >= 0 {
		return start, len(text), true
	}
	return 0, 0, false
}
