package markdown

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

// spanPattern is one inline delimiter family. Group 1 is the styled content.
type spanPattern struct {
	re    *regexp.Regexp
	style doc.Run
}

// spanPatterns are listed in tie-break order: when two candidates start at
// the same offset the earlier pattern wins, so ***x*** beats its ** sub-match.
var spanPatterns = []spanPattern{
	{re: regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), style: doc.Run{Bold: true, Italic: true}},
	{re: regexp.MustCompile(`\*\*(.+?)\*\*`), style: doc.Run{Bold: true}},
	{re: regexp.MustCompile(`\b__(.+?)__\b`), style: doc.Run{Bold: true}},
	{re: regexp.MustCompile(`\*([^*]+)\*`), style: doc.Run{Italic: true}},
	{re: regexp.MustCompile(`\b_([^_]+)_\b`), style: doc.Run{Italic: true}},
	{re: regexp.MustCompile(`~~(.+?)~~`), style: doc.Run{Strike: true}},
	{re: regexp.MustCompile("`([^`]+)`"), style: doc.Run{Monospace: true}},
}

type spanCandidate struct {
	start, end               int
	contentStart, contentEnd int
	order                    int
	style                    doc.Run
}

// FormatInline resolves inline spans in a single line into runs.
//
// Every pattern is scanned over the whole line before any selection happens.
// Candidates are then taken left to right, first wins: a candidate starting
// inside an accepted span is discarded, never split. The concatenated run
// text equals the line minus the delimiters of accepted spans.
func FormatInline(line string) []doc.Run {
	if line == "" {
		return nil
	}

	var candidates []spanCandidate
	for order, p := range spanPatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(line, -1) {
			candidates = append(candidates, spanCandidate{
				start:        m[0],
				end:          m[1],
				contentStart: m[2],
				contentEnd:   m[3],
				order:        order,
				style:        p.style,
			})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].order < candidates[j].order
	})

	var runs []doc.Run
	pos := 0
	for _, c := range candidates {
		if c.start < pos {
			continue
		}
		if c.start > pos {
			runs = append(runs, doc.Plain(line[pos:c.start]))
		}
		styled := c.style
		styled.Text = line[c.contentStart:c.contentEnd]
		runs = append(runs, styled)
		pos = c.end
	}
	if pos < len(line) {
		runs = append(runs, doc.Plain(line[pos:]))
	}
	return runs
}

// FormatText formats text that may carry "\n" hard-break markers. Each line
// is formatted independently and lines are joined with break runs.
func FormatText(text string) []doc.Run {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	var runs []doc.Run
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, doc.LineBreak())
		}
		runs = append(runs, FormatInline(line)...)
	}
	return runs
}
