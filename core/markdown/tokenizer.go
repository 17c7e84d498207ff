package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

var (
	headingRe         = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	closingHashesRe   = regexp.MustCompile(`\s+#+\s*$`)
	listItemRe        = regexp.MustCompile(`^([\s\p{Zs}]*)(\d+\.|-|\+|\*)\s+(.*)$`)
	ruleRe            = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
	htmlListStartRe   = regexp.MustCompile(`(?i)^\s*<(ul|ol)(?:\s[^>]*)?>`)
	htmlListOpenRe    = regexp.MustCompile(`(?i)<(?:ul|ol)(?:\s[^>]*)?>`)
	lineEndingsRe     = regexp.MustCompile(`\r\n?`)
	fenceDelimiters   = []string{"```", "~~~"}
	blockquoteLeading = " \t"
)

// tokenizer holds the scan state of one Tokenize call.
type tokenizer struct {
	lines  []string
	opts   Options
	tokens []Token
	diags  []Diagnostic
}

// Tokenize splits text into block tokens in source order. Blank lines
// separate blocks and produce no token. Malformed fragments degrade to
// paragraphs or dropped rows and are reported as diagnostics.
func Tokenize(text string, opts Options) ([]Token, []Diagnostic) {
	text = lineEndingsRe.ReplaceAllString(text, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	t := &tokenizer{
		lines: strings.Split(text, "\n"),
		opts:  opts.withDefaults(),
	}
	t.run()
	return t.tokens, t.diags
}

func (t *tokenizer) emit(tok Token) {
	t.tokens = append(t.tokens, tok)
}

func (t *tokenizer) report(kind DiagnosticKind, line int, format string, args ...any) {
	t.diags = append(t.diags, Diagnostic{Kind: kind, Line: line, Detail: fmt.Sprintf(format, args...)})
}

func (t *tokenizer) run() {
	i := 0
	for i < len(t.lines) {
		line := t.lines[i]
		if isBlankLine(line) {
			i++
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")

		if level, text, ok := parseHeading(trimmed); ok {
			t.emit(Token{Kind: headingKind(level), Content: text, Line: i})
			i++
			continue
		}

		if delim, lang, ok := detectFence(trimmed); ok {
			i = t.scanFence(i, delim, lang)
			continue
		}

		if strings.Contains(line, "|") {
			res := ParseTable(t.lines, i)
			if res.Status == TableParsed {
				data := res.Data
				t.emit(Token{Kind: KindTable, Table: &data, Line: i})
				for _, d := range res.Dropped {
					t.report(DiagDroppedTableRow, d, "row has %d cells, header has %d",
						len(splitTableRow(t.lines[d])), len(data.Headers))
				}
				i = res.Next
				continue
			}
			if res.Status == TableMissingSeparator && looksLikeTableRow(line) {
				t.report(DiagMalformedTable, i, "table header without separator row")
			}
		}

		if strings.HasPrefix(trimmed, ">") {
			i = t.scanBlockquote(i)
			continue
		}

		if htmlListStartRe.MatchString(line) {
			i = t.scanHTMLList(i)
			continue
		}

		if listItemRe.MatchString(line) {
			i = t.scanListItems(i)
			continue
		}

		if ruleRe.MatchString(strings.TrimSpace(line)) {
			t.emit(Token{Kind: KindHorizontalRule, Line: i})
			i++
			continue
		}

		i = t.scanParagraph(i)
	}
}

func parseHeading(trimmed string) (int, string, bool) {
	m := headingRe.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, "", false
	}
	text := strings.TrimSpace(closingHashesRe.ReplaceAllString(m[2], ""))
	return len(m[1]), text, true
}

func detectFence(trimmed string) (string, string, bool) {
	for _, delim := range fenceDelimiters {
		if strings.HasPrefix(trimmed, delim) {
			info := strings.TrimSpace(strings.TrimLeft(trimmed, delim[:1]))
			lang := ""
			if fields := strings.Fields(info); len(fields) > 0 {
				lang = fields[0]
			}
			return delim, lang, true
		}
	}
	return "", "", false
}

func (t *tokenizer) scanFence(start int, delim, lang string) int {
	opening := countLeading(strings.TrimLeft(t.lines[start], " \t"), delim[0])
	var content []string
	for i := start + 1; i < len(t.lines); i++ {
		trimmed := strings.TrimSpace(t.lines[i])
		if strings.HasPrefix(trimmed, delim) && countLeading(trimmed, delim[0]) >= opening &&
			strings.TrimLeft(trimmed, delim[:1]) == "" {
			t.emit(Token{Kind: KindCodeBlock, Content: strings.Join(content, "\n"), Language: lang, Line: start})
			return i + 1
		}
		content = append(content, t.lines[i])
	}
	t.report(DiagUnclosedFence, start, "code fence %s never closed", delim)
	t.emit(Token{Kind: KindCodeBlock, Content: strings.Join(content, "\n"), Language: lang, Line: start})
	return len(t.lines)
}

func (t *tokenizer) scanBlockquote(start int) int {
	var quoted []string
	i := start
	for i < len(t.lines) {
		trimmed := strings.TrimLeft(t.lines[i], blockquoteLeading)
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		stripped := strings.TrimPrefix(trimmed, ">")
		stripped = strings.TrimPrefix(stripped, " ")
		quoted = append(quoted, stripped)
		i++
	}
	t.emit(Token{Kind: KindBlockquote, Content: strings.Join(quoted, "\n"), Line: start})
	return i
}

// scanHTMLList consumes lines from an opening <ul>/<ol> to its matching
// close tag. Text after the close tag on the same line is left in place
// for the next block. An unmatched block runs to the end of input.
func (t *tokenizer) scanHTMLList(start int) int {
	kind := KindHTMLUnorderedList
	if m := htmlListStartRe.FindStringSubmatch(t.lines[start]); m != nil && strings.EqualFold(m[1], "ol") {
		kind = KindHTMLOrderedList
	}

	depth := 0
	var block []string
	for i := start; i < len(t.lines); i++ {
		line := t.lines[i]
		for _, m := range listEdgeRe.FindAllStringSubmatchIndex(line, -1) {
			if m[3] == m[2] {
				depth++
				continue
			}
			if depth == 0 {
				continue
			}
			depth--
			if depth > 0 {
				continue
			}
			block = append(block, line[:m[1]])
			t.emit(Token{Kind: kind, Content: strings.Join(block, "\n"), Line: start})
			if rest := line[m[1]:]; !isBlankLine(rest) {
				t.lines[i] = rest
				return i
			}
			return i + 1
		}
		block = append(block, line)
	}
	t.report(DiagUnclosedHTMLList, start, "no closing tag for %s", kind)
	t.emit(Token{Kind: kind, Content: strings.Join(block, "\n"), Line: start})
	return len(t.lines)
}

// scanListItems emits one token per contiguous list-item line. Indented
// lines that are not markers continue the previous item. A blank line or
// any other block start ends the run.
func (t *tokenizer) scanListItems(start int) int {
	i := start
	for i < len(t.lines) {
		line := t.lines[i]
		if isBlankLine(line) {
			break
		}
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			kind := KindUnorderedListItem
			if m[2][0] >= '0' && m[2][0] <= '9' {
				kind = KindOrderedListItem
			}
			t.emit(Token{
				Kind:    kind,
				Content: strings.TrimSpace(m[3]),
				Level:   indentWidth(m[1], t.opts) / t.opts.IndentUnit,
				Line:    i,
			})
			i++
			continue
		}
		leading := len(line) - len(strings.TrimLeft(line, " \t"))
		if leading == 0 || t.startsBlock(i) {
			break
		}
		last := &t.tokens[len(t.tokens)-1]
		last.Content += " " + strings.TrimSpace(line)
		i++
	}
	return i
}

func (t *tokenizer) scanParagraph(start int) int {
	var parts []string
	i := start
	for i < len(t.lines) {
		line := t.lines[i]
		if isBlankLine(line) {
			break
		}
		if i > start && t.startsBlock(i) {
			break
		}
		if cut := inlineListStart(line); cut > 0 {
			parts = append(parts, line[:cut])
			t.lines[i] = line[cut:]
			break
		}
		parts = append(parts, line)
		i++
	}
	t.emit(Token{Kind: KindParagraph, Content: joinParagraphLines(parts), Line: start})
	return i
}

// startsBlock reports whether lines[i] opens any non-paragraph block.
func (t *tokenizer) startsBlock(i int) bool {
	line := t.lines[i]
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case trimmed == "":
		return false
	case headingRe.MatchString(trimmed):
		return true
	case strings.HasPrefix(trimmed, ">"):
		return true
	case htmlListStartRe.MatchString(line):
		return true
	case listItemRe.MatchString(line):
		return true
	case ruleRe.MatchString(strings.TrimSpace(line)):
		return true
	}
	if _, _, ok := detectFence(trimmed); ok {
		return true
	}
	if strings.Contains(line, "|") && i+1 < len(t.lines) && isTableSeparator(t.lines[i+1]) {
		return true
	}
	return false
}

// inlineListStart returns the byte offset of the first HTML list opening
// tag that appears after other text on line, or -1. Tags inside code spans
// are ignored. The list need not be closed; an unclosed list runs to the
// end of input.
func inlineListStart(line string) int {
	for _, loc := range htmlListOpenRe.FindAllStringIndex(line, -1) {
		before := line[:loc[0]]
		if strings.TrimSpace(before) == "" {
			return -1
		}
		if strings.Count(before, "`")%2 == 1 {
			continue
		}
		return loc[0]
	}
	return -1
}

// joinParagraphLines joins soft-wrapped lines with a space. A line ending in
// two spaces or a backslash ends with a "\n" hard break instead.
func joinParagraphLines(lines []string) string {
	var b strings.Builder
	hardPrev := false
	for idx, line := range lines {
		content, hard := normalizeParagraphLine(line)
		if idx > 0 {
			if hardPrev {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(content)
		hardPrev = hard
	}
	return b.String()
}

func normalizeParagraphLine(line string) (string, bool) {
	raw := strings.TrimLeft(strings.TrimRight(line, "\t"), " \t")
	content := strings.TrimRight(raw, " ")
	hard := len(raw)-len(content) >= 2
	if strings.HasSuffix(content, `\`) && !strings.HasSuffix(content, `\\`) {
		hard = true
		content = strings.TrimRight(content[:len(content)-1], " ")
	}
	return content, hard
}

// indentWidth measures leading whitespace in columns. A tab is TabWidth
// columns; other spaces use their display width.
func indentWidth(leading string, opts Options) int {
	width := 0
	for _, r := range leading {
		switch {
		case r == '\t':
			width += opts.TabWidth
		case unicode.IsSpace(r):
			w := runewidth.RuneWidth(r)
			if w < 1 {
				w = 1
			}
			width += w
		}
	}
	return width
}

func looksLikeTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1
}

func countLeading(s string, ch byte) int {
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
