// Package render — PDF renderer.
// Lays document nodes out with gofpdf core fonts: headings at variable
// sizes, styled runs, indented lists, bordered tables and shaded code.
// Images are not rendered.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/mdconvert/core"
	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

const (
	pdfBodyFont  = "Helvetica"
	pdfCodeFont  = "Courier"
	pdfBodySize  = 10.0
	pdfLineH     = 5.0
	pdfListStep  = 6.0
	pdfCellPad   = 1.5
	pdfMarginMM  = 15.0
	pdfQuoteStep = 6.0
)

var pdfHeadingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFOptions configures page geometry.
type PDFOptions struct {
	PageSize    string // "A4", "Letter", ...
	Orientation string // "P" or "L"
}

// PDFRenderer renders document nodes as a PDF document.
type PDFRenderer struct {
	opts PDFOptions
}

// NewPDFRenderer creates a PDFRenderer, defaulting to A4 portrait.
func NewPDFRenderer(opts PDFOptions) *PDFRenderer {
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}
	opts.Orientation = strings.ToUpper(opts.Orientation)
	if opts.Orientation != "L" {
		opts.Orientation = "P"
	}
	return &PDFRenderer{opts: opts}
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// Render lays out nodes into PDF bytes.
func (r *PDFRenderer) Render(nodes []doc.Node, meta core.DocumentMetadata) ([]byte, error) {
	pdf := gofpdf.New(r.opts.Orientation, "mm", r.opts.PageSize, "")
	pdf.SetMargins(pdfMarginMM, pdfMarginMM, pdfMarginMM)
	pdf.SetAutoPageBreak(true, pdfMarginMM)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator("mdconvert", false)
	if len(meta.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	}
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, n := range nodes {
		w.node(n)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("laying out PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) node(n doc.Node) {
	switch n := n.(type) {
	case doc.Heading:
		size, ok := pdfHeadingSizes[n.Level]
		if !ok {
			size = pdfBodySize
		}
		w.pdf.Ln(4)
		w.runs(n.Runs, size, size*0.6, "B")
		w.pdf.Ln(size*0.6 + 2)
	case doc.Paragraph:
		w.runs(n.Runs, pdfBodySize, pdfLineH, "")
		w.pdf.Ln(pdfLineH + 2)
	case doc.List:
		w.list(n.Entries)
		w.pdf.Ln(2)
	case doc.Table:
		w.table(n)
		w.pdf.Ln(3)
	case doc.Blockquote:
		w.blockquote(n)
	case doc.CodeBlock:
		w.code(n)
	case doc.Rule:
		w.pdf.Ln(2)
		left, _, right, _ := w.pdf.GetMargins()
		pageW, _ := w.pdf.GetPageSize()
		y := w.pdf.GetY()
		w.pdf.SetDrawColor(160, 160, 160)
		w.pdf.Line(left, y, pageW-right, y)
		w.pdf.SetDrawColor(0, 0, 0)
		w.pdf.Ln(4)
	default:
		panic(fmt.Sprintf("render: unhandled node %T", n))
	}
}

// runs writes styled runs as flowing text from the current position.
func (w *pdfWriter) runs(runs []doc.Run, size, lineH float64, baseStyle string) {
	for _, r := range runs {
		if r.Break {
			w.pdf.Ln(lineH)
			continue
		}
		if r.Text == "" {
			continue
		}
		family := pdfBodyFont
		if r.Monospace {
			family = pdfCodeFont
		}
		w.pdf.SetFont(family, runStyle(r, baseStyle), size)
		x, y := w.pdf.GetXY()
		w.pdf.Write(lineH, w.tr(r.Text))
		if r.Strike {
			w.strike(x, y, lineH)
		}
	}
}

// strike draws a line through text written from (x, y). Only the part on
// the starting line is struck when the run wrapped.
func (w *pdfWriter) strike(x, y, lineH float64) {
	endX, endY := w.pdf.GetXY()
	if endY != y {
		_, _, right, _ := w.pdf.GetMargins()
		pageW, _ := w.pdf.GetPageSize()
		endX = pageW - right
	}
	mid := y + lineH/2
	w.pdf.Line(x, mid, endX, mid)
}

func runStyle(r doc.Run, base string) string {
	style := base
	if r.Bold && !strings.Contains(style, "B") {
		style += "B"
	}
	if r.Italic && !strings.Contains(style, "I") {
		style += "I"
	}
	return style
}

// withIndent runs fn with the left margin moved right by dx.
func (w *pdfWriter) withIndent(dx float64, fn func()) {
	left, top, right, _ := w.pdf.GetMargins()
	w.pdf.SetLeftMargin(left + dx)
	w.pdf.SetX(left + dx)
	fn()
	w.pdf.SetMargins(left, top, right)
	w.pdf.SetX(left)
}

func (w *pdfWriter) list(entries []doc.ListEntry) {
	counters := make(map[int]int)
	prev := -1
	for _, e := range entries {
		if e.Level <= prev {
			for lvl := range counters {
				if lvl > e.Level {
					delete(counters, lvl)
				}
			}
		}
		prev = e.Level

		marker := "•"
		if e.Ordered {
			counters[e.Level]++
			marker = strconv.Itoa(counters[e.Level]) + "."
		}
		indent := float64(e.Level) * pdfListStep
		w.withIndent(indent, func() {
			w.pdf.SetFont(pdfBodyFont, "", pdfBodySize)
			w.pdf.CellFormat(pdfListStep, pdfLineH, w.tr(marker), "", 0, "L", false, 0, "")
			w.withIndent(pdfListStep, func() {
				w.runs(e.Runs, pdfBodySize, pdfLineH, "")
			})
		})
		w.pdf.Ln(pdfLineH)
	}
}

func (w *pdfWriter) blockquote(q doc.Blockquote) {
	w.pdf.SetTextColor(90, 90, 90)
	w.withIndent(pdfQuoteStep, func() {
		for _, p := range q.Paragraphs {
			w.runs(p.Runs, pdfBodySize, pdfLineH, "I")
			w.pdf.Ln(pdfLineH + 1)
		}
	})
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(1)
}

func (w *pdfWriter) code(c doc.CodeBlock) {
	w.pdf.Ln(1)
	w.pdf.SetFont(pdfCodeFont, "", 9)
	w.pdf.SetFillColor(245, 245, 245)
	for _, line := range c.Lines {
		w.pdf.MultiCell(0, 4.5, w.tr(expandTabs(line, 4)), "", "L", true)
	}
	w.pdf.Ln(3)
}

// cellText flattens a cell for MultiCell; list paragraphs get a marker.
func cellText(c doc.Cell) string {
	lines := make([]string, 0, len(c.Paragraphs))
	counters := make(map[int]int)
	for _, p := range c.Paragraphs {
		text := p.Text()
		if p.List != nil {
			marker := "• "
			if p.List.Ordered {
				counters[p.List.Level]++
				marker = strconv.Itoa(counters[p.List.Level]) + ". "
			}
			text = strings.Repeat("  ", p.List.Level) + marker + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func pdfAlign(a doc.Alignment) string {
	switch a {
	case doc.AlignCenter:
		return "C"
	case doc.AlignRight:
		return "R"
	default:
		return "L"
	}
}

func (w *pdfWriter) table(t doc.Table) {
	cols := t.Columns()
	if cols == 0 {
		return
	}
	left, _, right, _ := w.pdf.GetMargins()
	pageW, pageH := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()
	colW := (pageW - left - right) / float64(cols)

	drawRow := func(cells []doc.Cell, style string) {
		w.pdf.SetFont(pdfBodyFont, style, pdfBodySize)
		texts := make([]string, cols)
		maxLines := 1
		for i := 0; i < cols && i < len(cells); i++ {
			texts[i] = w.tr(cellText(cells[i]))
			n := len(w.pdf.SplitLines([]byte(texts[i]), colW-2*pdfCellPad))
			maxLines = max(maxLines, n)
		}
		h := float64(maxLines)*pdfLineH + 2*pdfCellPad
		if w.pdf.GetY()+h > pageH-bottom {
			w.pdf.AddPage()
		}
		y := w.pdf.GetY()
		for i := 0; i < cols; i++ {
			x := left + float64(i)*colW
			w.pdf.Rect(x, y, colW, h, "D")
			w.pdf.SetXY(x+pdfCellPad, y+pdfCellPad)
			align := "L"
			if i < len(t.Align) {
				align = pdfAlign(t.Align[i])
			}
			w.pdf.MultiCell(colW-2*pdfCellPad, pdfLineH, texts[i], "", align, false)
		}
		w.pdf.SetXY(left, y+h)
	}

	drawRow(t.Header, "B")
	for _, row := range t.Rows {
		drawRow(row, "")
	}
}
