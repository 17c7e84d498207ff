// Package render — DOCX renderer.
// Writes an Office Open XML word-processing package (a zip of XML parts).
// Lists get real numbering definitions, restarted for every list node.
package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gaurav-prasanna/mdconvert/core"
	"github.com/gaurav-prasanna/mdconvert/core/doc"
)

const (
	bulletAbstractID  = 0
	decimalAbstractID = 1
	listLevels        = 9
)

// DOCXOptions configures fonts for the DOCX renderer.
type DOCXOptions struct {
	Font     string
	CodeFont string
	FontSize float64 // points
}

// DOCXRenderer renders document nodes as a .docx package.
type DOCXRenderer struct {
	opts DOCXOptions
}

// NewDOCXRenderer creates a DOCXRenderer. Zero options fall back to
// Calibri/Consolas at 11pt.
func NewDOCXRenderer(opts DOCXOptions) *DOCXRenderer {
	if opts.Font == "" {
		opts.Font = "Calibri"
	}
	if opts.CodeFont == "" {
		opts.CodeFont = "Consolas"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 11
	}
	return &DOCXRenderer{opts: opts}
}

// Extension returns the file extension for DOCX output.
func (r *DOCXRenderer) Extension() string {
	return ".docx"
}

// Render packs nodes into DOCX bytes.
func (r *DOCXRenderer) Render(nodes []doc.Node, meta core.DocumentMetadata) ([]byte, error) {
	w := &docxWriter{opts: r.opts, nextNumID: 1}
	w.body.WriteString(`<w:body>`)
	for _, n := range nodes {
		w.node(n)
	}
	w.body.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>`)
	w.body.WriteString(`</w:body>`)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"docProps/core.xml", corePropsXML(meta)},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", xml.Header + `<w:document xmlns:w="` + wordNS + `">` + w.body.String() + `</w:document>`},
		{"word/styles.xml", stylesXML(r.opts)},
		{"word/numbering.xml", w.numberingXML()},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.data)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

// numInstance is one w:num; each list node allocates its own so numbering
// restarts at 1.
type numInstance struct {
	id       int
	abstract int
}

type docxWriter struct {
	opts      DOCXOptions
	body      strings.Builder
	nums      []numInstance
	nextNumID int
}

func (w *docxWriter) allocNum(abstract int) int {
	id := w.nextNumID
	w.nextNumID++
	w.nums = append(w.nums, numInstance{id: id, abstract: abstract})
	return id
}

// listNums lazily allocates one bullet and one decimal instance per list.
type listNums struct {
	w       *docxWriter
	bullet  int
	decimal int
}

func (l *listNums) id(ordered bool) int {
	if ordered {
		if l.decimal == 0 {
			l.decimal = l.w.allocNum(decimalAbstractID)
		}
		return l.decimal
	}
	if l.bullet == 0 {
		l.bullet = l.w.allocNum(bulletAbstractID)
	}
	return l.bullet
}

func (w *docxWriter) node(n doc.Node) {
	switch n := n.(type) {
	case doc.Heading:
		level := min(max(n.Level, 1), 6)
		w.paragraph(`<w:pStyle w:val="Heading`+strconv.Itoa(level)+`"/>`, n.Runs)
	case doc.Paragraph:
		w.paragraph("", n.Runs)
	case doc.List:
		nums := &listNums{w: w}
		for _, e := range n.Entries {
			w.paragraph(numPr(nums.id(e.Ordered), e.Level), e.Runs)
		}
	case doc.Table:
		w.table(n)
	case doc.Blockquote:
		for _, p := range n.Paragraphs {
			w.paragraph(`<w:pStyle w:val="Quote"/>`, p.Runs)
		}
	case doc.CodeBlock:
		runs := make([]doc.Run, 0, len(n.Lines)*2)
		for i, line := range n.Lines {
			if i > 0 {
				runs = append(runs, doc.LineBreak())
			}
			runs = append(runs, doc.Run{Text: line, Monospace: true})
		}
		w.paragraph(`<w:pStyle w:val="Code"/>`, runs)
	case doc.Rule:
		w.body.WriteString(`<w:p><w:pPr><w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="auto"/></w:pBdr></w:pPr></w:p>`)
	default:
		panic(fmt.Sprintf("render: unhandled node %T", n))
	}
}

func numPr(numID, level int) string {
	level = min(max(level, 0), listLevels-1)
	return `<w:pStyle w:val="ListParagraph"/><w:numPr><w:ilvl w:val="` + strconv.Itoa(level) +
		`"/><w:numId w:val="` + strconv.Itoa(numID) + `"/></w:numPr>`
}

func (w *docxWriter) paragraph(pPr string, runs []doc.Run) {
	w.body.WriteString(`<w:p>`)
	if pPr != "" {
		w.body.WriteString(`<w:pPr>` + pPr + `</w:pPr>`)
	}
	w.runs(runs, false)
	w.body.WriteString(`</w:p>`)
}

func (w *docxWriter) runs(runs []doc.Run, forceBold bool) {
	for _, r := range runs {
		if r.Break {
			w.body.WriteString(`<w:r><w:br/></w:r>`)
			continue
		}
		if r.Text == "" {
			continue
		}
		w.body.WriteString(`<w:r>`)
		if props := w.runProps(r, forceBold); props != "" {
			w.body.WriteString(`<w:rPr>` + props + `</w:rPr>`)
		}
		w.body.WriteString(`<w:t xml:space="preserve">`)
		w.body.WriteString(escape(r.Text))
		w.body.WriteString(`</w:t></w:r>`)
	}
}

func (w *docxWriter) runProps(r doc.Run, forceBold bool) string {
	var b strings.Builder
	if r.Monospace {
		font := escape(w.opts.CodeFont)
		b.WriteString(`<w:rFonts w:ascii="` + font + `" w:hAnsi="` + font + `" w:cs="` + font + `"/>`)
	}
	if r.Bold || forceBold {
		b.WriteString(`<w:b/>`)
	}
	if r.Italic {
		b.WriteString(`<w:i/>`)
	}
	if r.Strike {
		b.WriteString(`<w:strike/>`)
	}
	return b.String()
}

func (w *docxWriter) table(t doc.Table) {
	cols := t.Columns()
	if cols == 0 {
		return
	}
	w.body.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="5000" w:type="pct"/></w:tblPr><w:tblGrid>`)
	width := strconv.Itoa(9026 / cols)
	for i := 0; i < cols; i++ {
		w.body.WriteString(`<w:gridCol w:w="` + width + `"/>`)
	}
	w.body.WriteString(`</w:tblGrid>`)

	w.row(t.Header, t.Align, true)
	for _, row := range t.Rows {
		w.row(row, t.Align, false)
	}
	w.body.WriteString(`</w:tbl>`)
	// Word merges adjacent tables without a paragraph between them.
	w.body.WriteString(`<w:p/>`)
}

func (w *docxWriter) row(cells []doc.Cell, align []doc.Alignment, header bool) {
	w.body.WriteString(`<w:tr>`)
	if header {
		w.body.WriteString(`<w:trPr><w:tblHeader/></w:trPr>`)
	}
	for i, c := range cells {
		jc := ""
		if i < len(align) {
			jc = justification(align[i])
		}
		w.body.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr>`)
		nums := &listNums{w: w}
		paragraphs := c.Paragraphs
		if len(paragraphs) == 0 {
			paragraphs = []doc.Paragraph{{}}
		}
		for _, p := range paragraphs {
			pPr := ""
			if p.List != nil {
				pPr = numPr(nums.id(p.List.Ordered), p.List.Level)
			}
			if jc != "" {
				pPr += `<w:jc w:val="` + jc + `"/>`
			}
			w.body.WriteString(`<w:p>`)
			if pPr != "" {
				w.body.WriteString(`<w:pPr>` + pPr + `</w:pPr>`)
			}
			w.runs(p.Runs, header)
			w.body.WriteString(`</w:p>`)
		}
		w.body.WriteString(`</w:tc>`)
	}
	w.body.WriteString(`</w:tr>`)
}

func justification(a doc.Alignment) string {
	switch a {
	case doc.AlignCenter:
		return "center"
	case doc.AlignRight:
		return "right"
	case doc.AlignLeft:
		return "left"
	default:
		return ""
	}
}

func (w *docxWriter) numberingXML() string {
	var b strings.Builder
	b.WriteString(xml.Header + `<w:numbering xmlns:w="` + wordNS + `">`)
	b.WriteString(abstractNumXML(bulletAbstractID, false))
	b.WriteString(abstractNumXML(decimalAbstractID, true))
	for _, n := range w.nums {
		b.WriteString(`<w:num w:numId="` + strconv.Itoa(n.id) + `"><w:abstractNumId w:val="` + strconv.Itoa(n.abstract) + `"/>`)
		for lvl := 0; lvl < listLevels; lvl++ {
			b.WriteString(`<w:lvlOverride w:ilvl="` + strconv.Itoa(lvl) + `"><w:startOverride w:val="1"/></w:lvlOverride>`)
		}
		b.WriteString(`</w:num>`)
	}
	b.WriteString(`</w:numbering>`)
	return b.String()
}

var (
	bulletGlyphs   = []string{"•", "◦", "▪"}
	decimalFormats = []string{"decimal", "lowerLetter", "lowerRoman"}
)

func abstractNumXML(id int, ordered bool) string {
	var b strings.Builder
	b.WriteString(`<w:abstractNum w:abstractNumId="` + strconv.Itoa(id) + `"><w:multiLevelType w:val="hybridMultilevel"/>`)
	for lvl := 0; lvl < listLevels; lvl++ {
		format, text := "bullet", bulletGlyphs[lvl%len(bulletGlyphs)]
		if ordered {
			format, text = decimalFormats[lvl%len(decimalFormats)], "%"+strconv.Itoa(lvl+1)+"."
		}
		left := strconv.Itoa(720 * (lvl + 1))
		b.WriteString(`<w:lvl w:ilvl="` + strconv.Itoa(lvl) + `"><w:start w:val="1"/><w:numFmt w:val="` + format + `"/>` +
			`<w:lvlText w:val="` + text + `"/><w:lvlJc w:val="left"/>` +
			`<w:pPr><w:ind w:left="` + left + `" w:hanging="360"/></w:pPr></w:lvl>`)
	}
	b.WriteString(`</w:abstractNum>`)
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`</Relationships>`

func corePropsXML(meta core.DocumentMetadata) string {
	created := meta.ConvertedAt
	if created == "" {
		created = time.Now().UTC().Format(time.RFC3339)
	}
	return xml.Header + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escape(meta.Title) + `</dc:title>` +
		`<dc:creator>` + escape(meta.Author) + `</dc:creator>` +
		`<cp:keywords>` + escape(strings.Join(meta.Keywords, ", ")) + `</cp:keywords>` +
		`<dc:description>` + escape("Converted from "+meta.SourceName) + `</dc:description>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + escape(created) + `</dcterms:created>` +
		`</cp:coreProperties>`
}

// docxHeadingSizes are w:sz values (half-points) by heading level.
var docxHeadingSizes = [...]int{0, 32, 28, 26, 24, 22, 22}

func stylesXML(opts DOCXOptions) string {
	font := escape(opts.Font)
	code := escape(opts.CodeFont)
	size := strconv.Itoa(int(opts.FontSize * 2))

	var b strings.Builder
	b.WriteString(xml.Header + `<w:styles xmlns:w="` + wordNS + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="` + font + `" w:hAnsi="` + font + `" w:cs="` + font + `"/>` +
		`<w:sz w:val="` + size + `"/><w:szCs w:val="` + size + `"/></w:rPr></w:rPrDefault>` +
		`<w:pPrDefault><w:pPr><w:spacing w:after="120" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>`)
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)
	for lvl := 1; lvl <= 6; lvl++ {
		n := strconv.Itoa(lvl)
		b.WriteString(`<w:style w:type="paragraph" w:styleId="Heading` + n + `"><w:name w:val="heading ` + n + `"/>` +
			`<w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
			`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="` + strconv.Itoa(lvl-1) + `"/></w:pPr>` +
			`<w:rPr><w:b/><w:sz w:val="` + strconv.Itoa(docxHeadingSizes[lvl]) + `"/></w:rPr></w:style>`)
	}
	b.WriteString(`<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/><w:basedOn w:val="Normal"/><w:qFormat/>` +
		`<w:pPr><w:pBdr><w:left w:val="single" w:sz="18" w:space="8" w:color="BFBFBF"/></w:pBdr><w:ind w:left="567"/></w:pPr>` +
		`<w:rPr><w:i/><w:color w:val="595959"/></w:rPr></w:style>`)
	b.WriteString(`<w:style w:type="paragraph" w:styleId="Code"><w:name w:val="Code"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:shd w:val="clear" w:color="auto" w:fill="F2F2F2"/><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>` +
		`<w:rPr><w:rFonts w:ascii="` + code + `" w:hAnsi="` + code + `" w:cs="` + code + `"/><w:sz w:val="18"/></w:rPr></w:style>`)
	b.WriteString(`<w:style w:type="paragraph" w:styleId="ListParagraph"><w:name w:val="List Paragraph"/><w:basedOn w:val="Normal"/>` +
		`<w:pPr><w:spacing w:after="0"/><w:contextualSpacing/></w:pPr></w:style>`)
	b.WriteString(`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders><w:tblCellMar><w:left w:w="108" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>`)
	b.WriteString(`</w:styles>`)
	return b.String()
}
