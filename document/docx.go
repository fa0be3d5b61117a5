package document

// docx.go - Word documents.
//
// word/document.xml is streamed once. Body paragraphs become text lines and
// tables are kept as rows (and flattened into the text as well). An explicit
// page break (<w:br w:type="page"/>) outside a table closes the current page
// after its paragraph, so a manual with one subject per page keeps each
// subject heading as the first line of its own page.

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const docxBody = "word/document.xml"

func readDOCX(data []byte) ([]Page, error) {
	pkg, err := openPackage(data)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	d := &docxDoc{}
	if err := readPart(pkg, docxBody, d); err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	d.closePage()
	return d.pages, nil
}

// docxDoc accumulates pages while document.xml is streamed.
type docxDoc struct {
	pages []Page

	// current page
	lines  []string
	tables []Table

	// current body paragraph
	inPara    bool
	para      strings.Builder
	breakPage bool

	tbl tableBuilder
}

func (d *docxDoc) start(el xml.StartElement, open openElems) {
	switch el.Name.Local {
	case "tbl":
		d.tbl.begin()
	case "tr":
		d.tbl.beginRow()
	case "tc":
		d.tbl.beginCell()
	case "p":
		if d.tbl.inCell {
			d.tbl.paragraph()
			return
		}
		d.inPara = true
		d.para.Reset()
	case "br":
		if attrVal(el, "type") == "page" && !d.tbl.active {
			d.breakPage = true
			return
		}
		d.text("\n")
	case "tab":
		if open.has("r") {
			d.text(" ")
		}
	}
}

func (d *docxDoc) end(name string, _ openElems) {
	switch name {
	case "p":
		if !d.inPara || d.tbl.inCell {
			return
		}
		if line := strings.TrimSpace(d.para.String()); line != "" {
			d.lines = append(d.lines, line)
		}
		d.inPara = false
		if d.breakPage {
			d.breakPage = false
			d.closePage()
		}
	case "tc":
		d.tbl.endCell()
	case "tr":
		d.tbl.endRow()
	case "tbl":
		if t := d.tbl.finish(); len(t) > 0 {
			d.tables = append(d.tables, t)
			d.lines = append(d.lines, flattenTable(t))
		}
	}
}

func (d *docxDoc) text(s string) {
	switch {
	case d.tbl.inCell:
		d.tbl.write(s)
	case d.inPara:
		d.para.WriteString(s)
	}
}

// closePage emits the current page unless it is blank.
func (d *docxDoc) closePage() {
	if len(d.lines) == 0 && len(d.tables) == 0 {
		return
	}
	d.pages = append(d.pages, Page{
		Number: len(d.pages) + 1,
		Text:   validText(strings.Join(d.lines, "\n")),
		Tables: d.tables,
	})
	d.lines, d.tables = nil, nil
}
