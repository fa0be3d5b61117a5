package document

// Shared test helpers for the document package.

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ---- assertion helpers -----------------------------------------------------

func assertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertErr(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("expected output to contain %q\ngot: %s", want, got)
	}
}

func assertPages(t *testing.T, pages []Page, want int) {
	t.Helper()
	if len(pages) != want {
		t.Fatalf("got %d pages, want %d: %+v", len(pages), want, pages)
	}
}

// findRow returns the first row of any table on any page whose first cell
// contains prefix.
func findRow(pages []Page, prefix string) (Row, bool) {
	for _, p := range pages {
		for _, tbl := range p.Tables {
			for _, row := range tbl {
				if strings.Contains(row.Cell(0), prefix) {
					return row, true
				}
			}
		}
	}
	return nil, false
}

// ---- file factories --------------------------------------------------------

// writeTempFile writes content to a temp file with the given name and returns
// its path. The file is cleaned up automatically when the test ends.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writeTempFile: %v", err)
	}
	return path
}

// writeZip builds an in-memory ZIP archive from name -> content entries.
func writeZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// makeDocx builds a minimal .docx containing the given OOXML body fragment.
func makeDocx(t *testing.T, bodyXML string) []byte {
	t.Helper()
	const ns = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	doc := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document ` + ns + `><w:body>` + bodyXML + `</w:body></w:document>`
	return writeZip(t, map[string]string{"word/document.xml": doc})
}

// docxPara and docxTable keep DOCX fixtures readable.
func docxPara(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func docxTable(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString("<w:tbl>")
	for _, row := range rows {
		sb.WriteString("<w:tr>")
		for _, cell := range row {
			sb.WriteString("<w:tc>" + docxPara(cell) + "</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

const docxPageBreak = `<w:p><w:r><w:br w:type="page"/></w:r></w:p>`

// pptxTestSlide describes one slide: a title and body paragraphs, plus an
// optional raw graphicFrame (table) fragment.
type pptxTestSlide struct {
	title string
	body  []string
	table string
}

// makePPTX builds a minimal .pptx with one slide file per entry.
func makePPTX(t *testing.T, slides []pptxTestSlide) []byte {
	t.Helper()
	const ns = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

	entries := make(map[string]string, len(slides))
	for i, s := range slides {
		var sb strings.Builder
		sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><p:sld ` + ns + `><p:cSld><p:spTree>`)
		if s.title != "" {
			sb.WriteString(`<p:sp><p:nvSpPr><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>` +
				`<p:txBody><a:p><a:r><a:t>` + s.title + `</a:t></a:r></a:p></p:txBody></p:sp>`)
		}
		if len(s.body) > 0 {
			sb.WriteString(`<p:sp><p:nvSpPr><p:nvPr/></p:nvSpPr><p:txBody>`)
			for _, line := range s.body {
				sb.WriteString(`<a:p><a:r><a:t>` + line + `</a:t></a:r></a:p>`)
			}
			sb.WriteString(`</p:txBody></p:sp>`)
		}
		sb.WriteString(s.table)
		sb.WriteString(`</p:spTree></p:cSld></p:sld>`)
		entries[fmt.Sprintf("ppt/slides/slide%d.xml", i+1)] = sb.String()
	}
	return writeZip(t, entries)
}

// pptxTable renders rows as a DrawingML table inside a graphic frame.
func pptxTable(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString(`<p:graphicFrame><a:graphic><a:graphicData><a:tbl>`)
	for _, row := range rows {
		sb.WriteString(`<a:tr>`)
		for _, cell := range row {
			sb.WriteString(`<a:tc><a:txBody><a:p><a:r><a:t>` + cell + `</a:t></a:r></a:p></a:txBody></a:tc>`)
		}
		sb.WriteString(`</a:tr>`)
	}
	sb.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return sb.String()
}

// makeXLSX builds a minimal .xlsx with one sheet.
func makeXLSX(t *testing.T, sheet string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet first so SetCellValue writes to the right name.
	if sheet != "Sheet1" {
		f.SetSheetName("Sheet1", sheet)
	}

	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue(sheet, cell, val)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("makeXLSX WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

// pdfTestPage is a heading followed by two-column table rows.
type pdfTestPage struct {
	heading string
	rows    [][2]string
}

// makePDF renders pages with core fonts and no stream compression.
func makePDF(t *testing.T, pages []pdfTestPage) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	for _, pg := range pages {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, pg.heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range pg.rows {
			pdf.CellFormat(30, 8, row[0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(140, 8, row[1], "1", 1, "L", false, 0, "")
		}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("makePDF: %v", err)
	}
	return buf.Bytes()
}
