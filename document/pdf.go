package document

// pdf.go - PDF pages via pure-Go text-layer extraction.
//
// Uses github.com/ledongthuc/pdf for parsing. Page text comes from
// GetPlainText; tables are rebuilt from positioned glyphs by grouping them
// into lines and splitting a line into cells at wide horizontal gaps. Only the
// embedded text layer is read; scanned (image-only) PDFs yield empty pages.

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// defaultFontSize is assumed when a glyph reports no size.
	defaultFontSize = 10.0
	// cellGapEm is the horizontal gap, in ems, that starts a new cell.
	cellGapEm = 1.5
	// glyphWidthEm estimates a glyph's advance when the font has no widths.
	glyphWidthEm = 0.6
)

// readPDF is the formatFn for .pdf files.
func readPDF(data []byte) (pages []Page, err error) {
	if len(data) == 0 {
		return nil, errors.New("open pdf: empty content")
	}
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("open pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f2 := p.Font(name)
				fonts[name] = &f2
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, pageErr)
		}
		pages = append(pages, Page{
			Number: i,
			Text:   validText(strings.TrimSpace(text)),
			Tables: pdfTables(p),
		})
	}

	return pages, nil
}

// pdfTables groups a page's glyphs into lines and cells. Consecutive lines
// with at least two cells form one table.
func pdfTables(p pdf.Page) (tables []Table) {
	defer func() {
		if r := recover(); r != nil {
			tables = nil
		}
	}()

	var current [][]string
	flush := func() {
		if len(current) > 0 {
			if t := normalizeTable(current); len(t) > 0 {
				tables = append(tables, t)
			}
		}
		current = nil
	}

	for _, line := range pdfLines(p.Content().Text) {
		cells := pdfCells(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		current = append(current, cells)
	}
	flush()
	return tables
}

// pdfLines buckets glyphs by baseline, top of the page first, each line
// sorted left to right.
func pdfLines(glyphs []pdf.Text) [][]pdf.Text {
	var lines [][]pdf.Text
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		placed := false
		for i := range lines {
			ref := lines[i][0]
			if math.Abs(ref.Y-g.Y) < fontSize(ref)/2 {
				lines[i] = append(lines[i], g)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, []pdf.Text{g})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i][0].Y > lines[j][0].Y })
	for _, l := range lines {
		sort.SliceStable(l, func(i, j int) bool { return l[i].X < l[j].X })
	}
	return lines
}

// pdfCells splits one line of glyphs wherever the gap after a glyph exceeds
// cellGapEm.
func pdfCells(line []pdf.Text) []string {
	var cells []string
	var cell strings.Builder
	var prevEnd float64

	for i, g := range line {
		if i > 0 && g.X-prevEnd > cellGapEm*fontSize(g) {
			cells = append(cells, cell.String())
			cell.Reset()
		}
		cell.WriteString(g.S)
		w := g.W
		if w <= 0 {
			w = glyphWidthEm * fontSize(g)
		}
		prevEnd = g.X + w
	}
	cells = append(cells, cell.String())

	var out []string
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func fontSize(g pdf.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return defaultFontSize
}
