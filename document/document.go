// Package document turns syllabus files into pages of plain text plus the
// tables detected on each page. It knows nothing about subjects or
// experiments; it only reads formats.
package document

import "strings"

// unreadablePlaceholder replaces each run of bytes that is not valid UTF-8.
const unreadablePlaceholder = "[unreadable text]"

// Row is one table row. Absent cells are empty strings.
type Row []string

// Table is an ordered list of rows.
type Table []Row

// Page is one unit of a document: a PDF page, a DOCX page, a slide, a sheet.
type Page struct {
	Number int
	Text   string
	Tables []Table
}

// Lines returns the non-empty trimmed lines of the page text.
func (p Page) Lines() []string {
	var out []string
	for _, l := range strings.Split(p.Text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Cell returns column i of r, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < len(r) {
		return r[i]
	}
	return ""
}

// JoinText concatenates page texts in page order, one blank line apart.
func JoinText(pages []Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if t := strings.TrimSpace(p.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// validText makes s safe to hand to the extractors.
func validText(s string) string {
	return strings.ToValidUTF8(s, unreadablePlaceholder)
}
