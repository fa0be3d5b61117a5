package document

// ooxml.go - streaming helpers shared by the DOCX and PPTX readers.
//
// Both formats keep text in <t> runs inside <p> paragraphs and tables as
// <tbl>/<tr>/<tc>. Only local element names are compared, so the w: and a:
// namespace prefixes need no registration.

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// openElems is the stack of currently open element names, outermost first.
type openElems []string

func (o openElems) has(name string) bool { return slices.Contains(o, name) }

// partHandler receives the events of one OOXML part. text is only called
// for character data inside a <t> element.
type partHandler interface {
	start(el xml.StartElement, open openElems)
	end(name string, open openElems)
	text(s string)
}

func walkPart(r io.Reader, h partHandler) error {
	dec := xml.NewDecoder(r)
	var open openElems
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			open = append(open, t.Name.Local)
			h.start(t, open)
		case xml.EndElement:
			h.end(t.Name.Local, open)
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		case xml.CharData:
			if open.has("t") {
				h.text(string(t))
			}
		}
	}
}

// tableBuilder collects the rows of the <tbl> being read.
type tableBuilder struct {
	active bool
	inCell bool
	rows   [][]string
	row    []string
	cell   strings.Builder
}

func (b *tableBuilder) begin() {
	b.active = true
	b.rows = nil
}

func (b *tableBuilder) beginRow() { b.row = nil }

func (b *tableBuilder) beginCell() {
	if !b.active {
		return
	}
	b.inCell = true
	b.cell.Reset()
}

// paragraph separates paragraphs within one cell.
func (b *tableBuilder) paragraph() {
	if b.inCell && b.cell.Len() > 0 {
		b.cell.WriteByte('\n')
	}
}

func (b *tableBuilder) write(s string) { b.cell.WriteString(s) }

func (b *tableBuilder) endCell() {
	if !b.inCell {
		return
	}
	b.row = append(b.row, strings.TrimSpace(b.cell.String()))
	b.inCell = false
}

func (b *tableBuilder) endRow() {
	if b.active {
		b.rows = append(b.rows, b.row)
		b.row = nil
	}
}

// finish closes the table and returns it normalised; nil when it held no
// text.
func (b *tableBuilder) finish() Table {
	t := normalizeTable(b.rows)
	b.active = false
	b.rows = nil
	return t
}

func attrVal(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// openPackage opens data as the ZIP container of an OOXML document.
func openPackage(data []byte) (*zip.Reader, error) {
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}

// readPart streams the named part of pkg through h.
func readPart(pkg *zip.Reader, name string, h partHandler) error {
	f, err := pkg.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()
	return walkPart(f, h)
}
