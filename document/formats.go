package document

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// formatFn reads an in-memory document into pages.
type formatFn func(data []byte) ([]Page, error)

// formats lists every supported extension.
var formats = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".xlsx": true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".txt":  true,
	".md":   true,
}

// formatReader reads documents using pure Go libraries.
type formatReader struct {
	htmlConverter *md.Converter
}

func newFormatReader() *formatReader {
	// Escaping is disabled so "1." list numbers and "UNIT-1" labels survive
	// as plain text.
	conv := md.NewConverter("", true, &md.Options{EscapeMode: "disabled"})
	conv.Use(plugin.Table())
	return &formatReader{htmlConverter: conv}
}

// CanRead returns true when the file extension is supported.
func (r *formatReader) CanRead(name string) bool {
	return formats[strings.ToLower(filepath.Ext(name))]
}

// SupportedFormats returns supported extensions without the leading dot.
func (r *formatReader) SupportedFormats() []string {
	out := make([]string, 0, len(formats))
	for ext := range formats {
		out = append(out, strings.TrimPrefix(ext, "."))
	}
	return out
}

// Read routes data to the reader for name's extension.
func (r *formatReader) Read(name string, data []byte) ([]Page, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !formats[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	var fn formatFn
	switch ext {
	case ".pdf":
		fn = readPDF
	case ".docx":
		fn = readDOCX
	case ".pptx":
		fn = readPPTX
	case ".xlsx":
		fn = readXLSX
	case ".csv":
		fn = readCSV
	case ".html", ".htm":
		fn = r.readHTML
	case ".txt", ".md":
		fn = readText
	}
	return fn(data)
}

// --- format readers ----------------------------------------------------------

func (r *formatReader) readHTML(data []byte) ([]Page, error) {
	text, err := r.htmlConverter.ConvertString(string(data))
	if err != nil {
		return nil, fmt.Errorf("convert html: %w", err)
	}
	text = validText(text)
	return []Page{{Number: 1, Text: text, Tables: parseMarkdownTables(text)}}, nil
}

func readCSV(data []byte) ([]Page, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		// Not really CSV; keep the text so the textual extractor can try.
		return readText(data)
	}
	table := normalizeTable(records)
	if len(table) == 0 {
		return nil, nil
	}
	return []Page{{Number: 1, Text: flattenTable(table), Tables: []Table{table}}}, nil
}

func readText(data []byte) ([]Page, error) {
	text := validText(string(data))
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []Page{{Number: 1, Text: text, Tables: parseMarkdownTables(text)}}, nil
}
