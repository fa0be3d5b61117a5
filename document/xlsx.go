package document

// xlsx.go - XLSX workbooks using the excelize library.
// Each sheet becomes a page whose first line is the sheet name and whose
// single table holds the sheet rows.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

func readXLSX(data []byte) ([]Page, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	var pages []Page
	for i, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return pages, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		table := normalizeTable(rows)
		if len(table) == 0 {
			continue
		}

		pages = append(pages, Page{
			Number: i + 1,
			Text:   validText(sheet) + "\n" + flattenTable(table),
			Tables: []Table{table},
		})
	}

	return pages, nil
}
