package document

// table.go - shared table helpers used by every format reader.
//
// Readers keep tables as rows of cells for structural extraction and also
// flatten them into the page text so the textual extractor sees the same
// content a PDF text layer would show.

import (
	"strings"
)

// cellSep joins cells of a flattened row. Two spaces keep a "UNIT_01" label
// and its topic apart without introducing punctuation.
const cellSep = "  "

// normalizeTable trims cells, collapses internal whitespace and drops rows
// whose cells are all empty. A table left with no rows returns nil.
func normalizeTable(rows [][]string) Table {
	var out Table
	for _, raw := range rows {
		row := make(Row, len(raw))
		empty := true
		for i, c := range raw {
			row[i] = strings.Join(strings.Fields(validText(c)), " ")
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

// flattenTable renders a table as one text line per row.
func flattenTable(t Table) string {
	lines := make([]string, 0, len(t))
	for _, row := range t {
		var cells []string
		for _, c := range row {
			if c != "" {
				cells = append(cells, c)
			}
		}
		lines = append(lines, strings.Join(cells, cellSep))
	}
	return strings.Join(lines, "\n")
}

// parseMarkdownTables pulls GitHub-style pipe tables out of Markdown text.
// Separator rows (| --- | :-: |) are skipped.
func parseMarkdownTables(text string) []Table {
	var tables []Table
	var current [][]string

	flush := func() {
		if t := normalizeTable(current); len(t) > 0 {
			tables = append(tables, t)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			flush()
			continue
		}
		if isSeparatorRow(line) {
			continue
		}
		line = strings.TrimSuffix(strings.TrimPrefix(line, "|"), "|")
		var cells []string
		for _, c := range strings.Split(line, "|") {
			cells = append(cells, strings.TrimSpace(c))
		}
		current = append(current, cells)
	}
	flush()
	return tables
}

func isSeparatorRow(line string) bool {
	return strings.Trim(line, "|-: ") == "" && strings.Contains(line, "-")
}
