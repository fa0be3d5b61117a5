package syllabus

// structural.go - experiments from tables laid out as
//
//	| SUBJECT CODE: 2018506 | ...                      |
//	| UNIT – 1              | Write programs using ... |
//
// one subject per page, the page's first text line being its name.

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/document"
)

var (
	unitCellRE    = regexp.MustCompile(`(?i)^UNIT\s*[–-]\s*(\d+)`)
	subjectCodeRE = regexp.MustCompile(`\d{7}[A-Z]?`)
)

// minStructuralTopic is the length a table topic must exceed.
const minStructuralTopic = 5

// extractStructural reads every page independently and keeps the pages that
// produced experiments, in page order.
func extractStructural(ctx context.Context, pages []document.Page, workers int) Result {
	logger := loggerFrom(ctx)

	found := mapOrdered(ctx, len(pages), workers, func(i int) *Subject {
		subj, err := structuralPage(pages[i])
		if err != nil {
			logger.Warn().Err(err).Int("page", pages[i].Number).Msg("structural: page skipped")
			return nil
		}
		return subj
	})

	res := emptyResult("")
	for _, s := range found {
		if s != nil {
			res.Subjects = append(res.Subjects, *s)
		}
	}
	return res
}

// parsePage reads one page; tests replace it to exercise recovery.
var parsePage = parseStructuralPage

// structuralPage turns a panic while reading the page into an error so one
// malformed page cannot abort the rest.
func structuralPage(p document.Page) (subj *Subject, err error) {
	defer func() {
		if r := recover(); r != nil {
			subj, err = nil, fmt.Errorf("page %d: %v", p.Number, r)
		}
	}()
	return parsePage(p)
}

// parseStructuralPage returns nil when the page has no text or no UNIT rows.
func parseStructuralPage(p document.Page) (*Subject, error) {
	lines := p.Lines()
	if len(lines) == 0 {
		return nil, nil
	}

	s := Subject{Name: lines[0], Code: tableSubjectCode(p.Tables)}
	for _, tbl := range p.Tables {
		for _, row := range tbl {
			m := unitCellRE.FindStringSubmatch(row.Cell(0))
			if m == nil || row.Cell(1) == "" {
				continue
			}
			topic := normalizeSpace(row.Cell(1))
			if runeLen(topic) <= minStructuralTopic {
				continue
			}
			unit, _ := strconv.Atoi(m[1])
			s.Experiments = append(s.Experiments, Experiment{
				ID:                  len(s.Experiments) + 1,
				Unit:                unitPtr(unit),
				Topic:               topic,
				Description:         "Practical: " + topic,
				SuggestedSimulation: topic,
			})
		}
	}

	if len(s.Experiments) == 0 {
		return nil, nil
	}
	return &s, nil
}

// tableSubjectCode returns the first seven-digit code found in a first cell
// mentioning both SUBJECT and CODE.
func tableSubjectCode(tables []document.Table) string {
	for _, tbl := range tables {
		for _, row := range tbl {
			first := row.Cell(0)
			upper := strings.ToUpper(first)
			if !strings.Contains(upper, "SUBJECT") || !strings.Contains(upper, "CODE") {
				continue
			}
			if code := subjectCodeRE.FindString(first); code != "" {
				return code
			}
		}
	}
	return ""
}
