package syllabus

// textual.go - experiments from free text.
//
// The text is split into one segment per "SUBJECT CODE ..." heading. Within a
// segment, unit-numbered lines (UNIT_01, Experiment 2, Lab 3) are preferred;
// numbered list items that read like lab tasks are added when too few unit
// lines were found.

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

var (
	boundaryRE = regexp.MustCompile(`(?m)(?:^|\n)(?:SUBJECT|Subject|Course)[:\s]*(?:CODE|Code)[:\s]*([A-Z0-9]+)[^\n]*\n([^\n]+)`)

	subjectNameREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Subject|Course)[:\s]*([A-Z][A-Za-z\s&]+(?:Lab|Laboratory|Practical))`),
		regexp.MustCompile(`(?im)^([A-Z][A-Za-z\s&]+(?:Lab|Laboratory|Practical))`),
	}
	subjectCodeTextRE = regexp.MustCompile(`(?i)(?:CODE|Subject Code)[:\s]*([A-Z0-9]+)`)

	unitLineRE     = regexp.MustCompile(`(?i)(?:UNIT[_\s-]?(\d+)|Experiment[_\s-]?(\d+)|Lab[_\s-]?(\d+))[:\s]*([^\n\r\[]{10,200})`)
	numberedLineRE = regexp.MustCompile(`(?m)^\s*(\d+)\.\s+([^\n\r]{15,200})`)
	bracketTailRE  = regexp.MustCompile(`[\[\](){}].*$`)

	// Keywords match case-insensitively as whole words; the value, optionally
	// after "of", must start with a capital letter.
	branchRE = regexp.MustCompile(`\b(?i:Branch|Department|Program)\b[:\s]*(?:of\s+)?([A-Z][A-Za-z\s&]+)`)
)

const (
	// numberedListThreshold: numbered list items are only considered when
	// unit lines produced fewer experiments than this. The value is a
	// heuristic tunable, not a derived constant.
	numberedListThreshold = 3

	// maxExperimentsPerSubject caps each segment.
	maxExperimentsPerSubject = 20

	metadataWindow = 500
	branchWindow   = 1000

	minUnitTopic = 10
)

var (
	gradingWords = []string{"marks", "hrs", "credits"}
	actionVerbs  = []string{
		"write", "program", "exercise", "implement", "create", "develop",
		"design", "build", "test", "analyze", "measure", "observe", "calculate",
	}
)

// segment is a slice of the text attributed to one subject heading.
type segment struct {
	text string
	name string
	code string
}

// extractTextual splits text into segments, parses each and attaches the
// branch found near the top of the text.
func extractTextual(ctx context.Context, text string, workers int) Result {
	segs := splitSegments(text)
	parsed := mapOrdered(ctx, len(segs), workers, func(i int) Subject {
		return parseSegment(segs[i])
	})

	res := emptyResult(detectBranch(text))
	for _, s := range parsed {
		if len(s.Experiments) > 0 {
			res.Subjects = append(res.Subjects, s)
		}
	}
	return res
}

func splitSegments(text string) []segment {
	matches := boundaryRE.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []segment{{text: text}}
	}

	segs := make([]segment, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segs = append(segs, segment{
			text: text[m[0]:end],
			code: strings.TrimSpace(text[m[2]:m[3]]),
			name: strings.TrimSpace(text[m[4]:m[5]]),
		})
	}
	return segs
}

// SubjectMetadata guesses a subject name and code from the start of text.
// Missing values come back empty.
func SubjectMetadata(text string) (name, code string) {
	window := Truncate(text, metadataWindow)
	for _, re := range subjectNameREs {
		if m := re.FindStringSubmatch(window); m != nil {
			name = strings.TrimSpace(m[1])
			break
		}
	}
	if m := subjectCodeTextRE.FindStringSubmatch(window); m != nil {
		code = strings.TrimSpace(m[1])
	}
	return name, code
}

func parseSegment(seg segment) Subject {
	name, code := seg.name, seg.code
	if name == "" || code == "" {
		guessName, guessCode := SubjectMetadata(seg.text)
		if name == "" {
			name = guessName
		}
		if code == "" {
			code = guessCode
		}
	}
	if name == "" {
		name = UnknownSubject
	}

	exps := unitExperiments(seg.text)
	if len(exps) < numberedListThreshold {
		exps = append(exps, numberedExperiments(seg.text, len(exps))...)
	}
	if len(exps) > maxExperimentsPerSubject {
		exps = exps[:maxExperimentsPerSubject]
	}

	return Subject{Name: name, Code: code, Experiments: exps}
}

func unitExperiments(text string) []Experiment {
	var out []Experiment
	for _, m := range unitLineRE.FindAllStringSubmatch(text, -1) {
		topic := cleanUnitTopic(m[4])
		if runeLen(topic) <= minUnitTopic || containsAny(strings.ToLower(topic), gradingWords) {
			continue
		}
		e := Experiment{
			ID:                  len(out) + 1,
			Topic:               topic,
			Description:         "Practical exercise: " + topic,
			SuggestedSimulation: topic,
		}
		for _, g := range m[1:4] {
			if n, err := strconv.Atoi(g); err == nil {
				e.Unit = unitPtr(n)
				break
			}
		}
		out = append(out, e)
	}
	return out
}

// cleanUnitTopic collapses whitespace and drops everything from the first
// bracket onwards, which is where marks and hour annotations usually start.
func cleanUnitTopic(s string) string {
	s = normalizeSpace(s)
	s = bracketTailRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// numberedExperiments numbers its results after the offset experiments
// already found in the segment.
func numberedExperiments(text string, offset int) []Experiment {
	var out []Experiment
	for _, m := range numberedLineRE.FindAllStringSubmatch(text, -1) {
		topic := normalizeSpace(m[2])
		if !containsAny(strings.ToLower(topic), actionVerbs) {
			continue
		}
		out = append(out, Experiment{
			ID:                  offset + len(out) + 1,
			Topic:               topic,
			Description:         "Lab activity: " + topic,
			SuggestedSimulation: topic,
		})
	}
	return out
}

// detectBranch keeps only the first line of the match; the pattern's
// whitespace class would otherwise run on into the next heading.
func detectBranch(text string) string {
	m := branchRE.FindStringSubmatch(Truncate(text, branchWindow))
	if m == nil {
		return ""
	}
	branch, _, _ := strings.Cut(m[1], "\n")
	return strings.TrimSpace(branch)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
