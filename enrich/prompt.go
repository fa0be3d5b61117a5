package enrich

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/syllabus"
)

// maxPromptText is how much syllabus text goes into an extraction prompt.
const maxPromptText = 15000

var extractionTemplate = template.Must(template.New("extraction").Parse(
	`You are an education assistant analysing a laboratory syllabus.

TASK: Extract every laboratory experiment, practical topic or hands-on activity from the text below.

INSTRUCTIONS:
- Look in tables with columns such as "UNIT", "CONTENTS" or "Practical"; each row is likely one experiment.
- Look for numbered items such as "UNIT_01", "Experiment 1", "Lab 1" or "1.".
- Include the unit or experiment number when present.
- Write a one-sentence description for each topic.
- Suggest a relevant virtual lab simulation name.

OUTPUT: Return ONLY a JSON array, no markdown and no extra text, shaped like:
[
  {"id": 1, "unit": 1, "topic": "Write programs using Java built-in functions", "description": "Use Java's built-in functions with different data types", "suggested_simulation": "Java Programming Basics"}
]
If there are no experiments, return [].

SYLLABUS TEXT:
{{.Text}}
`))

var topicsTemplate = template.Must(template.New("topics").Parse(
	`You are an education assistant. These are laboratory experiments for the subject "{{.Subject}}".

For each topic give a one-sentence description and a suggested virtual lab simulation title.

Return ONLY a JSON array of objects with the keys:
- "id": 1-based index
- "topic": the topic exactly as given
- "description": a brief summary
- "suggested_simulation": a likely virtual lab simulation name

Topics:
{{range .Topics}}- {{.}}
{{end}}`))

// ExtractionPrompt builds the prompt for a syllabus the heuristics could not
// parse. Only the first maxPromptText characters of text are included.
func ExtractionPrompt(text string) (string, error) {
	return render(extractionTemplate, struct{ Text string }{syllabus.Truncate(text, maxPromptText)})
}

// TopicsPrompt builds the prompt that describes hand-entered topics.
func TopicsPrompt(topics []string, subject string) (string, error) {
	return render(topicsTemplate, struct {
		Topics  []string
		Subject string
	}{topics, subject})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// trimmed drops blank entries and surrounding whitespace.
func trimmed(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
