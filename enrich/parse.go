package enrich

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// item is one experiment as a model describes it. Models are loose with
// types, so numbers may arrive as strings and strings may be missing.
type item struct {
	ID                  *int
	Unit                *int
	Topic               string
	Description         string
	SuggestedSimulation string
}

// parseItems pulls the first well-formed JSON array of objects out of reply.
// Code fences and surrounding prose are ignored, brackets in the prose
// included; entries without a topic are dropped.
func parseItems(reply string) ([]item, error) {
	entries, ok := firstJSONArray(stripFences(reply))
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array of objects", ErrInvalidResponse)
	}

	out := make([]item, 0, len(entries))
	for _, m := range entries {
		it := item{
			ID:                  intField(m, "id"),
			Unit:                intField(m, "unit"),
			Topic:               stringField(m, "topic"),
			Description:         stringField(m, "description"),
			SuggestedSimulation: stringField(m, "suggested_simulation"),
		}
		if it.Topic == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// firstJSONArray tries every '[' in order and decodes one value from there.
// The first array of objects wins; whatever follows it is not read.
func firstJSONArray(s string) ([]map[string]any, bool) {
	for i := 0; i < len(s); i++ {
		off := strings.IndexByte(s[i:], '[')
		if off < 0 {
			break
		}
		i += off

		var entries []map[string]any
		if err := json.NewDecoder(strings.NewReader(s[i:])).Decode(&entries); err == nil {
			return entries, true
		}
	}
	return nil, false
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func intField(m map[string]any, key string) *int {
	var n int
	switch v := m[key].(type) {
	case float64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if n <= 0 {
		return nil
	}
	return &n
}
