// Package syllabus turns syllabus text and page tables into subjects and
// their laboratory experiments.
//
// Two heuristic strategies are provided. The structural strategy reads
// tables whose rows look like "UNIT – n | topic"; the textual strategy splits
// free text at subject-code headings and picks experiments out of unit and
// numbered-list lines. An Orchestrator tries strategies in order and may hand
// the text to an injected Fallback when none of them recognised anything.
package syllabus

// UnknownSubject names a subject whose heading could not be found.
const UnknownSubject = "Unknown Subject"

// Experiment is one lab activity. ID is 1-based and local to its subject.
type Experiment struct {
	ID                  int    `json:"id"`
	Unit                *int   `json:"unit"`
	Topic               string `json:"topic"`
	Description         string `json:"description"`
	SuggestedSimulation string `json:"suggested_simulation"`
}

// Subject groups the experiments found under one heading. Names are not
// unique; two subjects with the same name stay separate, in document order.
type Subject struct {
	Name        string       `json:"subject"`
	Code        string       `json:"subject_code"`
	Experiments []Experiment `json:"experiments"`
}

// Result is the outcome of an extraction. Subjects is never nil.
type Result struct {
	Branch   string    `json:"branch"`
	Subjects []Subject `json:"subjects"`
}

func emptyResult(branch string) Result {
	return Result{Branch: branch, Subjects: []Subject{}}
}

// Empty reports whether no subject was recognised.
func (r Result) Empty() bool { return len(r.Subjects) == 0 }

// ExperimentCount totals the experiments across subjects.
func (r Result) ExperimentCount() int {
	n := 0
	for _, s := range r.Subjects {
		n += len(s.Experiments)
	}
	return n
}

func unitPtr(n int) *int { return &n }
