package syllabus

import "github.com/Cortexa-LLC/mcp/src/labsyllabus/links"

// CatalogEntry is an experiment lifted out of its subject, numbered across
// the whole document and carrying its practice links.
type CatalogEntry struct {
	ID                  int          `json:"id"`
	Subject             string       `json:"subject"`
	SubjectCode         string       `json:"subject_code"`
	Unit                *int         `json:"unit"`
	Topic               string       `json:"topic"`
	Description         string       `json:"description"`
	SuggestedSimulation string       `json:"suggested_simulation"`
	SimulationLinks     []links.Link `json:"simulation_links"`
}

// Catalog is the flat, linked view of a Result.
type Catalog struct {
	Branch      string         `json:"branch"`
	Experiments []CatalogEntry `json:"experiments"`
}

// Flatten numbers experiments from 1 in subject order and attaches links
// built from each suggested simulation (the topic when that is empty) and
// the subject name.
func Flatten(r Result) Catalog {
	c := Catalog{Branch: r.Branch, Experiments: make([]CatalogEntry, 0, r.ExperimentCount())}
	for _, s := range r.Subjects {
		for _, e := range s.Experiments {
			sim := e.SuggestedSimulation
			if sim == "" {
				sim = e.Topic
			}
			c.Experiments = append(c.Experiments, CatalogEntry{
				ID:                  len(c.Experiments) + 1,
				Subject:             s.Name,
				SubjectCode:         s.Code,
				Unit:                e.Unit,
				Topic:               e.Topic,
				Description:         e.Description,
				SuggestedSimulation: e.SuggestedSimulation,
				SimulationLinks:     links.ForTopic(sim, s.Name),
			})
		}
	}
	return c
}
