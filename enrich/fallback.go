package enrich

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/syllabus"
)

// Fallback adapts a Generator to syllabus.Fallback. The model's experiments
// are filed under one subject named from the text when possible.
type Fallback struct {
	Gen Generator
}

// NewFallback returns a Fallback using gen. A nil gen gives a Fallback that
// always reports syllabus.ErrEnrichmentUnavailable.
func NewFallback(gen Generator) *Fallback {
	return &Fallback{Gen: gen}
}

func (f *Fallback) Extract(ctx context.Context, text string) (syllabus.Result, error) {
	empty := syllabus.Result{Subjects: []syllabus.Subject{}}
	if f == nil || f.Gen == nil {
		return empty, syllabus.ErrEnrichmentUnavailable
	}

	prompt, err := ExtractionPrompt(text)
	if err != nil {
		return empty, fmt.Errorf("%w: %w", syllabus.ErrEnrichmentUnavailable, err)
	}
	reply, err := f.Gen.Generate(ctx, prompt)
	if err != nil {
		return empty, fmt.Errorf("%w: %w", syllabus.ErrEnrichmentUnavailable, err)
	}
	items, err := parseItems(reply)
	if err != nil {
		return empty, fmt.Errorf("%w: %w", syllabus.ErrEnrichmentUnavailable, err)
	}
	log.Debug().Int("items", len(items)).Msg("enrich: model reply parsed")
	if len(items) == 0 {
		return empty, nil
	}

	name, code := syllabus.SubjectMetadata(text)
	if name == "" {
		name = syllabus.UnknownSubject
	}
	subj := syllabus.Subject{Name: name, Code: code, Experiments: make([]syllabus.Experiment, 0, len(items))}
	for _, it := range items {
		sim := it.SuggestedSimulation
		if sim == "" {
			sim = it.Topic
		}
		subj.Experiments = append(subj.Experiments, syllabus.Experiment{
			ID:                  len(subj.Experiments) + 1,
			Unit:                it.Unit,
			Topic:               it.Topic,
			Description:         it.Description,
			SuggestedSimulation: sim,
		})
	}
	return syllabus.Result{Subjects: []syllabus.Subject{subj}}, nil
}
