package enrich

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/links"
)

// Topic is a hand-entered topic with its description and links.
type Topic struct {
	ID                  int          `json:"id"`
	Topic               string       `json:"topic"`
	Description         string       `json:"description"`
	SuggestedSimulation string       `json:"suggested_simulation"`
	SimulationLinks     []links.Link `json:"simulation_links"`
}

// Topics describes each topic through gen and attaches simulation links.
// Without a generator, or when the model fails, every topic is returned
// with an empty description and itself as the suggested simulation. Only an
// empty topic list is an error.
func Topics(ctx context.Context, gen Generator, topics []string, subject string) ([]Topic, error) {
	topics = trimmed(topics)
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}

	items := plainItems(topics)
	if gen != nil {
		if described, err := describe(ctx, gen, topics, subject); err != nil {
			log.Warn().Err(err).Int("topics", len(topics)).Msg("enrich: topics left undescribed")
		} else if len(described) > 0 {
			items = described
		}
	}

	out := make([]Topic, 0, len(items))
	for i, it := range items {
		id := i + 1
		if it.ID != nil {
			id = *it.ID
		}
		sim := it.SuggestedSimulation
		if sim == "" {
			sim = it.Topic
		}
		out = append(out, Topic{
			ID:                  id,
			Topic:               it.Topic,
			Description:         it.Description,
			SuggestedSimulation: sim,
			SimulationLinks:     links.ForTopic(sim, subject),
		})
	}
	return out, nil
}

func describe(ctx context.Context, gen Generator, topics []string, subject string) ([]item, error) {
	prompt, err := TopicsPrompt(topics, subject)
	if err != nil {
		return nil, err
	}
	reply, err := gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseItems(reply)
}

func plainItems(topics []string) []item {
	out := make([]item, len(topics))
	for i, t := range topics {
		out[i] = item{Topic: t, SuggestedSimulation: t}
	}
	return out
}
