// Package enrich asks a generative model for what the heuristics could not
// find: experiments in a syllabus no strategy recognised, and descriptions
// for topics entered by hand. Every model reply is treated as untrusted text
// that should contain a JSON array somewhere.
package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/config"
)

var (
	// ErrNotConfigured is returned by New when the selected provider has no
	// credentials.
	ErrNotConfigured = errors.New("enrichment provider not configured")
	// ErrNoTopics is returned by Topics for an empty topic list.
	ErrNoTopics = errors.New("no topics provided")
	// ErrInvalidResponse means the reply held no decodable JSON array.
	ErrInvalidResponse = errors.New("invalid model response")
)

// Generator sends one prompt to a model and returns its raw reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the Generator selected by cfg.AI.
func New(ctx context.Context, cfg *config.Config) (Generator, error) {
	ai := cfg.AI
	if !ai.Configured() {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, ai.Provider)
	}
	switch ai.Provider {
	case "gemini":
		return NewGemini(ctx, ai.GeminiAPIKey, ai.Model)
	case "openai":
		return NewOpenAI(ai.OpenAIAPIKey, ai.OpenAIBaseURL, ai.Model), nil
	}
	return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, ai.Provider)
}
