package syllabus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/config"
	"github.com/Cortexa-LLC/mcp/src/labsyllabus/document"
)

// Input is what a Strategy reads. Text is the whole document text; Pages
// carries per-page text and tables when the source had them.
type Input struct {
	Text  string
	Pages []document.Page
}

// Strategy recognises subjects in an Input. Extract never fails; an
// unrecognised input gives an empty Result.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, in Input) Result
}

// TextualStrategy parses Input.Text, or the joined page text when Text is
// empty.
type TextualStrategy struct{ Workers int }

func (TextualStrategy) Name() string { return "textual" }

func (s TextualStrategy) Extract(ctx context.Context, in Input) Result {
	text := in.Text
	if text == "" {
		text = document.JoinText(in.Pages)
	}
	return extractTextual(ctx, text, s.Workers)
}

// StructuralStrategy reads page tables. Plain text input has no tables and
// always yields an empty Result.
type StructuralStrategy struct{ Workers int }

func (StructuralStrategy) Name() string { return "structural" }

func (s StructuralStrategy) Extract(ctx context.Context, in Input) Result {
	return extractStructural(ctx, in.Pages, s.Workers)
}

// StrategyByName maps a configured strategy name to its implementation.
func StrategyByName(name string, workers int) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "textual":
		return TextualStrategy{Workers: workers}, nil
	case "structural":
		return StructuralStrategy{Workers: workers}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// Fallback is consulted when no strategy recognised anything and the caller
// asked for it. Implementations return ErrEnrichmentUnavailable when they
// cannot help.
type Fallback interface {
	Extract(ctx context.Context, text string) (Result, error)
}

// PageSource loads a document into pages. *document.Loader satisfies it.
type PageSource interface {
	Load(ctx context.Context, input string) ([]document.Page, error)
}

// Orchestrator runs strategies in order and returns the first non-empty
// result.
type Orchestrator struct {
	strategies []Strategy
	workers    int
	fallback   Fallback
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFallback injects the generative fallback.
func WithFallback(f Fallback) Option {
	return func(o *Orchestrator) { o.fallback = f }
}

// WithStrategies replaces the configured strategy order.
func WithStrategies(s ...Strategy) Option {
	return func(o *Orchestrator) { o.strategies = s }
}

// New builds an Orchestrator from cfg. A nil cfg uses config.Default.
// Unknown strategy names are skipped with a warning.
func New(cfg *config.Config, opts ...Option) *Orchestrator {
	if cfg == nil {
		cfg = config.Default()
	}
	o := &Orchestrator{workers: cfg.Workers}
	for _, name := range cfg.Strategies {
		s, err := StrategyByName(name, cfg.Workers)
		if err != nil {
			log.Warn().Err(err).Msg("orchestrator: strategy ignored")
			continue
		}
		o.strategies = append(o.strategies, s)
	}
	if len(o.strategies) == 0 {
		o.strategies = []Strategy{StructuralStrategy{Workers: cfg.Workers}, TextualStrategy{Workers: cfg.Workers}}
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Strategies returns the strategy names in the order they are tried.
func (o *Orchestrator) Strategies() []string {
	names := make([]string, len(o.strategies))
	for i, s := range o.strategies {
		names[i] = s.Name()
	}
	return names
}

// HasFallback reports whether a fallback was injected.
func (o *Orchestrator) HasFallback() bool { return o.fallback != nil }

// ExtractText parses plain text with the textual strategy. When nothing is
// found and useFallback is set, the injected fallback gets the text.
func (o *Orchestrator) ExtractText(ctx context.Context, text string, useFallback bool) Result {
	ctx = withRequestLogger(ctx)
	return o.run(ctx, []Strategy{TextualStrategy{Workers: o.workers}}, Input{Text: text}, useFallback)
}

// ExtractDocument runs the configured strategies over pages. The default
// order tries the structural (table) strategy before the textual one, since
// documents carry tables that plain text loses; ExtractText is textual only.
// LABSYLLABUS_STRATEGIES=textual,structural restores text-first order.
func (o *Orchestrator) ExtractDocument(ctx context.Context, pages []document.Page, useFallback bool) Result {
	ctx = withRequestLogger(ctx)
	return o.run(ctx, o.strategies, Input{Text: document.JoinText(pages), Pages: pages}, useFallback)
}

// ExtractFrom loads input through src and extracts from the pages. A load
// failure is reported as ErrDocumentUnreadable along with an empty Result.
func (o *Orchestrator) ExtractFrom(ctx context.Context, src PageSource, input string, useFallback bool) (Result, error) {
	pages, err := src.Load(ctx, input)
	if err != nil {
		return emptyResult(""), fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
	}
	return o.ExtractDocument(ctx, pages, useFallback), nil
}

func (o *Orchestrator) run(ctx context.Context, strategies []Strategy, in Input, useFallback bool) Result {
	logger := loggerFrom(ctx)

	var branch string
	for _, s := range strategies {
		res := s.Extract(ctx, in)
		if branch == "" {
			branch = res.Branch
		}
		if !res.Empty() {
			if res.Branch == "" {
				res.Branch = branch
			}
			logger.Info().
				Str("strategy", s.Name()).
				Int("subjects", len(res.Subjects)).
				Int("experiments", res.ExperimentCount()).
				Msg("syllabus extracted")
			return res
		}
		logger.Debug().Str("strategy", s.Name()).Msg("strategy found nothing")
	}

	if !useFallback || o.fallback == nil {
		logger.Info().Err(ErrNoStructureFound).Bool("fallback", useFallback).Msg("syllabus extraction empty")
		return emptyResult(branch)
	}

	res, err := o.fallback.Extract(ctx, in.Text)
	if err != nil {
		if !errors.Is(err, ErrEnrichmentUnavailable) {
			err = fmt.Errorf("%w: %w", ErrEnrichmentUnavailable, err)
		}
		logger.Warn().Err(err).Msg("fallback failed")
		return emptyResult(branch)
	}
	if res.Subjects == nil {
		res.Subjects = []Subject{}
	}
	if res.Branch == "" {
		res.Branch = branch
	}
	logger.Info().
		Str("strategy", "fallback").
		Int("subjects", len(res.Subjects)).
		Int("experiments", res.ExperimentCount()).
		Msg("syllabus extracted")
	return res
}

// withRequestLogger attaches a logger carrying a fresh request id unless ctx
// already has one.
func withRequestLogger(ctx context.Context) context.Context {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return ctx
	}
	l := log.With().Str("request_id", uuid.NewString()).Logger()
	return l.WithContext(ctx)
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
