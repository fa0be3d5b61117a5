package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Cortexa-LLC/mcp/src/labsyllabus/config"
	"github.com/Cortexa-LLC/mcp/src/labsyllabus/document"
	"github.com/Cortexa-LLC/mcp/src/labsyllabus/enrich"
	"github.com/Cortexa-LLC/mcp/src/labsyllabus/links"
	"github.com/Cortexa-LLC/mcp/src/labsyllabus/syllabus"
)

// Server identity constants.
const (
	serverName    = "labsyllabus"
	serverVersion = "0.1.0"
)

// MCP tool parameter key constants, shared between schema definitions and
// argument extraction so a typo in one place is caught by the other.
const (
	argURI       = "uri"
	argText      = "text"
	argUseAI     = "use_ai"
	argWithLinks = "with_links"
	argTopic     = "topic"
	argTopics    = "topics"
	argSubject   = "subject"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	// stdout carries the MCP protocol; logs go to stderr.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	var gen enrich.Generator
	if cfg.AI.Configured() {
		g, err := enrich.New(context.Background(), cfg)
		if err != nil {
			log.Warn().Err(err).Msg("enrichment disabled")
		} else {
			gen = g
		}
	}

	var opts []syllabus.Option
	if gen != nil {
		opts = append(opts, syllabus.WithFallback(enrich.NewFallback(gen)))
	}

	h := &handlers{
		orch:      syllabus.New(cfg, opts...),
		loader:    document.NewLoader(cfg),
		gen:       gen,
		aiDefault: cfg.AI.Fallback,
	}

	s := server.NewMCPServer(serverName, serverVersion)
	registerTools(s, h)

	log.Info().
		Strs("strategies", h.orch.Strategies()).
		Bool("ai_fallback", h.orch.HasFallback()).
		Msg("labsyllabus server starting")
	if err := server.ServeStdio(s); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// extractor is the part of *syllabus.Orchestrator the tools use.
type extractor interface {
	ExtractFrom(ctx context.Context, src syllabus.PageSource, input string, useFallback bool) (syllabus.Result, error)
	ExtractText(ctx context.Context, text string, useFallback bool) syllabus.Result
	Strategies() []string
	HasFallback() bool
}

// pageLoader is the part of *document.Loader the tools use.
type pageLoader interface {
	syllabus.PageSource
	SupportedFormats() []string
	MaxFileSizeBytes() int64
}

// handlers holds tool dependencies as interfaces so tests can inject fakes.
type handlers struct {
	orch   extractor
	loader pageLoader
	gen    enrich.Generator
	// aiDefault is used when a call does not pass use_ai.
	aiDefault bool
}

// registerTools binds MCP tool definitions to their handlers.
func registerTools(s *server.MCPServer, h *handlers) {
	// extract_syllabus - subjects and experiments from a document
	s.AddTool(
		mcp.NewTool("extract_syllabus",
			mcp.WithDescription("Extract subjects and lab experiments from a syllabus document. "+
				"Pass an absolute file path or a file://, http:// or https:// URI. "+
				"Supported formats: PDF, DOCX, PPTX, XLSX, CSV, HTML, TXT, MD."),
			mcp.WithString(argURI,
				mcp.Required(),
				mcp.Description("Absolute file path or URI of the syllabus"),
			),
			mcp.WithBoolean(argUseAI,
				mcp.Description("Ask the configured model when no heuristic recognises the document"),
			),
			mcp.WithBoolean(argWithLinks,
				mcp.Description("Return a flat experiment list with simulation links instead of subjects"),
			),
		),
		h.extractSyllabus,
	)

	// extract_syllabus_text - same, from pasted text
	s.AddTool(
		mcp.NewTool("extract_syllabus_text",
			mcp.WithDescription("Extract subjects and lab experiments from plain syllabus text."),
			mcp.WithString(argText,
				mcp.Required(),
				mcp.Description("Syllabus text"),
			),
			mcp.WithBoolean(argUseAI,
				mcp.Description("Ask the configured model when no heuristic recognises the text"),
			),
		),
		h.extractSyllabusText,
	)

	// simulation_links - practice links for one topic
	s.AddTool(
		mcp.NewTool("simulation_links",
			mcp.WithDescription("Suggest online compilers or virtual lab simulations for an experiment topic."),
			mcp.WithString(argTopic,
				mcp.Required(),
				mcp.Description("Experiment topic or suggested simulation name"),
			),
			mcp.WithString(argSubject,
				mcp.Description("Subject name, used to detect the programming language"),
			),
		),
		h.simulationLinks,
	)

	// enrich_topics - descriptions and links for hand-entered topics
	s.AddTool(
		mcp.NewTool("enrich_topics",
			mcp.WithDescription("Describe a list of lab topics and attach simulation links. "+
				"Without a configured model the topics are returned with links only."),
			mcp.WithArray(argTopics,
				mcp.Required(),
				mcp.Description("Topic strings"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithString(argSubject,
				mcp.Description("Subject the topics belong to"),
			),
		),
		h.enrichTopics,
	)

	// get_extraction_info - formats and configuration
	s.AddTool(
		mcp.NewTool("get_extraction_info",
			mcp.WithDescription("Return supported formats, strategy order and active configuration."),
		),
		h.extractionInfo,
	)
}

func (h *handlers) extractSyllabus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString(argURI)
	if err != nil || input == "" {
		return mcp.NewToolResultError(argURI + " is required"), nil
	}
	useAI := req.GetBool(argUseAI, h.aiDefault)

	res, err := h.orch.ExtractFrom(ctx, h.loader, input, useAI)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res.Empty() {
		return mcp.NewToolResultError(emptyMessage(useAI, h.orch.HasFallback())), nil
	}
	if req.GetBool(argWithLinks, false) {
		return jsonResult(syllabus.Flatten(res))
	}
	return jsonResult(res)
}

func (h *handlers) extractSyllabusText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString(argText)
	if err != nil || strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError(argText + " is required"), nil
	}
	return jsonResult(h.orch.ExtractText(ctx, text, req.GetBool(argUseAI, h.aiDefault)))
}

func (h *handlers) simulationLinks(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := req.RequireString(argTopic)
	if err != nil || topic == "" {
		return mcp.NewToolResultError(argTopic + " is required"), nil
	}
	return jsonResult(links.ForTopic(topic, req.GetString(argSubject, "")))
}

func (h *handlers) enrichTopics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topics := req.GetStringSlice(argTopics, nil)
	out, err := enrich.Topics(ctx, h.gen, topics, req.GetString(argSubject, ""))
	if errors.Is(err, enrich.ErrNoTopics) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func (h *handlers) extractionInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fmts := h.loader.SupportedFormats()
	info := fmt.Sprintf(`# Lab Syllabus Extraction Info

## Supported Formats
%s

## Strategies (tried in order)
%s

## Configuration
- Max file size: %d MB
- AI fallback: %s
- Topic enrichment: %s`,
		"- "+strings.Join(fmts, "\n- "),
		"- "+strings.Join(h.orch.Strategies(), "\n- "),
		h.loader.MaxFileSizeBytes()>>20,
		availability(h.orch.HasFallback()),
		availability(h.gen != nil),
	)
	return mcp.NewToolResultText(info), nil
}

func emptyMessage(useAI, haveFallback bool) string {
	msg := "no experiments found; the document may not contain recognisable lab content"
	switch {
	case !useAI && haveFallback:
		msg += " (retry with use_ai=true to ask the model)"
	case useAI && !haveFallback:
		msg += " (no AI provider is configured)"
	}
	return msg
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "not configured"
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
