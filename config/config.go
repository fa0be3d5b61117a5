package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v3"
)

const (
	// EnvConfigFile names an optional YAML file read before the environment.
	EnvConfigFile = "LABSYLLABUS_CONFIG"

	// EnvMaxFileBytes is the environment variable name for the file size limit.
	EnvMaxFileBytes = "LABSYLLABUS_MAX_FILE_BYTES"

	EnvWorkers    = "LABSYLLABUS_WORKERS"
	EnvLogLevel   = "LABSYLLABUS_LOG_LEVEL"
	EnvStrategies = "LABSYLLABUS_STRATEGIES"

	EnvAIFallback    = "LABSYLLABUS_AI_FALLBACK"
	EnvAIProvider    = "LABSYLLABUS_AI_PROVIDER"
	EnvAIModel       = "LABSYLLABUS_AI_MODEL"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"

	// DefaultMaxFileBytes is the default maximum accepted file size (50 MiB).
	DefaultMaxFileBytes int64 = 50 << 20

	DefaultWorkers  = 4
	DefaultLogLevel = "info"
	DefaultProvider = "gemini"
	DefaultModel    = "gemini-2.0-flash"
)

// DefaultStrategies is the order extraction strategies are tried in.
var DefaultStrategies = []string{"structural", "textual"}

// Config holds runtime configuration sourced from an optional YAML file and
// environment variables, in that order.
type Config struct {
	MaxFileSizeBytes int64    `yaml:"maxFileBytes" validate:"gt=0"`
	Workers          int      `yaml:"workers" validate:"gte=1,lte=64"`
	LogLevel         string   `yaml:"logLevel" validate:"oneof=debug info warn error"`
	Strategies       []string `yaml:"strategies" validate:"min=1,dive,oneof=textual structural"`
	AI               AIConfig `yaml:"ai"`
}

// AIConfig configures the opt-in generative fallback.
type AIConfig struct {
	// Fallback allows the orchestrator to call the model when no heuristic
	// strategy recognised anything.
	Fallback      bool   `yaml:"fallback"`
	Provider      string `yaml:"provider" validate:"oneof=gemini openai"`
	Model         string `yaml:"model" validate:"required"`
	GeminiAPIKey  string `yaml:"geminiKey"`
	OpenAIAPIKey  string `yaml:"openaiKey"`
	OpenAIBaseURL string `yaml:"openaiBase" validate:"omitempty,url"`
}

// MaxFileSizeMB returns the configured limit in whole megabytes.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSizeBytes >> 20
}

// Configured reports whether the selected provider has credentials.
func (a AIConfig) Configured() bool {
	switch a.Provider {
	case "gemini":
		return a.GeminiAPIKey != ""
	case "openai":
		return a.OpenAIAPIKey != "" || a.OpenAIBaseURL != ""
	}
	return false
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxFileSizeBytes: DefaultMaxFileBytes,
		Workers:          DefaultWorkers,
		LogLevel:         DefaultLogLevel,
		Strategies:       append([]string(nil), DefaultStrategies...),
		AI: AIConfig{
			Provider: DefaultProvider,
			Model:    DefaultModel,
		},
	}
}

// Load reads Config from the optional YAML file and environment variables.
// Each missing or invalid value falls back to its default on its own and is
// logged; the other settings are kept. A config file that cannot be read or
// parsed is logged and skipped.
func Load() *Config {
	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config file ignored")
		} else {
			cfg = fileCfg
		}
	}
	applyEnv(cfg)
	cfg.dropInvalid()
	return cfg
}

// LoadFile reads a YAML config file on top of the defaults and rejects it
// when any value is invalid.
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// dropInvalid resets every field that fails validation to its default.
func (c *Config) dropInvalid() {
	var verrs validator.ValidationErrors
	if !errors.As(c.Validate(), &verrs) {
		return
	}
	def := Default()
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.StructNamespace(), "Config.")
		switch {
		case field == "MaxFileSizeBytes":
			c.MaxFileSizeBytes = def.MaxFileSizeBytes
		case field == "Workers":
			c.Workers = def.Workers
		case field == "LogLevel":
			c.LogLevel = def.LogLevel
		case strings.HasPrefix(field, "Strategies"):
			c.Strategies = def.Strategies
		case field == "AI.Provider":
			c.AI.Provider = def.AI.Provider
		case field == "AI.Model":
			c.AI.Model = def.AI.Model
		case field == "AI.OpenAIBaseURL":
			c.AI.OpenAIBaseURL = def.AI.OpenAIBaseURL
		}
		log.Warn().
			Str("field", field).
			Str("rule", fe.Tag()).
			Interface("value", fe.Value()).
			Msg("invalid config value ignored")
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvMaxFileBytes); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSizeBytes = n
		}
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 64 {
			cfg.Workers = n
		}
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))); v != "" {
		switch v {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = v
		}
	}
	if v := os.Getenv(EnvStrategies); v != "" {
		if names := parseStrategies(v); len(names) > 0 {
			cfg.Strategies = names
		}
	}
	if v := os.Getenv(EnvAIFallback); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AI.Fallback = b
		}
	}
	if v := strings.ToLower(os.Getenv(EnvAIProvider)); v == "gemini" || v == "openai" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv(EnvAIModel); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		cfg.AI.GeminiAPIKey = v
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		cfg.AI.OpenAIAPIKey = v
	}
	if v := os.Getenv(EnvOpenAIBaseURL); v != "" {
		cfg.AI.OpenAIBaseURL = v
	}
}

// parseStrategies splits a comma list, dropping unknown and duplicate names.
func parseStrategies(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if (name != "textual" && name != "structural") || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
