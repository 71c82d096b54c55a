package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Common errors
var (
	ErrMissingNyneCredentials = errors.New("NYNE_API_KEY and NYNE_API_SECRET are required for live enrichment")
	ErrMissingOpenAIKey       = errors.New("OPENAI_API_KEY is required for LLM enrichment and web search")
)

// Config holds all runtime configuration for the backend.
type Config struct {
	// Server
	Port string `yaml:"port"`

	// Nyne enrichment provider
	NyneAPIKey    string `yaml:"nyne_api_key"`
	NyneAPISecret string `yaml:"nyne_api_secret"`
	NyneBaseURL   string `yaml:"nyne_base_url"`

	// OpenAI (LLM insights + civic web search)
	OpenAIKey   string `yaml:"openai_key"`
	OpenAIModel string `yaml:"openai_model"`

	// Legistar legislative API
	LegistarBaseURL string `yaml:"legistar_base_url"`

	// Polling for queued enrichment requests
	PollInterval time.Duration `yaml:"poll_interval"`
	PollTimeout  time.Duration `yaml:"poll_timeout"`

	// Matching
	DashboardPageSize int    `yaml:"dashboard_page_size"`
	FallbackCity      string `yaml:"fallback_city"`

	// Event retention
	EventRetentionDays int `yaml:"event_retention_days"`

	// Admin token bcrypt hash for the admin endpoints
	AdminTokenHash string `yaml:"admin_token_hash"`
}

// Defaults
const (
	DefaultNyneBaseURL     = "https://api.nyne.ai"
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultLegistarBaseURL = "https://webapi.legistar.com/v1/sfgov"
	DefaultPollInterval    = 4 * time.Second
	DefaultPollTimeout     = 180 * time.Second
	DefaultPageSize        = 20
	DefaultFallbackCity    = "San Francisco"
	DefaultRetentionDays   = 90
)

// LoadFromEnv loads configuration from environment variables, falling
// back to defaults. If FULCRUM_CONFIG points at a YAML file, values
// from the file are applied first and environment variables override
// them.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Port:               "5050",
		NyneBaseURL:        DefaultNyneBaseURL,
		OpenAIModel:        DefaultOpenAIModel,
		LegistarBaseURL:    DefaultLegistarBaseURL,
		PollInterval:       DefaultPollInterval,
		PollTimeout:        DefaultPollTimeout,
		DashboardPageSize:  DefaultPageSize,
		FallbackCity:       DefaultFallbackCity,
		EventRetentionDays: DefaultRetentionDays,
	}

	if path := os.Getenv("FULCRUM_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	setString(&cfg.Port, "PORT")
	setString(&cfg.NyneAPIKey, "NYNE_API_KEY")
	setString(&cfg.NyneAPISecret, "NYNE_API_SECRET")
	setString(&cfg.NyneBaseURL, "NYNE_BASE_URL")
	setString(&cfg.OpenAIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAIModel, "OPENAI_MODEL")
	setString(&cfg.LegistarBaseURL, "LEGISTAR_BASE_URL")
	setString(&cfg.FallbackCity, "FALLBACK_CITY")
	setString(&cfg.AdminTokenHash, "ADMIN_TOKEN_HASH")
	setInt(&cfg.DashboardPageSize, "DASHBOARD_PAGE_SIZE")
	setInt(&cfg.EventRetentionDays, "EVENT_RETENTION_DAYS")
	setDuration(&cfg.PollInterval, "NYNE_POLL_INTERVAL")
	setDuration(&cfg.PollTimeout, "NYNE_POLL_TIMEOUT")

	return cfg, nil
}

// Validate reports which optional provider credentials are missing.
// The server still runs without them at reduced functionality, so
// callers log the result per sentinel rather than aborting. Use
// errors.Is to test for a specific gap.
func (c Config) Validate() error {
	var errs []error
	if !c.HasNyne() {
		errs = append(errs, ErrMissingNyneCredentials)
	}
	if !c.HasOpenAI() {
		errs = append(errs, ErrMissingOpenAIKey)
	}
	return errors.Join(errs...)
}

// HasNyne reports whether live enrichment credentials are configured.
// Without them the enrichment layer falls back to mock profiles.
func (c Config) HasNyne() bool {
	return c.NyneAPIKey != "" && c.NyneAPISecret != ""
}

// HasOpenAI reports whether LLM calls are configured.
func (c Config) HasOpenAI() bool {
	return c.OpenAIKey != ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
		}
	}
}
