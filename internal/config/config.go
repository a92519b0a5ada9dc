// Package config centralises all environment / flag configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business‑logic
// layers receive an already‑built Config instance via dependency‑injection.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Completion providers understood by cmd/server.
const (
	ProviderGroq   = "groq"
	ProviderVertex = "vertex"
	ProviderStatic = "static"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port     string
	APIToken string // bearer token for /api/v1; empty disables auth

	// Logging
	LogLevel  string
	LogFormat string

	// Data stores (optional; empty URI disables history)
	MongoURI string
	DBName   string

	// Completion provider
	CompletionProvider string
	CompletionAPIKey   string
	CompletionBaseURL  string
	CompletionModel    string
	CompletionTimeout  time.Duration
	PromptTemplate     string
	DropEmptyTitles    bool

	// Vertex AI (only when CompletionProvider == "vertex")
	ProjectID string
	Location  string

	// Video enrichment
	EnableVideoEnrichment bool
	YouTubeAPIKey         string
	VideoQuerySuffix      string
	VideoTimeout          time.Duration
	VideoRPS              float64
	EnrichConcurrency     int

	// Session generations
	SessionTTL time.Duration

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load parses the environment (and an optional .env file) into Config.
// It exits on missing critical variables so mis‑configurations fail fast.
func Load() Config {
	// godotenv.Load() is a no‑op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// FromEnv builds a Config from the process environment without validating it.
func FromEnv() Config {
	provider := strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderGroq))
	defaultModel := "llama-3.3-70b-versatile"
	if provider == ProviderVertex {
		defaultModel = "gemini-2.0-flash-lite-001"
	}

	return Config{
		Port:                  getEnv("PORT", "8080"),
		APIToken:              os.Getenv("API_TOKEN"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		MongoURI:              os.Getenv("MONGODB_URI"),
		DBName:                getEnv("MONGODB_DB", "movie_motivator"),
		CompletionProvider:    provider,
		CompletionAPIKey:      os.Getenv("COMPLETION_API_KEY"),
		CompletionBaseURL:     getEnv("COMPLETION_BASE_URL", "https://api.groq.com/openai/v1"),
		CompletionModel:       getEnv("COMPLETION_MODEL", defaultModel),
		CompletionTimeout:     getDuration("COMPLETION_TIMEOUT_SEC", 20),
		PromptTemplate:        os.Getenv("PROMPT_TEMPLATE"),
		DropEmptyTitles:       getBool("DROP_EMPTY_TITLES", false),
		ProjectID:             os.Getenv("GCP_PROJECT_ID"),
		Location:              getEnv("GCP_LOCATION", "us-central1"),
		EnableVideoEnrichment: getBool("ENABLE_VIDEO_ENRICHMENT", false),
		YouTubeAPIKey:         os.Getenv("YOUTUBE_API_KEY"),
		VideoQuerySuffix:      getEnv("VIDEO_QUERY_SUFFIX", "edits"),
		VideoTimeout:          getDuration("VIDEO_TIMEOUT_SEC", 5),
		VideoRPS:              getFloat("VIDEO_RPS", 10),
		EnrichConcurrency:     getInt("ENRICH_CONCURRENCY", 0),
		SessionTTL:            getDuration("SESSION_TTL_SEC", 1800),
		ReadTimeout:           getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:          getDuration("WRITE_TIMEOUT_SEC", 30),
	}
}

// Validate reports combinations that cannot produce a working server.
func (c Config) Validate() error {
	var errs []error

	switch c.CompletionProvider {
	case ProviderGroq:
		if c.CompletionAPIKey == "" {
			errs = append(errs, errors.New("COMPLETION_API_KEY is required for the groq provider"))
		}
	case ProviderVertex:
		if c.ProjectID == "" {
			errs = append(errs, errors.New("GCP_PROJECT_ID is required for the vertex provider"))
		}
	case ProviderStatic:
	default:
		errs = append(errs, fmt.Errorf("unknown COMPLETION_PROVIDER %q", c.CompletionProvider))
	}

	if c.EnableVideoEnrichment && c.YouTubeAPIKey == "" {
		errs = append(errs, errors.New("YOUTUBE_API_KEY is required when ENABLE_VIDEO_ENRICHMENT is set"))
	}
	if c.PromptTemplate != "" && !strings.Contains(c.PromptTemplate, "{{seed}}") {
		errs = append(errs, errors.New("PROMPT_TEMPLATE must contain {{seed}}"))
	}
	if c.VideoRPS <= 0 {
		errs = append(errs, errors.New("VIDEO_RPS must be positive"))
	}

	return errors.Join(errs...)
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Warn().Str("key", key).Str("value", v).Int("default_sec", defaultSec).Msg("invalid duration; using default")
	}
	return time.Duration(defaultSec) * time.Second
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Int("default", defaultVal).Msg("invalid integer; using default")
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", v).Float64("default", defaultVal).Msg("invalid number; using default")
	}
	return defaultVal
}

// getBool accepts anything strconv.ParseBool does ("1", "true", "FALSE", ...).
func getBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", key).Str("value", v).Bool("default", defaultVal).Msg("invalid boolean; using default")
	}
	return defaultVal
}
