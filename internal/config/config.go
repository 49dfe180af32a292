// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/brandvoice/internal/llm"
)

// ErrMissingJWTSecret is returned when the HTTP server is started without a
// signing secret.
var ErrMissingJWTSecret = errors.New("BRANDVOICE_JWT_SECRET must be set to serve the API")

// Config holds all application configuration.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	PromptsFile   string // optional YAML merged over the embedded catalog
	LogLevel      slog.Level
	StrictSession bool
	LLM           llm.LLMConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	level, err := parseLevel(getEnv("BRANDVOICE_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("BRANDVOICE_PORT", "8080"),
		DBPath:        getEnv("BRANDVOICE_DB", "./data/brandvoice.db"),
		JWTSecret:     getEnv("BRANDVOICE_JWT_SECRET", ""),
		TokenTTL:      getEnvDuration("BRANDVOICE_TOKEN_TTL", 24*time.Hour),
		CORSOrigins:   splitList(getEnv("BRANDVOICE_CORS_ORIGINS", "*")),
		PromptsFile:   getEnv("BRANDVOICE_PROMPTS_FILE", ""),
		LogLevel:      level,
		StrictSession: getEnvBool("BRANDVOICE_STRICT_SESSION", false),
		LLM:           llm.LoadConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("BRANDVOICE_PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("BRANDVOICE_DB cannot be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("BRANDVOICE_TOKEN_TTL must be > 0")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("BRANDVOICE_CORS_ORIGINS cannot be empty")
	}
	switch c.LLM.Provider {
	case llm.ProviderOllama, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("BRANDVOICE_LLM_PROVIDER %q is not supported", c.LLM.Provider)
	}
	return nil
}

// ValidateServe adds the checks that only apply to the HTTP server.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.JWTSecret) < 16 {
		if c.JWTSecret == "" {
			return ErrMissingJWTSecret
		}
		return fmt.Errorf("BRANDVOICE_JWT_SECRET must be at least 16 bytes")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// getEnvDuration accepts Go durations ("36h") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
		return d
	}
	if secs := getEnvInt(key, -1); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("BRANDVOICE_LOG_LEVEL: %w", err)
	}
	return level, nil
}
