package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskToneQuestion    TaskType = "tone_question"
	TaskToneSynthesis   TaskType = "tone_synthesis"
	TaskMessageQuestion TaskType = "message_question"
	TaskMessageRefine   TaskType = "message_refine"
	TaskAudience        TaskType = "audience"
)

// Provider names accepted by BRANDVOICE_LLM_PROVIDER.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider   string
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// Calls are attempted once; failures are absorbed by the caller's fallback.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderOllama,
		LogCalls:   true,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskToneQuestion:    {Temperature: 0.7, MaxTokens: 512, TimeoutMs: 20000},
			TaskToneSynthesis:   {Temperature: 0.4, MaxTokens: 1024, TimeoutMs: 30000},
			TaskMessageQuestion: {Temperature: 0.7, MaxTokens: 512, TimeoutMs: 20000},
			TaskMessageRefine:   {Temperature: 0.5, MaxTokens: 768, TimeoutMs: 30000},
			TaskAudience:        {Temperature: 0.6, MaxTokens: 2048, TimeoutMs: 45000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("BRANDVOICE_LLM_PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BRANDVOICE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BRANDVOICE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimSuffix(v, "/")
	} else if cfg.Provider == ProviderOpenAI {
		cfg.Endpoint = "https://api.openai.com/v1"
	}
	if v := os.Getenv("BRANDVOICE_LLM_MODEL"); v != "" {
		cfg.Model = v
	} else if cfg.Provider == ProviderOpenAI {
		cfg.Model = "gpt-4o-mini"
	}
	if v := os.Getenv("BRANDVOICE_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("BRANDVOICE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("BRANDVOICE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskToneQuestion, "BRANDVOICE_LLM_TONE_QUESTION_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskToneSynthesis, "BRANDVOICE_LLM_TONE_SYNTHESIS_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskMessageQuestion, "BRANDVOICE_LLM_MESSAGE_QUESTION_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskMessageRefine, "BRANDVOICE_LLM_MESSAGE_REFINE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAudience, "BRANDVOICE_LLM_AUDIENCE_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
