package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_SingleAttempt(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, ProviderOllama, cfg.Provider)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("BRANDVOICE_LLM_TIMEOUT_MS", "9000")
	t.Setenv("BRANDVOICE_LLM_TONE_QUESTION_TIMEOUT_MS", "15000")
	t.Setenv("BRANDVOICE_LLM_AUDIENCE_TIMEOUT_MS", "7000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 15000, cfg.TaskTimeout(TaskToneQuestion))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskAudience))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskToneSynthesis))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("BRANDVOICE_LLM_TONE_QUESTION_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 20000, cfg.TaskTimeout(TaskToneQuestion))
}

func TestLoadConfig_OpenAIDefaults(t *testing.T) {
	t.Setenv("BRANDVOICE_LLM_PROVIDER", "OpenAI")
	t.Setenv("BRANDVOICE_LLM_ENDPOINT", "")
	t.Setenv("BRANDVOICE_LLM_MODEL", "")
	t.Setenv("BRANDVOICE_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := LoadConfig()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestTaskTimeout_UnknownTaskUsesGlobal(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskType("unknown")))
}
