package llm

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.OnCallComplete(LLMCallEvent{Task: TaskToneQuestion, Model: "llama3.2", LatencyMs: 12, Success: false, ErrorCode: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=llm_call")
	assert.Contains(t, out, "task=tone_question")
	assert.Contains(t, out, "status=err:TIMEOUT")
}

func TestMultiObserver_FansOut(t *testing.T) {
	var calls int
	count := &captureObserver{fn: func(LLMCallEvent) { calls++ }}

	MultiObserver{count, nil, NoopObserver{}, count}.OnCallComplete(LLMCallEvent{Success: true})

	assert.Equal(t, 2, calls)
}
