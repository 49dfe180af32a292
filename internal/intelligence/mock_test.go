package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/prompt"
	"github.com/stretchr/testify/require"
)

// mockLLMClient replays scripted responses in order; the last one repeats.
type mockLLMClient struct {
	responses []string
	err       error
	calls     []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return nil, errors.New("no scripted response")
	}
	text := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return &llm.GenerateResponse{Text: text, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func (m *mockLLMClient) tasks() []llm.TaskType {
	out := make([]llm.TaskType, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Task
	}
	return out
}

type recordingObserver struct {
	fallbacks  []FallbackEvent
	mismatches []SessionMismatchEvent
}

func (r *recordingObserver) OnFallback(e FallbackEvent)               { r.fallbacks = append(r.fallbacks, e) }
func (r *recordingObserver) OnSessionMismatch(e SessionMismatchEvent) { r.mismatches = append(r.mismatches, e) }

func testCatalog(t *testing.T) *prompt.Catalog {
	t.Helper()
	c, err := prompt.DefaultCatalog()
	require.NoError(t, err)
	return c
}

var acme = BrandContext{Name: "Acme", Industry: "tech", Description: "B2B SaaS"}
