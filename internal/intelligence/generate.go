package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/prompt"
)

// noAnswersTranscript stands in for an empty transcript when a client forces
// synthesis without answering anything.
const noAnswersTranscript = "(no answers were provided)"

// Option configures the wizard services.
type Option func(*options)

type options struct {
	strictSession bool
}

// WithStrictSession rejects mid-conversation requests whose step does not
// match the number of answers supplied.
func WithStrictSession(strict bool) Option {
	return func(o *options) { o.strictSession = strict }
}

// generator renders a catalog template, calls the model, and reports
// fallbacks. Shared by every wizard service.
type generator struct {
	client   llm.LLMClient
	catalog  *prompt.Catalog
	observer FallbackObserver
	opts     options
}

func newGenerator(client llm.LLMClient, catalog *prompt.Catalog, observer FallbackObserver, opts []Option) generator {
	if observer == nil {
		observer = NoopFallbackObserver{}
	}
	g := generator{client: client, catalog: catalog, observer: observer}
	for _, opt := range opts {
		opt(&g.opts)
	}
	return g
}

func (g generator) complete(ctx context.Context, task llm.TaskType, name string, v prompt.Values) (string, error) {
	rendered, err := g.catalog.Render(ctx, name, v)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: rendered.System,
		UserPrompt:   rendered.User,
	})
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", task, err)
	}
	return resp.Text, nil
}

func (g generator) fallback(flow Flow, stage Stage, reason error) {
	g.observer.OnFallback(FallbackEvent{Flow: flow, Stage: stage, Reason: reason})
}

// checkSession reports a step/answer mismatch and, in strict mode, rejects it.
func (g generator) checkSession(flow Flow, s *Session) error {
	if !s.Mismatch() {
		return nil
	}
	answered := s.Progress()
	g.observer.OnSessionMismatch(SessionMismatchEvent{Flow: flow, Step: s.Step, Answered: answered})
	if g.opts.strictSession {
		return domain.Invalid(flow.stepField(), "step %d does not match %d answered questions", s.Step, answered)
	}
	return nil
}

// generate runs one model call and decodes T, substituting fallback on any
// render, provider, parse, or validation failure.
func generate[T any](ctx context.Context, g generator, flow Flow, stage Stage, task llm.TaskType,
	name string, v prompt.Values, fallback T, validator llm.SchemaValidator[T]) llm.Decoded[T] {
	var d llm.Decoded[T]
	text, err := g.complete(ctx, task, name, v)
	if err != nil {
		d = llm.Decoded[T]{Value: fallback, Fallback: true, Reason: err}
	} else {
		d = llm.DecodeOr(text, fallback, validator)
	}
	if d.Fallback {
		g.fallback(flow, stage, d.Reason)
	}
	return d
}

func sourceOf[T any](d llm.Decoded[T]) string {
	if d.Fallback {
		return SourceFallback
	}
	return SourceLLM
}
