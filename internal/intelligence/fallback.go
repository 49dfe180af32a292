package intelligence

import (
	"context"
	"log/slog"
)

// Flow names a wizard flow for logs and metrics.
type Flow string

const (
	FlowTone     Flow = "tone"
	FlowMessage  Flow = "message"
	FlowAudience Flow = "audience"
)

// stepField is the request field carrying the step counter for the flow.
func (f Flow) stepField() string {
	if f == FlowMessage {
		return "questionIndex"
	}
	return "currentStep"
}

// Stage names the generation step that degraded.
type Stage string

const (
	StageQuestion   Stage = "question"
	StageDedup      Stage = "dedup"
	StageSynthesis  Stage = "synthesis"
	StageArchetypes Stage = "archetypes"
	StageRefine     Stage = "refine"
	StageGenerate   Stage = "generate"
)

// Result sources reported to clients.
const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
	SourceCanned   = "canned"
)

// FallbackEvent records canned content being served in place of model output.
type FallbackEvent struct {
	Flow   Flow
	Stage  Stage
	Reason error
}

// SessionMismatchEvent records a client-asserted step that disagrees with the
// number of answers it sent.
type SessionMismatchEvent struct {
	Flow     Flow
	Step     int
	Answered int
}

// FallbackObserver makes degraded generations visible server-side. The
// caller still gets a successful response.
type FallbackObserver interface {
	OnFallback(e FallbackEvent)
	OnSessionMismatch(e SessionMismatchEvent)
}

// LogFallbackObserver writes fallback and mismatch events to slog at WARN.
type LogFallbackObserver struct {
	logger *slog.Logger
}

func NewLogFallbackObserver(logger *slog.Logger) *LogFallbackObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogFallbackObserver{logger: logger}
}

func (o *LogFallbackObserver) OnFallback(e FallbackEvent) {
	reason := "unknown"
	if e.Reason != nil {
		reason = e.Reason.Error()
	}
	o.logger.LogAttrs(context.Background(), slog.LevelWarn, "generation_fallback",
		slog.String("flow", string(e.Flow)),
		slog.String("stage", string(e.Stage)),
		slog.String("reason", reason),
	)
}

func (o *LogFallbackObserver) OnSessionMismatch(e SessionMismatchEvent) {
	o.logger.LogAttrs(context.Background(), slog.LevelWarn, "session_mismatch",
		slog.String("flow", string(e.Flow)),
		slog.Int("step", e.Step),
		slog.Int("answered", e.Answered),
	)
}

// NoopFallbackObserver discards events.
type NoopFallbackObserver struct{}

func (NoopFallbackObserver) OnFallback(FallbackEvent)               {}
func (NoopFallbackObserver) OnSessionMismatch(SessionMismatchEvent) {}

// MultiFallbackObserver fans events out to several observers.
type MultiFallbackObserver []FallbackObserver

func (m MultiFallbackObserver) OnFallback(e FallbackEvent) {
	for _, o := range m {
		if o != nil {
			o.OnFallback(e)
		}
	}
}

func (m MultiFallbackObserver) OnSessionMismatch(e SessionMismatchEvent) {
	for _, o := range m {
		if o != nil {
			o.OnSessionMismatch(e)
		}
	}
}
