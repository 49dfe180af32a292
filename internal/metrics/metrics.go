// Package metrics exposes prometheus collectors for LLM calls, generation
// fallbacks and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/llm"
)

// Metrics implements llm.Observer and intelligence.FallbackObserver.
type Metrics struct {
	llmCalls        *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
	fallbacks       *prometheus.CounterVec
	sessionMismatch *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

var (
	_ llm.Observer                  = (*Metrics)(nil)
	_ intelligence.FallbackObserver = (*Metrics)(nil)
)

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brandvoice_llm_calls_total",
			Help: "Completion provider calls by task and outcome.",
		}, []string{"task", "status"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brandvoice_llm_latency_seconds",
			Help:    "Completion provider call latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"task"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brandvoice_generation_fallbacks_total",
			Help: "Canned content served in place of model output.",
		}, []string{"flow", "stage"}),
		sessionMismatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brandvoice_session_mismatch_total",
			Help: "Requests whose asserted step disagreed with the transcript length.",
		}, []string{"flow"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "brandvoice_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(m.llmCalls, m.llmLatency, m.fallbacks, m.sessionMismatch, m.httpRequests)
	return m
}

func (m *Metrics) OnCallComplete(e llm.LLMCallEvent) {
	status := "ok"
	if !e.Success {
		status = e.ErrorCode
		if status == "" {
			status = "error"
		}
	}
	m.llmCalls.WithLabelValues(string(e.Task), status).Inc()
	m.llmLatency.WithLabelValues(string(e.Task)).Observe(float64(e.LatencyMs) / 1000)
}

func (m *Metrics) OnFallback(e intelligence.FallbackEvent) {
	m.fallbacks.WithLabelValues(string(e.Flow), string(e.Stage)).Inc()
}

func (m *Metrics) OnSessionMismatch(e intelligence.SessionMismatchEvent) {
	m.sessionMismatch.WithLabelValues(string(e.Flow)).Inc()
}

// Middleware counts requests by chi route pattern so path IDs do not
// explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}
