package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/brandvoice/internal/auth"
	"github.com/alexanderramin/brandvoice/internal/service"
)

// Services are the use cases the handlers call.
type Services struct {
	Brands      service.BrandService
	Projects    service.ProjectService
	Briefs      service.BriefService
	Tone        service.ToneProfileService
	CoreMessage service.CoreMessageService
	Prompts     service.PromptService
}

// Handler serves every authenticated route.
type Handler struct {
	svc    Services
	logger *slog.Logger
}

func NewHandler(svc Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes registers the API routes behind the auth middleware.
func (h *Handler) RegisterRoutes(r chi.Router, verifier Verifier) {
	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(verifier))

		r.Post("/brand/tone-of-voice-chat", h.ToneOfVoiceChat)
		r.Route("/marketing", func(r chi.Router) {
			r.Post("/contextual-question", h.ContextualQuestion)
			r.Post("/update-with-answers", h.UpdateWithAnswers)
			r.Post("/generate-with-prompt", h.GenerateWithPrompt)
		})

		r.Route("/brands", func(r chi.Router) {
			r.Post("/", h.CreateBrand)
			r.Get("/", h.ListBrands)
			r.Get("/{id}", h.GetBrand)
			r.Put("/{id}", h.UpdateBrand)
			r.Delete("/{id}", h.DeleteBrand)
			r.Get("/{id}/tone-of-voice", h.GetToneProfile)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Post("/", h.CreateProject)
			r.Get("/", h.ListProjects)
			r.Get("/{id}", h.GetProject)
			r.Delete("/{id}", h.DeleteProject)
			r.Post("/{id}/briefs", h.CreateBrief)
			r.Get("/{id}/briefs", h.ListBriefs)
		})
		r.Route("/briefs/{id}", func(r chi.Router) {
			r.Get("/", h.GetBrief)
			r.Put("/", h.UpdateBrief)
			r.Post("/audiences", h.GenerateAudiences)
			r.Get("/audiences", h.ListAudiences)
		})
		r.Get("/onboarding/core-message", h.GetCoreMessage)

		r.Route("/admin/prompts", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", h.ListPrompts)
			r.Get("/{name}", h.GetPrompt)
			r.Put("/{name}", h.SetPrompt)
			r.Delete("/{name}", h.ResetPrompt)
		})
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.logger, err)
}

func userID(r *http.Request) string {
	return auth.UserIDFromContext(r.Context())
}
