package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/brandvoice/internal/contract"
)

func (h *Handler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.Prompts.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]contract.PromptResponse, 0, len(views))
	for _, v := range views {
		out = append(out, contract.NewPromptResponse(v))
	}
	Success(w, http.StatusOK, "", out)
}

func (h *Handler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Prompts.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "", contract.NewPromptResponse(*v))
}

func (h *Handler) SetPrompt(w http.ResponseWriter, r *http.Request) {
	var req contract.PromptUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.svc.Prompts.Set(r.Context(), chi.URLParam(r, "name"), req.Text, userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "prompt updated", contract.NewPromptResponse(*v))
}

func (h *Handler) ResetPrompt(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Prompts.Reset(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "prompt reset", nil)
}
