package api

import (
	"net/http"

	"github.com/alexanderramin/brandvoice/internal/contract"
	"github.com/alexanderramin/brandvoice/internal/service"
)

// Generative failures come back as 200 with fallback content; only
// validation and persistence errors reach h.fail.

func (h *Handler) ToneOfVoiceChat(w http.ResponseWriter, r *http.Request) {
	var req contract.ToneChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := req.Session()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	step, err := h.svc.Tone.Chat(r.Context(), userID(r), service.ToneChat{
		BrandID: req.BrandID,
		Brand:   req.BrandData.Context(),
		Session: session,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "next question"
	if step.IsComplete {
		msg = "tone of voice generated"
	}
	Success(w, http.StatusOK, msg, contract.NewToneChatResponse(step))
}

func (h *Handler) ContextualQuestion(w http.ResponseWriter, r *http.Request) {
	var req contract.ContextualQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := req.Session()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	step, err := h.svc.CoreMessage.ContextualQuestion(r.Context(), userID(r),
		req.FormData.Context(req.CurrentMessage), session, req.UserInput)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := "next question"
	switch {
	case step.Greeting:
		msg = "greeting"
	case step.Completed:
		msg = "core message generated"
	}
	Success(w, http.StatusOK, msg, contract.NewContextualQuestionResponse(step))
}

func (h *Handler) UpdateWithAnswers(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateWithAnswersRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	synth, err := h.svc.CoreMessage.UpdateWithAnswers(r.Context(), userID(r),
		req.FormData.Context(req.CurrentMessage), req.UserAnswers.Turns())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "core message updated", contract.NewCoreMessageResult(synth))
}

func (h *Handler) GenerateWithPrompt(w http.ResponseWriter, r *http.Request) {
	var req contract.GenerateWithPromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ref, err := h.svc.CoreMessage.GenerateWithPrompt(r.Context(), userID(r),
		req.FormData.Context(req.CurrentMessage), req.UserPrompt, req.IsAudienceEdit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "message refined", contract.NewGenerateWithPromptResponse(ref))
}
