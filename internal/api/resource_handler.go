package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/brandvoice/internal/contract"
)

func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req contract.BrandRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b := req.Brand(userID(r), "")
	if err := h.svc.Brands.Create(r.Context(), b); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusCreated, "brand created", contract.NewBrandResponse(b))
}

func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.svc.Brands.List(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]contract.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, contract.NewBrandResponse(b))
	}
	Success(w, http.StatusOK, "", out)
}

func (h *Handler) GetBrand(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Brands.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "", contract.NewBrandResponse(b))
}

func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var req contract.BrandRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b := req.Brand(userID(r), chi.URLParam(r, "id"))
	if err := h.svc.Brands.Update(r.Context(), b); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "brand updated", contract.NewBrandResponse(b))
}

func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Brands.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "brand deleted", nil)
}

func (h *Handler) GetToneProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Tone.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "", contract.NewToneProfileResponse(p))
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req contract.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := req.Project(userID(r))
	if err := h.svc.Projects.Create(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusCreated, "project created", contract.NewProjectResponse(p))
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects.List(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]contract.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, contract.NewProjectResponse(p))
	}
	Success(w, http.StatusOK, "", out)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "", contract.NewProjectResponse(p))
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Projects.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "project deleted", nil)
}

func (h *Handler) CreateBrief(w http.ResponseWriter, r *http.Request) {
	var req contract.BriefRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b := req.Brief("", chi.URLParam(r, "id"))
	if err := h.svc.Briefs.Create(r.Context(), userID(r), b); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusCreated, "brief created", contract.NewBriefResponse(b))
}

func (h *Handler) ListBriefs(w http.ResponseWriter, r *http.Request) {
	briefs, err := h.svc.Briefs.ListByProject(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]contract.BriefResponse, 0, len(briefs))
	for _, b := range briefs {
		out = append(out, contract.NewBriefResponse(b))
	}
	Success(w, http.StatusOK, "", out)
}

func (h *Handler) GetBrief(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Briefs.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "", contract.NewBriefResponse(b))
}

func (h *Handler) UpdateBrief(w http.ResponseWriter, r *http.Request) {
	var req contract.BriefRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b := req.Brief(chi.URLParam(r, "id"), "")
	if err := h.svc.Briefs.Update(r.Context(), userID(r), b); err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "brief updated", contract.NewBriefResponse(b))
}

func (h *Handler) GenerateAudiences(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Briefs.GenerateAudiences(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "audiences generated", contract.NewAudienceListResponse(res.Segments, res.Source))
}

func (h *Handler) ListAudiences(w http.ResponseWriter, r *http.Request) {
	segs, err := h.svc.Briefs.ListAudiences(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "", contract.NewAudienceListResponse(segs, ""))
}

func (h *Handler) GetCoreMessage(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.CoreMessage.Get(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	Success(w, http.StatusOK, "", contract.NewCoreMessageResponse(o))
}

