package contract

import (
	"time"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/prompt"
	"github.com/alexanderramin/brandvoice/internal/service"
)

type BrandRequest struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	TargetMarket string `json:"targetMarket"`
}

func (r BrandRequest) Brand(ownerID, id string) *domain.Brand {
	return &domain.Brand{
		ID:           id,
		OwnerID:      ownerID,
		Name:         r.Name,
		Industry:     r.Industry,
		Description:  r.Description,
		Website:      r.Website,
		TargetMarket: r.TargetMarket,
	}
}

type BrandResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry"`
	Description  string    `json:"description"`
	Website      string    `json:"website"`
	TargetMarket string    `json:"targetMarket"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewBrandResponse(b *domain.Brand) BrandResponse {
	return BrandResponse{
		ID:           b.ID,
		Name:         b.Name,
		Industry:     b.Industry,
		Description:  b.Description,
		Website:      b.Website,
		TargetMarket: b.TargetMarket,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type ProjectRequest struct {
	Name    string `json:"name"`
	BrandID string `json:"brandId"`
}

func (r ProjectRequest) Project(ownerID string) *domain.Project {
	return &domain.Project{OwnerID: ownerID, Name: r.Name, BrandID: r.BrandID}
}

type ProjectResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BrandID   string    `json:"brandId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, Name: p.Name, BrandID: p.BrandID, CreatedAt: p.CreatedAt}
}

type BriefRequest struct {
	Purpose         string `json:"purpose"`
	MainMessage     string `json:"mainMessage"`
	SpecialFeatures string `json:"specialFeatures"`
	Beneficiaries   string `json:"beneficiaries"`
	Benefits        string `json:"benefits"`
	CallToAction    string `json:"callToAction"`
	Importance      string `json:"importance"`
	AdditionalInfo  string `json:"additionalInfo"`
}

func (r BriefRequest) Brief(id, projectID string) *domain.Brief {
	return &domain.Brief{
		ID:              id,
		ProjectID:       projectID,
		Purpose:         r.Purpose,
		MainMessage:     r.MainMessage,
		SpecialFeatures: r.SpecialFeatures,
		Beneficiaries:   r.Beneficiaries,
		Benefits:        r.Benefits,
		CallToAction:    r.CallToAction,
		Importance:      r.Importance,
		AdditionalInfo:  r.AdditionalInfo,
	}
}

type BriefResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	BriefRequest
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewBriefResponse(b *domain.Brief) BriefResponse {
	return BriefResponse{
		ID:        b.ID,
		ProjectID: b.ProjectID,
		BriefRequest: BriefRequest{
			Purpose:         b.Purpose,
			MainMessage:     b.MainMessage,
			SpecialFeatures: b.SpecialFeatures,
			Beneficiaries:   b.Beneficiaries,
			Benefits:        b.Benefits,
			CallToAction:    b.CallToAction,
			Importance:      b.Importance,
			AdditionalInfo:  b.AdditionalInfo,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type AudienceResponse struct {
	ID             string `json:"id"`
	Position       int    `json:"position"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Insights       string `json:"insights"`
	MessagingAngle string `json:"messagingAngle"`
	Tone           string `json:"tone"`
	SupportPoints  string `json:"supportPoints"`
	PersonaProfile string `json:"personaProfile"`
}

type AudienceListResponse struct {
	Source    string             `json:"source,omitempty"`
	Audiences []AudienceResponse `json:"audiences"`
}

func NewAudienceListResponse(segs []*domain.AudienceSegment, source string) AudienceListResponse {
	out := AudienceListResponse{Source: source, Audiences: make([]AudienceResponse, 0, len(segs))}
	for _, s := range segs {
		out.Audiences = append(out.Audiences, AudienceResponse{
			ID:             s.ID,
			Position:       s.Position,
			Title:          s.Title,
			Description:    s.Description,
			Insights:       s.Insights,
			MessagingAngle: s.MessagingAngle,
			Tone:           s.Tone,
			SupportPoints:  s.SupportPoints,
			PersonaProfile: s.PersonaProfile,
		})
	}
	return out
}

type ToneProfileResponse struct {
	BrandID     string             `json:"brandId"`
	Archetypes  []string           `json:"archetypes"`
	ToneOfVoice domain.ToneOfVoice `json:"toneOfVoice"`
	Source      string             `json:"source"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func NewToneProfileResponse(p *domain.ToneProfile) ToneProfileResponse {
	resp := ToneProfileResponse{
		BrandID:     p.BrandID,
		Archetypes:  make([]string, 0, len(p.Archetypes)),
		ToneOfVoice: p.Tone,
		Source:      p.Source,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, a := range p.Archetypes {
		resp.Archetypes = append(resp.Archetypes, string(a))
	}
	return resp
}

type CoreMessageResponse struct {
	CoreMessage  string    `json:"coreMessage"`
	BusinessName string    `json:"businessName,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewCoreMessageResponse(o *domain.Onboarding) CoreMessageResponse {
	return CoreMessageResponse{CoreMessage: o.CoreMessage, BusinessName: o.BusinessName, UpdatedAt: o.UpdatedAt}
}

type PromptUpdateRequest struct {
	Text string `json:"text"`
}

type PromptResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Fields      []prompt.Field `json:"fields"`
	System      string         `json:"system"`
	Text        string         `json:"text"`
	Overridden  bool           `json:"overridden"`
	UpdatedBy   string         `json:"updatedBy,omitempty"`
	UpdatedAt   *time.Time     `json:"updatedAt,omitempty"`
}

func NewPromptResponse(v service.PromptView) PromptResponse {
	resp := PromptResponse{
		Name:        v.Name,
		Description: v.Description,
		Fields:      v.Fields,
		System:      v.System,
		Text:        v.Text,
		Overridden:  v.Overridden,
		UpdatedBy:   v.UpdatedBy,
	}
	if resp.Fields == nil {
		resp.Fields = []prompt.Field{}
	}
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
