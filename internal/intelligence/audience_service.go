package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/prompt"
)

// AudienceSegmentCount is how many segments generation asks for.
const AudienceSegmentCount = 3

// AudienceDraft holds generated segments that are not yet persisted. IDs and
// brief IDs are assigned by the caller.
type AudienceDraft struct {
	Segments []domain.AudienceSegment
	Source   string
}

// AudienceService generates audience segments for a brief.
type AudienceService interface {
	Generate(ctx context.Context, brand BrandContext, brief *domain.Brief) (*AudienceDraft, error)
}

type audienceService struct {
	gen generator
}

// NewAudienceService creates an AudienceService backed by an LLM client.
func NewAudienceService(client llm.LLMClient, catalog *prompt.Catalog, observer FallbackObserver) AudienceService {
	return &audienceService{gen: newGenerator(client, catalog, observer, nil)}
}

type segmentPayload struct {
	Title          text `json:"title"`
	Description    text `json:"description"`
	Insights       text `json:"insights"`
	MessagingAngle text `json:"messagingAngle"`
	Tone           text `json:"tone"`
	SupportPoints  text `json:"supportPoints"`
	PersonaProfile text `json:"personaProfile"`
}

type audiencePayload struct {
	Segments []segmentPayload `json:"segments"`
}

func validateAudiences(p audiencePayload) error {
	for _, s := range p.Segments {
		if s.Title != "" {
			return nil
		}
	}
	return errMissing("segments")
}

func (s *audienceService) Generate(ctx context.Context, brand BrandContext, brief *domain.Brief) (*AudienceDraft, error) {
	if brief == nil {
		return nil, domain.Required("brief")
	}
	if err := brief.Validate(); err != nil {
		return nil, err
	}

	v := with(brand.values(),
		"purpose", brief.Purpose,
		"mainMessage", brief.MainMessage,
		"specialFeatures", brief.SpecialFeatures,
		"beneficiaries", brief.Beneficiaries,
		"benefits", brief.Benefits,
		"callToAction", brief.CallToAction,
		"importance", brief.Importance,
		"additionalInfo", brief.AdditionalInfo,
		"segmentCount", itoa(AudienceSegmentCount),
	)
	d := generate(ctx, s.gen, FlowAudience, StageGenerate, llm.TaskAudience,
		prompt.AudienceGeneration, v, audiencePayload{}, validateAudiences)

	if d.Fallback {
		return &AudienceDraft{Segments: []domain.AudienceSegment{FallbackAudience(brief)}, Source: SourceFallback}, nil
	}

	draft := &AudienceDraft{Source: SourceLLM}
	for _, p := range d.Value.Segments {
		if p.Title == "" {
			continue
		}
		draft.Segments = append(draft.Segments, domain.AudienceSegment{
			Title:          string(p.Title),
			Description:    string(p.Description),
			Insights:       string(p.Insights),
			MessagingAngle: string(p.MessagingAngle),
			Tone:           string(p.Tone),
			SupportPoints:  string(p.SupportPoints),
			PersonaProfile: string(p.PersonaProfile),
		})
		if len(draft.Segments) == AudienceSegmentCount {
			break
		}
	}
	return draft, nil
}

// FallbackAudience is the single generic segment served when generation
// fails, derived from who the brief says benefits.
func FallbackAudience(brief *domain.Brief) domain.AudienceSegment {
	who := strings.TrimRight(domain.CoalesceStr(brief.Beneficiaries, "people looking for what you offer"), ". ")
	return domain.AudienceSegment{
		Title:          "Core Customers",
		Description:    fmt.Sprintf("The primary audience for this campaign: %s.", who),
		Insights:       "They want a clear reason to act and proof that it works.",
		MessagingAngle: brief.MainMessage,
		Tone:           "Clear and friendly",
		SupportPoints:  domain.CoalesceStr(brief.Benefits, brief.SpecialFeatures),
		PersonaProfile: fmt.Sprintf("Someone among %s who is ready to consider a change.", who),
	}
}
