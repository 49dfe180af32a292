package service

import (
	"context"
	"time"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/prompt"
)

// Every owner-scoped method returns repository.ErrNotFound for records that
// exist but belong to someone else.

type BrandService interface {
	Create(ctx context.Context, b *domain.Brand) error
	Get(ctx context.Context, ownerID, id string) (*domain.Brand, error)
	List(ctx context.Context, ownerID string) ([]*domain.Brand, error)
	Update(ctx context.Context, b *domain.Brand) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, ownerID, id string) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// AudienceResult is a freshly generated and stored audience set.
type AudienceResult struct {
	Segments []*domain.AudienceSegment
	Source   string
}

type BriefService interface {
	Create(ctx context.Context, ownerID string, b *domain.Brief) error
	Get(ctx context.Context, ownerID, id string) (*domain.Brief, error)
	ListByProject(ctx context.Context, ownerID, projectID string) ([]*domain.Brief, error)
	Update(ctx context.Context, ownerID string, b *domain.Brief) error

	// GenerateAudiences replaces the brief's audiences with a new generated
	// set. Generation runs before the transaction opens.
	GenerateAudiences(ctx context.Context, ownerID, briefID string) (*AudienceResult, error)
	ListAudiences(ctx context.Context, ownerID, briefID string) ([]*domain.AudienceSegment, error)
}

// ToneChat is one tone-of-voice wizard request. BrandID is optional: when
// set, the stored brand fills in missing context and a completed synthesis
// is saved as its tone profile.
type ToneChat struct {
	BrandID string
	Brand   intelligence.BrandContext
	Session *intelligence.Session
}

type ToneProfileService interface {
	Chat(ctx context.Context, ownerID string, req ToneChat) (*intelligence.ToneStep, error)
	Get(ctx context.Context, ownerID, brandID string) (*domain.ToneProfile, error)
}

// CoreMessageService wraps the core-message wizard and stores every new
// message on the user's onboarding record.
type CoreMessageService interface {
	ContextualQuestion(ctx context.Context, userID string, mc intelligence.MessageContext, session *intelligence.Session, userInput string) (*intelligence.MessageStep, error)
	UpdateWithAnswers(ctx context.Context, userID string, mc intelligence.MessageContext, turns []intelligence.Turn) (*intelligence.MessageSynthesis, error)
	GenerateWithPrompt(ctx context.Context, userID string, mc intelligence.MessageContext, userPrompt string, isAudienceEdit bool) (*intelligence.MessageRefinement, error)
	Get(ctx context.Context, userID string) (*domain.Onboarding, error)
}

// PromptView is a catalog template with its effective user text.
type PromptView struct {
	prompt.Template
	Overridden bool
	UpdatedBy  string
	UpdatedAt  time.Time
}

type PromptService interface {
	List(ctx context.Context) ([]PromptView, error)
	Get(ctx context.Context, name string) (*PromptView, error)
	Set(ctx context.Context, name, text, updatedBy string) (*PromptView, error)
	Reset(ctx context.Context, name string) error
}
