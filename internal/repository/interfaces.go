package repository

import (
	"context"

	"github.com/alexanderramin/brandvoice/internal/domain"
)

type BrandRepo interface {
	Create(ctx context.Context, b *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Brand, error)
	Update(ctx context.Context, b *domain.Brand) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type BriefRepo interface {
	Create(ctx context.Context, b *domain.Brief) error
	GetByID(ctx context.Context, id string) (*domain.Brief, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Brief, error)
	Update(ctx context.Context, b *domain.Brief) error
}

type AudienceRepo interface {
	// ReplaceForBrief deletes the brief's audiences and inserts segs in order.
	// Run it inside a UnitOfWork so a failed insert keeps the old set.
	ReplaceForBrief(ctx context.Context, briefID string, segs []*domain.AudienceSegment) error
	ListByBrief(ctx context.Context, briefID string) ([]*domain.AudienceSegment, error)
}

type ToneProfileRepo interface {
	Get(ctx context.Context, brandID string) (*domain.ToneProfile, error)
	Upsert(ctx context.Context, p *domain.ToneProfile) error
}

type OnboardingRepo interface {
	Get(ctx context.Context, userID string) (*domain.Onboarding, error)
	Upsert(ctx context.Context, o *domain.Onboarding) error
	// SetCoreMessage overwrites the stored core message, creating the
	// record when the user has none.
	SetCoreMessage(ctx context.Context, userID, message string) error
}

type PromptOverrideRepo interface {
	Get(ctx context.Context, name string) (*domain.PromptOverride, error)
	List(ctx context.Context) ([]*domain.PromptOverride, error)
	Upsert(ctx context.Context, o *domain.PromptOverride) error
	Delete(ctx context.Context, name string) error
}
