package testutil

import (
	"time"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/google/uuid"
)

// Brand options
type BrandOption func(*domain.Brand)

func WithIndustry(industry string) BrandOption {
	return func(b *domain.Brand) {
		b.Industry = industry
	}
}

func WithDescription(desc string) BrandOption {
	return func(b *domain.Brand) {
		b.Description = desc
	}
}

func WithWebsite(site string) BrandOption {
	return func(b *domain.Brand) {
		b.Website = site
	}
}

func NewTestBrand(ownerID, name string, opts ...BrandOption) *domain.Brand {
	now := time.Now().UTC()
	b := &domain.Brand{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Project options
type ProjectOption func(*domain.Project)

func WithBrandID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.BrandID = id
	}
}

func NewTestProject(ownerID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Brief options
type BriefOption func(*domain.Brief)

func WithBeneficiaries(who string) BriefOption {
	return func(b *domain.Brief) {
		b.Beneficiaries = who
	}
}

func NewTestBrief(projectID string, opts ...BriefOption) *domain.Brief {
	now := time.Now().UTC()
	b := &domain.Brief{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Purpose:     "Launch the spring collection",
		MainMessage: "Comfort that lasts all day",
		Benefits:    "Lightweight, breathable, durable",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func NewTestAudience(title string) *domain.AudienceSegment {
	return &domain.AudienceSegment{
		ID:             uuid.New().String(),
		Title:          title,
		Description:    title + " who want fewer, better things.",
		Insights:       "Research before buying",
		MessagingAngle: "Quality over quantity",
		Tone:           "Warm",
		CreatedAt:      time.Now().UTC(),
	}
}
