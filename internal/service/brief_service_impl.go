package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/repository"
	"github.com/google/uuid"
)

type briefService struct {
	briefs    repository.BriefRepo
	projects  repository.ProjectRepo
	brands    repository.BrandRepo
	audiences repository.AudienceRepo
	generator intelligence.AudienceService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewBriefService(
	briefs repository.BriefRepo,
	projects repository.ProjectRepo,
	brands repository.BrandRepo,
	audiences repository.AudienceRepo,
	generator intelligence.AudienceService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) BriefService {
	return &briefService{
		briefs:    briefs,
		projects:  projects,
		brands:    brands,
		audiences: audiences,
		generator: generator,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *briefService) Create(ctx context.Context, ownerID string, b *domain.Brief) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, err := ownedProject(ctx, s.projects, ownerID, b.ProjectID); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.briefs.Create(ctx, b)
}

func (s *briefService) Get(ctx context.Context, ownerID, id string) (*domain.Brief, error) {
	b, _, err := s.ownedBrief(ctx, ownerID, id)
	return b, err
}

func (s *briefService) ListByProject(ctx context.Context, ownerID, projectID string) ([]*domain.Brief, error) {
	if _, err := ownedProject(ctx, s.projects, ownerID, projectID); err != nil {
		return nil, err
	}
	return s.briefs.ListByProject(ctx, projectID)
}

func (s *briefService) Update(ctx context.Context, ownerID string, b *domain.Brief) error {
	existing, _, err := s.ownedBrief(ctx, ownerID, b.ID)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	b.ProjectID = existing.ProjectID
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	return s.briefs.Update(ctx, b)
}

func (s *briefService) GenerateAudiences(ctx context.Context, ownerID, briefID string) (result *AudienceResult, err error) {
	fields := map[string]any{"brief_id": briefID}
	defer observe(ctx, s.observer, "generate-audiences", time.Now(), &err, fields)

	brief, project, err := s.ownedBrief(ctx, ownerID, briefID)
	if err != nil {
		return nil, err
	}
	brand, err := s.brandContext(ctx, project)
	if err != nil {
		return nil, err
	}

	draft, err := s.generator.Generate(ctx, brand, brief)
	if err != nil {
		return nil, err
	}
	fields["source"] = draft.Source
	fields["segment_count"] = len(draft.Segments)

	now := time.Now().UTC()
	segs := make([]*domain.AudienceSegment, len(draft.Segments))
	for i := range draft.Segments {
		seg := draft.Segments[i]
		seg.ID = uuid.New().String()
		seg.CreatedAt = now
		segs[i] = &seg
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		// The brief may have been deleted with its project while the model ran.
		if _, err := repository.NewSQLiteBriefRepo(tx).GetByID(ctx, briefID); err != nil {
			return err
		}
		return repository.NewSQLiteAudienceRepo(tx).ReplaceForBrief(ctx, briefID, segs)
	})
	if err != nil {
		return nil, err
	}
	return &AudienceResult{Segments: segs, Source: draft.Source}, nil
}

func (s *briefService) ListAudiences(ctx context.Context, ownerID, briefID string) ([]*domain.AudienceSegment, error) {
	if _, _, err := s.ownedBrief(ctx, ownerID, briefID); err != nil {
		return nil, err
	}
	return s.audiences.ListByBrief(ctx, briefID)
}

func (s *briefService) ownedBrief(ctx context.Context, ownerID, id string) (*domain.Brief, *domain.Project, error) {
	b, err := s.briefs.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	p, err := ownedProject(ctx, s.projects, ownerID, b.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return b, p, nil
}

// brandContext resolves the project's brand, if any. A project without a
// brand generates with an empty brand context.
func (s *briefService) brandContext(ctx context.Context, p *domain.Project) (intelligence.BrandContext, error) {
	if p.BrandID == "" {
		return intelligence.BrandContext{}, nil
	}
	b, err := s.brands.GetByID(ctx, p.BrandID)
	if errors.Is(err, repository.ErrNotFound) {
		return intelligence.BrandContext{}, nil
	}
	if err != nil {
		return intelligence.BrandContext{}, err
	}
	return intelligence.BrandContextFrom(b), nil
}
