package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	brands   repository.BrandRepo
}

func NewProjectService(projects repository.ProjectRepo, brands repository.BrandRepo) ProjectService {
	return &projectService{projects: projects, brands: brands}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if err := requireOwner(p.OwnerID); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return err
	}
	if p.BrandID != "" {
		if _, err := ownedBrand(ctx, s.brands, p.OwnerID, p.BrandID); err != nil {
			return err
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) Get(ctx context.Context, ownerID, id string) (*domain.Project, error) {
	return ownedProject(ctx, s.projects, ownerID, id)
}

func (s *projectService) List(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID)
}

func (s *projectService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := ownedProject(ctx, s.projects, ownerID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}
