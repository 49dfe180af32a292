package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/repository"
)

func ownedBrand(ctx context.Context, brands repository.BrandRepo, ownerID, id string) (*domain.Brand, error) {
	b, err := brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, fmt.Errorf("brand %s: %w", id, repository.ErrNotFound)
	}
	return b, nil
}

func ownedProject(ctx context.Context, projects repository.ProjectRepo, ownerID, id string) (*domain.Project, error) {
	p, err := projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
	}
	return p, nil
}

func requireOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return domain.Required("ownerId")
	}
	return nil
}
