package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/brandvoice/internal/domain"
	"github.com/alexanderramin/brandvoice/internal/repository"
	"github.com/google/uuid"
)

type brandService struct {
	brands repository.BrandRepo
}

func NewBrandService(brands repository.BrandRepo) BrandService {
	return &brandService{brands: brands}
}

func (s *brandService) Create(ctx context.Context, b *domain.Brand) error {
	if err := requireOwner(b.OwnerID); err != nil {
		return err
	}
	b.Name = strings.TrimSpace(b.Name)
	if err := b.Validate(); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.brands.Create(ctx, b)
}

func (s *brandService) Get(ctx context.Context, ownerID, id string) (*domain.Brand, error) {
	return ownedBrand(ctx, s.brands, ownerID, id)
}

func (s *brandService) List(ctx context.Context, ownerID string) ([]*domain.Brand, error) {
	return s.brands.ListByOwner(ctx, ownerID)
}

// Update overwrites the editable fields of an owned brand.
func (s *brandService) Update(ctx context.Context, b *domain.Brand) error {
	existing, err := ownedBrand(ctx, s.brands, b.OwnerID, b.ID)
	if err != nil {
		return err
	}
	b.Name = strings.TrimSpace(b.Name)
	if err := b.Validate(); err != nil {
		return err
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()
	return s.brands.Update(ctx, b)
}

func (s *brandService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := ownedBrand(ctx, s.brands, ownerID, id); err != nil {
		return err
	}
	return s.brands.Delete(ctx, id)
}
