package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
)

// BrandService implements business logic for car Brands.
type BrandService struct {
	brands repo.BrandRepo
}

// NewBrandService constructs a BrandService backed by the provided BrandRepo.
func NewBrandService(brands repo.BrandRepo) *BrandService {
	return &BrandService{brands: brands}
}

// Create persists a brand. Names are unique.
func (s *BrandService) Create(ctx context.Context, name string) (domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Brand{}, domain.ValidationError("name is required")
	}
	b, err := s.brands.Create(ctx, name)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("service.BrandService.Create: %w", err)
	}
	return b, nil
}

// List returns every brand. Always returns a non-nil slice.
func (s *BrandService) List(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.BrandService.List: %w", err)
	}
	if brands == nil {
		return []domain.Brand{}, nil
	}
	return brands, nil
}

// Delete removes a brand that no car uses.
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.brands.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.BrandService.Delete: %w", namedNotFound(err, "brand not found"))
	}
	return nil
}
