package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
)

var zipcodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// CityService implements business logic for Cities.
type CityService struct {
	cities repo.CityRepo
}

// NewCityService constructs a CityService backed by the provided CityRepo.
func NewCityService(cities repo.CityRepo) *CityService {
	return &CityService{cities: cities}
}

// Create validates and persists a city. A city with the same name and zip
// code already present is reported as a Conflict by the store.
func (s *CityService) Create(ctx context.Context, city domain.City) (domain.City, error) {
	city = normalizeCity(city)
	if err := validateCity(city); err != nil {
		return domain.City{}, err
	}
	result, err := s.cities.Create(ctx, city)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single city.
func (s *CityService) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	result, err := s.cities.GetByID(ctx, id)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.GetByID: %w", namedNotFound(err, "city not found"))
	}
	return result, nil
}

// List returns every city ordered by name. Always returns a non-nil slice.
func (s *CityService) List(ctx context.Context) ([]domain.City, error) {
	cities, err := s.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CityService.List: %w", err)
	}
	if cities == nil {
		return []domain.City{}, nil
	}
	return cities, nil
}

// Update replaces a city's name and zip code.
func (s *CityService) Update(ctx context.Context, city domain.City) (domain.City, error) {
	city = normalizeCity(city)
	if err := validateCity(city); err != nil {
		return domain.City{}, err
	}
	result, err := s.cities.Update(ctx, city)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.Update: %w", namedNotFound(err, "city not found"))
	}
	return result, nil
}

// Delete removes a city. Returns a Conflict while students or trips use it.
func (s *CityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cities.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CityService.Delete: %w", namedNotFound(err, "city not found"))
	}
	return nil
}

func normalizeCity(c domain.City) domain.City {
	c.Name = strings.TrimSpace(c.Name)
	c.Zipcode = strings.TrimSpace(c.Zipcode)
	return c
}

func validateCity(c domain.City) error {
	if c.Name == "" {
		return domain.ValidationError("name is required")
	}
	if !zipcodePattern.MatchString(c.Zipcode) {
		return domain.ValidationError("zipcode must be exactly 5 digits")
	}
	return nil
}
