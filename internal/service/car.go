package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
)

// maxMatriculationLen is the width of the matriculation column.
const maxMatriculationLen = 9

// NewCar is the input of CarService.Create. The brand is referenced by name.
type NewCar struct {
	Model         string
	Matriculation string
	Seats         int
	BrandName     string
}

// CarService implements business logic for Cars.
type CarService struct {
	cars   repo.CarRepo
	brands repo.BrandRepo
}

// NewCarService constructs a CarService backed by the provided repos.
func NewCarService(cars repo.CarRepo, brands repo.BrandRepo) *CarService {
	return &CarService{cars: cars, brands: brands}
}

// Create validates the car, resolves its brand by name and persists it.
// Returns NotFound for an unknown brand and Conflict for a matriculation
// already in use.
func (s *CarService) Create(ctx context.Context, in NewCar) (domain.Car, error) {
	in.Model = strings.TrimSpace(in.Model)
	in.Matriculation = strings.ToUpper(strings.TrimSpace(in.Matriculation))
	in.BrandName = strings.TrimSpace(in.BrandName)
	if err := validateCar(in); err != nil {
		return domain.Car{}, err
	}

	brand, err := s.brands.GetByName(ctx, in.BrandName)
	if err != nil {
		return domain.Car{}, fmt.Errorf("service.CarService.Create: %w", namedNotFound(err, "brand not found"))
	}

	car, err := s.cars.Create(ctx, domain.Car{
		Model:         in.Model,
		Matriculation: in.Matriculation,
		Seats:         in.Seats,
		BrandID:       brand.ID,
	})
	if err != nil {
		return domain.Car{}, fmt.Errorf("service.CarService.Create: %w", err)
	}
	return car, nil
}

// GetByID returns a single car.
func (s *CarService) GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error) {
	car, err := s.cars.GetByID(ctx, id)
	if err != nil {
		return domain.Car{}, fmt.Errorf("service.CarService.GetByID: %w", namedNotFound(err, "car not found"))
	}
	return car, nil
}

// List returns every car. Always returns a non-nil slice.
func (s *CarService) List(ctx context.Context) ([]domain.Car, error) {
	cars, err := s.cars.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CarService.List: %w", err)
	}
	if cars == nil {
		return []domain.Car{}, nil
	}
	return cars, nil
}

// Delete removes a car no student possesses.
func (s *CarService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CarService.Delete: %w", namedNotFound(err, "car not found"))
	}
	return nil
}

func validateCar(in NewCar) error {
	switch {
	case in.Model == "":
		return domain.ValidationError("model is required")
	case in.Matriculation == "":
		return domain.ValidationError("matriculation is required")
	case len(in.Matriculation) > maxMatriculationLen:
		return domain.ValidationError("matriculation must be at most %d characters", maxMatriculationLen)
	case in.Seats <= 0:
		return domain.ValidationError("seats must be greater than 0")
	case in.BrandName == "":
		return domain.ValidationError("brand is required")
	}
	return nil
}
