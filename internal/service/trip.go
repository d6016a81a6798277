// Package service contains the business logic for the carpooling API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
)

// TripService implements trip creation, lookup, search and the trip views.
// It holds the student and city repos because a trip references a driver
// and two cities that must exist.
type TripService struct {
	trips    repo.TripRepo
	students repo.StudentRepo
	cities   repo.CityRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, students repo.StudentRepo, cities repo.CityRepo) *TripService {
	return &TripService{trips: trips, students: students, cities: cities}
}

// Create validates the trip, resolves its driver and cities, then persists it.
// Returns domain.ErrValidation for non-positive distance or seats and
// domain.ErrNotFound for an unknown driver, start city or arrival city.
// A trip may start and arrive in the same city.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	if _, err := s.students.GetByID(ctx, trip.DriverID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", namedNotFound(err, "driver not found"))
	}
	if _, err := s.cities.GetByID(ctx, trip.StartCityID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", namedNotFound(err, "start city not found"))
	}
	if _, err := s.cities.GetByID(ctx, trip.ArriveCityID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", namedNotFound(err, "arrival city not found"))
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", namedNotFound(err, "trip not found"))
	}
	return result, nil
}

// List returns every trip. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Search returns the trips from startCityID to arriveCityID travelling on the
// calendar day given as YYYY-MM-DD. Any time of that day matches, from
// 00:00:00 to 23:59:59 inclusive.
//
// Both cities are resolved before the day is parsed, so an unknown city is
// reported as NotFound even when the day is malformed. An empty result is
// reported as NotFound.
func (s *TripService) Search(ctx context.Context, startCityID, arriveCityID uuid.UUID, day string) ([]domain.Trip, error) {
	if _, err := s.cities.GetByID(ctx, startCityID); err != nil {
		return nil, fmt.Errorf("service.TripService.Search: %w", namedNotFound(err, "start city not found"))
	}
	if _, err := s.cities.GetByID(ctx, arriveCityID); err != nil {
		return nil, fmt.Errorf("service.TripService.Search: %w", namedNotFound(err, "arrival city not found"))
	}

	d, err := domain.ParseDay(day)
	if err != nil {
		return nil, domain.ValidationError("invalid date %q, expected YYYY-MM-DD", day)
	}
	from, to := domain.DayWindow(d)

	trips, err := s.trips.Search(ctx, startCityID, arriveCityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Search: %w", err)
	}
	if len(trips) == 0 {
		return nil, domain.NotFoundError("no trip matches this route on " + d.Format(domain.DayLayout))
	}
	return trips, nil
}

// Driver returns the public profile of the student driving a trip.
func (s *TripService) Driver(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error) {
	p, err := s.trips.DriverProfile(ctx, tripID)
	if err != nil {
		return domain.DriverProfile{}, fmt.Errorf("service.TripService.Driver: %w", namedNotFound(err, "trip not found"))
	}
	return p, nil
}

// TripsOfStudent returns the trips a student rides on as a passenger,
// each with its driver's full name. Trips the student drives are not included.
func (s *TripService) TripsOfStudent(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, fmt.Errorf("service.TripService.TripsOfStudent: %w", namedNotFound(err, "student not found"))
	}
	trips, err := s.trips.ListByPassenger(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.TripsOfStudent: %w", err)
	}
	if trips == nil {
		return []domain.PassengerTrip{}, nil
	}
	return trips, nil
}

// validateTrip enforces the field rules of a new trip.
//   - Driver and both cities must be set.
//   - Distance and seats offered must be positive.
//   - Travel date must be set.
func validateTrip(t domain.Trip) error {
	switch {
	case t.DriverID == uuid.Nil:
		return domain.ValidationError("driver is required")
	case t.StartCityID == uuid.Nil:
		return domain.ValidationError("start city is required")
	case t.ArriveCityID == uuid.Nil:
		return domain.ValidationError("arrival city is required")
	case t.KmDistance <= 0:
		return domain.ValidationError("kmdistance must be greater than 0")
	case t.PlacesOffered <= 0:
		return domain.ValidationError("placesoffered must be greater than 0")
	case t.TravelDate.IsZero():
		return domain.ValidationError("traveldate is required")
	}
	return nil
}
