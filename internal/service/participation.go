package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
)

// ParticipationService enrolls passengers on trips and lists enrollments.
type ParticipationService struct {
	students       repo.StudentRepo
	trips          repo.TripRepo
	participations repo.ParticipationRepo
}

// NewParticipationService constructs a ParticipationService backed by the provided repos.
func NewParticipationService(students repo.StudentRepo, trips repo.TripRepo, participations repo.ParticipationRepo) *ParticipationService {
	return &ParticipationService{students: students, trips: trips, participations: participations}
}

// Enroll reserves a seat for a student on a trip.
//
// Errors, in the order they are checked:
//   - NotFound when the student or the trip does not exist.
//   - domain.ErrCapacityExceeded when every seat is already taken.
//   - domain.ErrAlreadyEnrolled when the student already rides on the trip.
//
// A full trip is rejected here without opening a transaction. The store
// repeats the seat check atomically with the insert, so concurrent
// enrollments never exceed the seats offered. The driver may enroll on
// their own trip.
func (s *ParticipationService) Enroll(ctx context.Context, studentID, tripID uuid.UUID) (domain.Participation, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return domain.Participation{}, fmt.Errorf("service.ParticipationService.Enroll: %w", namedNotFound(err, "student not found"))
	}
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("service.ParticipationService.Enroll: %w", namedNotFound(err, "trip not found"))
	}

	taken, err := s.participations.CountByTrip(ctx, tripID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("service.ParticipationService.Enroll: %w", err)
	}
	if taken >= trip.PlacesOffered {
		return domain.Participation{}, fmt.Errorf("service.ParticipationService.Enroll: %w", domain.ErrCapacityExceeded)
	}

	p, err := s.participations.Enroll(ctx, tripID, studentID)
	if err != nil {
		return domain.Participation{}, fmt.Errorf("service.ParticipationService.Enroll: %w", err)
	}
	return p, nil
}

// List returns one row per (trip, passenger) pair. A non-nil tripID or
// studentID restricts the rows to that trip or passenger.
// Always returns a non-nil slice.
func (s *ParticipationService) List(ctx context.Context, tripID, studentID uuid.UUID) ([]domain.ParticipationRow, error) {
	rows, err := s.participations.List(ctx, repo.ParticipationFilter{TripID: tripID, StudentID: studentID})
	if err != nil {
		return nil, fmt.Errorf("service.ParticipationService.List: %w", err)
	}
	if rows == nil {
		return []domain.ParticipationRow{}, nil
	}
	return rows, nil
}
