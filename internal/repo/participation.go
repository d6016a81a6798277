package repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusride/carpool/internal/domain"
)

// ParticipationFilter narrows the participation listing. Zero values match everything.
type ParticipationFilter struct {
	TripID    uuid.UUID
	StudentID uuid.UUID
}

// ParticipationRepo defines the persistence operations for trip participations.
type ParticipationRepo interface {
	// Enroll adds a student to a trip's passengers.
	// Returns domain.ErrCapacityExceeded when every seat is taken and
	// domain.ErrAlreadyEnrolled when the student already rides on the trip.
	// Concurrent calls for the same trip are serialised, so the number of
	// passengers can never exceed the seats offered.
	Enroll(ctx context.Context, tripID, studentID uuid.UUID) (domain.Participation, error)

	// CountByTrip returns the number of passengers enrolled on a trip.
	CountByTrip(ctx context.Context, tripID uuid.UUID) (int, error)

	// List returns one denormalized row per (trip, passenger) pair.
	List(ctx context.Context, f ParticipationFilter) ([]domain.ParticipationRow, error)
}

type pgParticipationRepo struct {
	db db
}

// NewParticipationRepo constructs a ParticipationRepo backed by db.
func NewParticipationRepo(db db) ParticipationRepo {
	return &pgParticipationRepo{db: db}
}

// Enroll runs in its own transaction. The trip row is locked first; the seat
// count is read by a later statement so it sees every enrollment committed by
// transactions that held the lock before us.
func (r *pgParticipationRepo) Enroll(ctx context.Context, tripID, studentID uuid.UUID) (domain.Participation, error) {
	var p domain.Participation

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var places int
		err := tx.QueryRow(ctx,
			`SELECT places_offered FROM trips WHERE id = @trip_id FOR UPDATE`,
			pgx.NamedArgs{"trip_id": tripID},
		).Scan(&places)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFoundError("trip not found")
		}
		if err != nil {
			return fmt.Errorf("lock trip: %w", err)
		}

		var taken int
		err = tx.QueryRow(ctx,
			`SELECT count(*) FROM participations WHERE trip_id = @trip_id`,
			pgx.NamedArgs{"trip_id": tripID},
		).Scan(&taken)
		if err != nil {
			return fmt.Errorf("count passengers: %w", err)
		}
		if taken >= places {
			return domain.ErrCapacityExceeded
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO participations (trip_id, student_id)
			VALUES (@trip_id, @student_id)
			RETURNING trip_id, student_id`,
			pgx.NamedArgs{"trip_id": tripID, "student_id": studentID},
		).Scan(&p.TripID, &p.StudentID)
		if err != nil {
			return translateWrite(err)
		}
		return nil
	})
	if err != nil {
		return domain.Participation{}, fmt.Errorf("repo.ParticipationRepo.Enroll: %w", err)
	}
	return p, nil
}

// CountByTrip counts the passengers of a trip.
func (r *pgParticipationRepo) CountByTrip(ctx context.Context, tripID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM participations WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID},
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("repo.ParticipationRepo.CountByTrip: %w", err)
	}
	return n, nil
}

// List joins participations with their trip, cities and passenger.
func (r *pgParticipationRepo) List(ctx context.Context, f ParticipationFilter) ([]domain.ParticipationRow, error) {
	b := psql.
		Select(
			"t.id", "sc.name", "ac.name", "t.travel_date", "t.km_distance", "t.places_offered",
			"s.id", "s.firstname", "s.name",
		).
		From("participations p").
		Join("trips t ON t.id = p.trip_id").
		Join("cities sc ON sc.id = t.start_city_id").
		Join("cities ac ON ac.id = t.arrive_city_id").
		Join("students s ON s.id = p.student_id").
		OrderBy("t.travel_date", "t.id", "s.name", "s.firstname")

	if f.TripID != uuid.Nil {
		b = b.Where(sq.Eq{"p.trip_id": f.TripID})
	}
	if f.StudentID != uuid.Nil {
		b = b.Where(sq.Eq{"p.student_id": f.StudentID})
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipationRepo.List: build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipationRepo.List: %w", err)
	}
	out, err := collect(rows, func(s scanner) (domain.ParticipationRow, error) {
		var row domain.ParticipationRow
		err := s.Scan(&row.TripID, &row.StartCityName, &row.ArriveCityName, &row.TravelDate,
			&row.KmDistance, &row.PlacesOffered, &row.StudentID, &row.StudentFirstname, &row.StudentName)
		row.TravelDate = row.TravelDate.UTC()
		return row, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipationRepo.List: scan: %w", err)
	}
	return out, nil
}
