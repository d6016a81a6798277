package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusride/carpool/internal/domain"
)

// psql builds Postgres statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const tripColumns = `id, driver_id, start_city_id, arrive_city_id, km_distance, travel_date, places_offered, created_at`

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record.
	// A missing driver or city surfaces as a NotFound naming the reference.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips ordered by travel date.
	List(ctx context.Context) ([]domain.Trip, error)

	// Search returns trips on the given route whose travel date lies in the
	// inclusive range [from, to], ordered by travel date.
	Search(ctx context.Context, startCityID, arriveCityID uuid.UUID, from, to time.Time) ([]domain.Trip, error)

	// ListByPassenger returns the trips a student participates in, each annotated
	// with its driver's full name.
	ListByPassenger(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error)

	// DriverProfile returns the public profile of the student driving a trip.
	// Returns domain.ErrNotFound if the trip does not exist.
	DriverProfile(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (driver_id, start_city_id, arrive_city_id, km_distance, travel_date, places_offered)
		VALUES (@driver_id, @start_city_id, @arrive_city_id, @km_distance, @travel_date, @places_offered)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"driver_id":      trip.DriverID,
		"start_city_id":  trip.StartCityID,
		"arrive_city_id": trip.ArriveCityID,
		"km_distance":    trip.KmDistance,
		"travel_date":    trip.TravelDate.UTC(),
		"places_offered": trip.PlacesOffered,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", translateWrite(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips ordered by travel date.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY travel_date, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
	}
	return trips, nil
}

// Search filters trips by route and an inclusive travel date range.
func (r *pgTripRepo) Search(ctx context.Context, startCityID, arriveCityID uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	q, args, err := psql.
		Select(tripColumns).
		From("trips").
		Where(sq.Eq{"start_city_id": startCityID, "arrive_city_id": arriveCityID}).
		Where(sq.GtOrEq{"travel_date": from.UTC()}).
		Where(sq.LtOrEq{"travel_date": to.UTC()}).
		OrderBy("travel_date", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Search: build: %w", err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Search: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Search: scan: %w", err)
	}
	return trips, nil
}

// ListByPassenger returns the trips a student rides on, with the driver's name.
func (r *pgTripRepo) ListByPassenger(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error) {
	const q = `
		SELECT t.id, t.driver_id, t.start_city_id, t.arrive_city_id, t.km_distance,
		       t.travel_date, t.places_offered, t.created_at,
		       d.firstname || ' ' || d.name
		FROM participations p
		JOIN trips t ON t.id = p.trip_id
		JOIN students d ON d.id = t.driver_id
		WHERE p.student_id = @student_id
		ORDER BY t.travel_date, t.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"student_id": studentID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByPassenger: %w", err)
	}
	trips, err := collect(rows, func(s scanner) (domain.PassengerTrip, error) {
		var pt domain.PassengerTrip
		t := &pt.Trip
		err := s.Scan(&t.ID, &t.DriverID, &t.StartCityID, &t.ArriveCityID, &t.KmDistance,
			&t.TravelDate, &t.PlacesOffered, &t.CreatedAt, &pt.DriverName)
		return pt, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByPassenger: scan: %w", err)
	}
	return trips, nil
}

// DriverProfile joins the trip's driver with their city and optional car.
func (r *pgTripRepo) DriverProfile(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error) {
	const q = `
		SELECT s.id, s.firstname, s.name, s.phone, s.email, c.name, car.model
		FROM trips t
		JOIN students s ON s.id = t.driver_id
		JOIN cities c ON c.id = s.city_id
		LEFT JOIN cars car ON car.id = s.car_id
		WHERE t.id = @trip_id`

	var (
		p        domain.DriverProfile
		carModel *string
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).
		Scan(&p.ID, &p.Firstname, &p.Name, &p.Phone, &p.Email, &p.CityName, &carModel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DriverProfile{}, fmt.Errorf("repo.TripRepo.DriverProfile: %w", domain.ErrNotFound)
		}
		return domain.DriverProfile{}, fmt.Errorf("repo.TripRepo.DriverProfile: %w", err)
	}
	p.CarModel = domain.FromPtr(carModel)
	return p, nil
}

// scanTrip maps a single database row into a domain.Trip.
// travel_date is a TIMESTAMP without zone and is always read back as UTC.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip

	err := s.Scan(&t.ID, &t.DriverID, &t.StartCityID, &t.ArriveCityID, &t.KmDistance,
		&t.TravelDate, &t.PlacesOffered, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.TravelDate = t.TravelDate.UTC()
	return t, nil
}
