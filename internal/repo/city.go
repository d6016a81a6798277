package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusride/carpool/internal/domain"
)

// CityRepo defines the persistence operations for Cities.
type CityRepo interface {
	Create(ctx context.Context, city domain.City) (domain.City, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.City, error)
	// List returns all cities ordered by name.
	List(ctx context.Context) ([]domain.City, error)
	// Update replaces the name and zip code. Returns domain.ErrNotFound for an unknown id.
	Update(ctx context.Context, city domain.City) (domain.City, error)
	// Delete returns a Conflict while a student or a trip still references the city.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgCityRepo struct {
	db db
}

// NewCityRepo constructs a CityRepo backed by db.
func NewCityRepo(db db) CityRepo {
	return &pgCityRepo{db: db}
}

func (r *pgCityRepo) Create(ctx context.Context, city domain.City) (domain.City, error) {
	const q = `
		INSERT INTO cities (name, zipcode)
		VALUES (@name, @zipcode)
		RETURNING id, name, zipcode`

	result, err := scanCity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": city.Name, "zipcode": city.Zipcode}))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.Create: %w", translateWrite(err))
	}
	return result, nil
}

func (r *pgCityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	const q = `SELECT id, name, zipcode FROM cities WHERE id = @id`

	result, err := scanCity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCityRepo) List(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, zipcode FROM cities ORDER BY name, zipcode`)
	if err != nil {
		return nil, fmt.Errorf("repo.CityRepo.List: %w", err)
	}
	cities, err := collect(rows, scanCity)
	if err != nil {
		return nil, fmt.Errorf("repo.CityRepo.List: scan: %w", err)
	}
	return cities, nil
}

func (r *pgCityRepo) Update(ctx context.Context, city domain.City) (domain.City, error) {
	const q = `
		UPDATE cities
		SET name    = @name,
		    zipcode = @zipcode
		WHERE id = @id
		RETURNING id, name, zipcode`

	args := pgx.NamedArgs{"id": city.ID, "name": city.Name, "zipcode": city.Zipcode}
	result, err := scanCity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.Update: %w", translateWrite(err))
	}
	return result, nil
}

func (r *pgCityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cities WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CityRepo.Delete: %w", translateDelete(err, "city"))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCity(s scanner) (domain.City, error) {
	var c domain.City
	if err := s.Scan(&c.ID, &c.Name, &c.Zipcode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.City{}, domain.ErrNotFound
		}
		return domain.City{}, err
	}
	return c, nil
}
