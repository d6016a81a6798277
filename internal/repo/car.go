package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusride/carpool/internal/domain"
)

// CarRepo defines the persistence operations for Cars.
// Every read joins the brand so BrandName is always populated.
type CarRepo interface {
	Create(ctx context.Context, car domain.Car) (domain.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	// Delete returns a Conflict while a student possesses the car.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgCarRepo struct {
	db db
}

// NewCarRepo constructs a CarRepo backed by db.
func NewCarRepo(db db) CarRepo {
	return &pgCarRepo{db: db}
}

const carSelect = `
	SELECT c.id, c.model, c.matriculation, c.seats, c.brand_id, b.name
	FROM cars c
	JOIN brands b ON b.id = c.brand_id`

func (r *pgCarRepo) Create(ctx context.Context, car domain.Car) (domain.Car, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO cars (brand_id, model, matriculation, seats)
			VALUES (@brand_id, @model, @matriculation, @seats)
			RETURNING id, model, matriculation, seats, brand_id
		)
		SELECT i.id, i.model, i.matriculation, i.seats, i.brand_id, b.name
		FROM inserted i
		JOIN brands b ON b.id = i.brand_id`

	args := pgx.NamedArgs{
		"brand_id":      car.BrandID,
		"model":         car.Model,
		"matriculation": car.Matriculation,
		"seats":         car.Seats,
	}
	result, err := scanCar(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Car{}, fmt.Errorf("repo.CarRepo.Create: %w", translateWrite(err))
	}
	return result, nil
}

func (r *pgCarRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error) {
	result, err := scanCar(r.db.QueryRow(ctx, carSelect+` WHERE c.id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Car{}, fmt.Errorf("repo.CarRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, carSelect+` ORDER BY b.name, c.model, c.matriculation`)
	if err != nil {
		return nil, fmt.Errorf("repo.CarRepo.List: %w", err)
	}
	cars, err := collect(rows, scanCar)
	if err != nil {
		return nil, fmt.Errorf("repo.CarRepo.List: scan: %w", err)
	}
	return cars, nil
}

func (r *pgCarRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CarRepo.Delete: %w", translateDelete(err, "car"))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CarRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCar(s scanner) (domain.Car, error) {
	var c domain.Car
	if err := s.Scan(&c.ID, &c.Model, &c.Matriculation, &c.Seats, &c.BrandID, &c.BrandName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Car{}, domain.ErrNotFound
		}
		return domain.Car{}, err
	}
	return c, nil
}
