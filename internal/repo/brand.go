package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusride/carpool/internal/domain"
)

// BrandRepo defines the persistence operations for car Brands.
type BrandRepo interface {
	Create(ctx context.Context, name string) (domain.Brand, error)
	// GetByName looks a brand up by its unique name.
	GetByName(ctx context.Context, name string) (domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
	// Delete returns a Conflict while cars of the brand exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgBrandRepo struct {
	db db
}

// NewBrandRepo constructs a BrandRepo backed by db.
func NewBrandRepo(db db) BrandRepo {
	return &pgBrandRepo{db: db}
}

func (r *pgBrandRepo) Create(ctx context.Context, name string) (domain.Brand, error) {
	const q = `INSERT INTO brands (name) VALUES (@name) RETURNING id, name`

	result, err := scanBrand(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Brand{}, fmt.Errorf("repo.BrandRepo.Create: %w", translateWrite(err))
	}
	return result, nil
}

func (r *pgBrandRepo) GetByName(ctx context.Context, name string) (domain.Brand, error) {
	const q = `SELECT id, name FROM brands WHERE name = @name`

	result, err := scanBrand(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Brand{}, fmt.Errorf("repo.BrandRepo.GetByName: %w", err)
	}
	return result, nil
}

// List returns brands in insertion order.
func (r *pgBrandRepo) List(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM brands ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("repo.BrandRepo.List: %w", err)
	}
	brands, err := collect(rows, scanBrand)
	if err != nil {
		return nil, fmt.Errorf("repo.BrandRepo.List: scan: %w", err)
	}
	return brands, nil
}

func (r *pgBrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM brands WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BrandRepo.Delete: %w", translateDelete(err, "brand"))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BrandRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanBrand(s scanner) (domain.Brand, error) {
	var b domain.Brand
	if err := s.Scan(&b.ID, &b.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Brand{}, domain.ErrNotFound
		}
		return domain.Brand{}, err
	}
	return b, nil
}
