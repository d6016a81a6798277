package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusride/carpool/internal/domain"
)

// UserRepo defines the persistence operations for accounts.
type UserRepo interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	// GetByLogin returns domain.ErrNotFound for an unknown login.
	GetByLogin(ctx context.Context, login string) (domain.User, error)
	// Delete removes the account; its student record goes with it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by db.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (login, password_hash, roles)
		VALUES (@login, @password_hash, @roles)
		RETURNING id, login, password_hash, roles`

	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	args := pgx.NamedArgs{"login": user.Login, "password_hash": user.PasswordHash, "roles": roles}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", translateWrite(err))
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT id, login, password_hash, roles FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	const q = `SELECT id, login, password_hash, roles FROM users WHERE login = @login`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"login": login}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByLogin: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", translateDelete(err, "user"))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	if err := s.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Roles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
