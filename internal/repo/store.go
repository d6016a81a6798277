package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repos bundles every repository bound to the same connection or transaction.
type Repos struct {
	Users          UserRepo
	Cities         CityRepo
	Brands         BrandRepo
	Cars           CarRepo
	Students       StudentRepo
	Trips          TripRepo
	Participations ParticipationRepo
}

// NewRepos constructs all repositories on top of db.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRepos(db db) Repos {
	return Repos{
		Users:          NewUserRepo(db),
		Cities:         NewCityRepo(db),
		Brands:         NewBrandRepo(db),
		Cars:           NewCarRepo(db),
		Students:       NewStudentRepo(db),
		Trips:          NewTripRepo(db),
		Participations: NewParticipationRepo(db),
	}
}

// Store runs units of work that span several repositories atomically.
type Store struct {
	db db
}

// NewStore constructs a Store backed by db.
func NewStore(db db) *Store {
	return &Store{db: db}
}

// InTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise, so
// partial writes are never observable.
func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.Store.InTx: %w", err)
	}
	return nil
}
