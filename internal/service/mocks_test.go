package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
	"github.com/campusride/carpool/internal/service"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.

type mockTripRepo struct {
	create          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list            func(ctx context.Context) ([]domain.Trip, error)
	search          func(ctx context.Context, start, arrive uuid.UUID, from, to time.Time) ([]domain.Trip, error)
	listByPassenger func(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error)
	driverProfile   func(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Search(ctx context.Context, start, arrive uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	return m.search(ctx, start, arrive, from, to)
}
func (m *mockTripRepo) ListByPassenger(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error) {
	return m.listByPassenger(ctx, studentID)
}
func (m *mockTripRepo) DriverProfile(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error) {
	return m.driverProfile(ctx, tripID)
}

type mockParticipationRepo struct {
	enroll      func(ctx context.Context, tripID, studentID uuid.UUID) (domain.Participation, error)
	countByTrip func(ctx context.Context, tripID uuid.UUID) (int, error)
	list        func(ctx context.Context, f repo.ParticipationFilter) ([]domain.ParticipationRow, error)
}

func (m *mockParticipationRepo) Enroll(ctx context.Context, tripID, studentID uuid.UUID) (domain.Participation, error) {
	return m.enroll(ctx, tripID, studentID)
}
func (m *mockParticipationRepo) CountByTrip(ctx context.Context, tripID uuid.UUID) (int, error) {
	return m.countByTrip(ctx, tripID)
}
func (m *mockParticipationRepo) List(ctx context.Context, f repo.ParticipationFilter) ([]domain.ParticipationRow, error) {
	return m.list(ctx, f)
}

type mockCityRepo struct {
	create  func(ctx context.Context, c domain.City) (domain.City, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.City, error)
	list    func(ctx context.Context) ([]domain.City, error)
	update  func(ctx context.Context, c domain.City) (domain.City, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCityRepo) Create(ctx context.Context, c domain.City) (domain.City, error) {
	return m.create(ctx, c)
}
func (m *mockCityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	return m.getByID(ctx, id)
}
func (m *mockCityRepo) List(ctx context.Context) ([]domain.City, error) { return m.list(ctx) }
func (m *mockCityRepo) Update(ctx context.Context, c domain.City) (domain.City, error) {
	return m.update(ctx, c)
}
func (m *mockCityRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

type mockBrandRepo struct {
	create    func(ctx context.Context, name string) (domain.Brand, error)
	getByName func(ctx context.Context, name string) (domain.Brand, error)
	list      func(ctx context.Context) ([]domain.Brand, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBrandRepo) Create(ctx context.Context, name string) (domain.Brand, error) {
	return m.create(ctx, name)
}
func (m *mockBrandRepo) GetByName(ctx context.Context, name string) (domain.Brand, error) {
	return m.getByName(ctx, name)
}
func (m *mockBrandRepo) List(ctx context.Context) ([]domain.Brand, error) { return m.list(ctx) }
func (m *mockBrandRepo) Delete(ctx context.Context, id uuid.UUID) error   { return m.delete(ctx, id) }

type mockCarRepo struct {
	create  func(ctx context.Context, c domain.Car) (domain.Car, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Car, error)
	list    func(ctx context.Context) ([]domain.Car, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCarRepo) Create(ctx context.Context, c domain.Car) (domain.Car, error) {
	return m.create(ctx, c)
}
func (m *mockCarRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error) {
	return m.getByID(ctx, id)
}
func (m *mockCarRepo) List(ctx context.Context) ([]domain.Car, error) { return m.list(ctx) }
func (m *mockCarRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

type mockStudentRepo struct {
	create  func(ctx context.Context, s domain.Student) (domain.Student, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Student, error)
	list    func(ctx context.Context) ([]domain.Student, error)
	update  func(ctx context.Context, s domain.Student) (domain.Student, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStudentRepo) Create(ctx context.Context, s domain.Student) (domain.Student, error) {
	return m.create(ctx, s)
}
func (m *mockStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	return m.getByID(ctx, id)
}
func (m *mockStudentRepo) List(ctx context.Context) ([]domain.Student, error) { return m.list(ctx) }
func (m *mockStudentRepo) Update(ctx context.Context, s domain.Student) (domain.Student, error) {
	return m.update(ctx, s)
}
func (m *mockStudentRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

type mockUserRepo struct {
	create     func(ctx context.Context, u domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByLogin func(ctx context.Context, login string) (domain.User, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	return m.getByLogin(ctx, login)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.delete(ctx, id) }

// fakeTx runs the unit of work directly against repos. committed reports
// whether fn returned nil.
type fakeTx struct {
	repos     repo.Repos
	committed bool
}

func (f *fakeTx) InTx(_ context.Context, fn func(repo.Repos) error) error {
	if err := fn(f.repos); err != nil {
		return err
	}
	f.committed = true
	return nil
}

type mockTokens struct {
	issue func(u domain.User) (string, error)
	parse func(token string) (domain.Identity, error)
}

func (m *mockTokens) Issue(u domain.User) (string, error)         { return m.issue(u) }
func (m *mockTokens) Parse(token string) (domain.Identity, error) { return m.parse(token) }

// compile-time checks: every double must satisfy the interface it stands in for.
var (
	_ repo.TripRepo          = (*mockTripRepo)(nil)
	_ repo.ParticipationRepo = (*mockParticipationRepo)(nil)
	_ repo.CityRepo          = (*mockCityRepo)(nil)
	_ repo.BrandRepo         = (*mockBrandRepo)(nil)
	_ repo.CarRepo           = (*mockCarRepo)(nil)
	_ repo.StudentRepo       = (*mockStudentRepo)(nil)
	_ repo.UserRepo          = (*mockUserRepo)(nil)
	_ service.TxRunner       = (*fakeTx)(nil)
	_ service.Tokens         = (*mockTokens)(nil)
)

// ---- helpers ---------------------------------------------------------------

func notFound[T any](context.Context, uuid.UUID) (T, error) {
	var zero T
	return zero, domain.ErrNotFound
}

func found[T any](v T) func(context.Context, uuid.UUID) (T, error) {
	return func(context.Context, uuid.UUID) (T, error) { return v, nil }
}
