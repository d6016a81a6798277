package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/handler"
	"github.com/campusride/carpool/internal/service"
)

// Test doubles for the servicer interfaces. Set only the method fields your
// test needs; calling an unset field panics, which fails the test loudly.

type mockTripServicer struct {
	create         func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list           func(ctx context.Context) ([]domain.Trip, error)
	search         func(ctx context.Context, start, arrive uuid.UUID, day string) ([]domain.Trip, error)
	driver         func(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error)
	tripsOfStudent func(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Search(ctx context.Context, start, arrive uuid.UUID, day string) ([]domain.Trip, error) {
	return m.search(ctx, start, arrive, day)
}
func (m *mockTripServicer) Driver(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error) {
	return m.driver(ctx, tripID)
}
func (m *mockTripServicer) TripsOfStudent(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error) {
	return m.tripsOfStudent(ctx, studentID)
}

type mockParticipationServicer struct {
	enroll func(ctx context.Context, studentID, tripID uuid.UUID) (domain.Participation, error)
	list   func(ctx context.Context, tripID, studentID uuid.UUID) ([]domain.ParticipationRow, error)
}

func (m *mockParticipationServicer) Enroll(ctx context.Context, studentID, tripID uuid.UUID) (domain.Participation, error) {
	return m.enroll(ctx, studentID, tripID)
}
func (m *mockParticipationServicer) List(ctx context.Context, tripID, studentID uuid.UUID) ([]domain.ParticipationRow, error) {
	return m.list(ctx, tripID, studentID)
}

type mockCityServicer struct {
	create  func(ctx context.Context, c domain.City) (domain.City, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.City, error)
	list    func(ctx context.Context) ([]domain.City, error)
	update  func(ctx context.Context, c domain.City) (domain.City, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCityServicer) Create(ctx context.Context, c domain.City) (domain.City, error) {
	return m.create(ctx, c)
}
func (m *mockCityServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.City, error) {
	return m.getByID(ctx, id)
}
func (m *mockCityServicer) List(ctx context.Context) ([]domain.City, error) {
	return m.list(ctx)
}
func (m *mockCityServicer) Update(ctx context.Context, c domain.City) (domain.City, error) {
	return m.update(ctx, c)
}
func (m *mockCityServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockBrandServicer struct {
	create func(ctx context.Context, name string) (domain.Brand, error)
	list   func(ctx context.Context) ([]domain.Brand, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockBrandServicer) Create(ctx context.Context, name string) (domain.Brand, error) {
	return m.create(ctx, name)
}
func (m *mockBrandServicer) List(ctx context.Context) ([]domain.Brand, error) {
	return m.list(ctx)
}
func (m *mockBrandServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockCarServicer struct {
	create  func(ctx context.Context, in service.NewCar) (domain.Car, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Car, error)
	list    func(ctx context.Context) ([]domain.Car, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCarServicer) Create(ctx context.Context, in service.NewCar) (domain.Car, error) {
	return m.create(ctx, in)
}
func (m *mockCarServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error) {
	return m.getByID(ctx, id)
}
func (m *mockCarServicer) List(ctx context.Context) ([]domain.Car, error) {
	return m.list(ctx)
}
func (m *mockCarServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockStudentServicer struct {
	create  func(ctx context.Context, actor domain.Identity, s domain.Student) (domain.Student, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Student, error)
	list    func(ctx context.Context) ([]domain.Student, error)
	update  func(ctx context.Context, actor domain.Identity, s domain.Student) (domain.Student, error)
	delete  func(ctx context.Context, actor domain.Identity, id uuid.UUID) error
}

func (m *mockStudentServicer) Create(ctx context.Context, actor domain.Identity, s domain.Student) (domain.Student, error) {
	return m.create(ctx, actor, s)
}
func (m *mockStudentServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	return m.getByID(ctx, id)
}
func (m *mockStudentServicer) List(ctx context.Context) ([]domain.Student, error) {
	return m.list(ctx)
}
func (m *mockStudentServicer) Update(ctx context.Context, actor domain.Identity, s domain.Student) (domain.Student, error) {
	return m.update(ctx, actor, s)
}
func (m *mockStudentServicer) Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error {
	return m.delete(ctx, actor, id)
}

// mockAccountServicer authenticates two fixed bearer tokens by default:
// userToken resolves to regularUser and adminToken to adminUser.
type mockAccountServicer struct {
	register func(ctx context.Context, login, password string) (domain.User, string, error)
	login    func(ctx context.Context, login, password string) (domain.User, string, error)
}

func (m *mockAccountServicer) Register(ctx context.Context, login, password string) (domain.User, string, error) {
	return m.register(ctx, login, password)
}
func (m *mockAccountServicer) Login(ctx context.Context, login, password string) (domain.User, string, error) {
	return m.login(ctx, login, password)
}
func (m *mockAccountServicer) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	switch token {
	case userToken:
		return regularUser, nil
	case adminToken:
		return adminUser, nil
	}
	return domain.Identity{}, domain.UnauthorizedError("invalid token")
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.TripServicer          = (*mockTripServicer)(nil)
	_ handler.ParticipationServicer = (*mockParticipationServicer)(nil)
	_ handler.CityServicer          = (*mockCityServicer)(nil)
	_ handler.BrandServicer         = (*mockBrandServicer)(nil)
	_ handler.CarServicer           = (*mockCarServicer)(nil)
	_ handler.StudentServicer       = (*mockStudentServicer)(nil)
	_ handler.AccountServicer       = (*mockAccountServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

var (
	regularUser = domain.Identity{UserID: uuid.New(), Login: "marie.curie", Roles: []string{domain.RoleUser}}
	adminUser   = domain.Identity{UserID: uuid.New(), Login: "root.admin", Roles: []string{domain.RoleUser, domain.RoleAdmin}}
)

// newRouter wires a Server with the given mocks exactly as main.go wires it
// in production. Accounts defaults to a mock that only authenticates.
func newRouter(svc handler.Services) http.Handler {
	if svc.Accounts == nil {
		svc.Accounts = &mockAccountServicer{}
	}
	return handler.NewServer(svc, nil).Routes()
}

// call performs one request against h. A non-nil body is JSON encoded; a
// non-empty token is sent as a bearer credential.
func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			r = bytes.NewBufferString(raw)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			r = bytes.NewBuffer(b)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// decodeError decodes the uniform error body and checks its status field.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, rec.Code, body.Status)
	return body
}
