// Package handler implements the HTTP handlers for the carpooling API.
// All handlers are methods on Server. They are split into resource files
// (trip.go, participation.go, ...) but share the same Server struct so they
// can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/middleware"
	"github.com/campusride/carpool/internal/service"
)

// The servicer interfaces below define the business operations the handlers
// depend on. Defining them here, in the consumer package, lets handler tests
// inject mocks without touching the database or service layer.

// TripServicer is implemented by *service.TripService.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Search(ctx context.Context, startCityID, arriveCityID uuid.UUID, day string) ([]domain.Trip, error)
	Driver(ctx context.Context, tripID uuid.UUID) (domain.DriverProfile, error)
	TripsOfStudent(ctx context.Context, studentID uuid.UUID) ([]domain.PassengerTrip, error)
}

// ParticipationServicer is implemented by *service.ParticipationService.
type ParticipationServicer interface {
	Enroll(ctx context.Context, studentID, tripID uuid.UUID) (domain.Participation, error)
	List(ctx context.Context, tripID, studentID uuid.UUID) ([]domain.ParticipationRow, error)
}

// CityServicer is implemented by *service.CityService.
type CityServicer interface {
	Create(ctx context.Context, city domain.City) (domain.City, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.City, error)
	List(ctx context.Context) ([]domain.City, error)
	Update(ctx context.Context, city domain.City) (domain.City, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BrandServicer is implemented by *service.BrandService.
type BrandServicer interface {
	Create(ctx context.Context, name string) (domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CarServicer is implemented by *service.CarService.
type CarServicer interface {
	Create(ctx context.Context, in service.NewCar) (domain.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentServicer is implemented by *service.StudentService.
type StudentServicer interface {
	Create(ctx context.Context, actor domain.Identity, s domain.Student) (domain.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Update(ctx context.Context, actor domain.Identity, s domain.Student) (domain.Student, error)
	Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error
}

// AccountServicer is implemented by *service.AccountService.
type AccountServicer interface {
	middleware.Authenticator
	Register(ctx context.Context, login, password string) (domain.User, string, error)
	Login(ctx context.Context, login, password string) (domain.User, string, error)
}

// Services groups the dependencies of Server. Nil members are allowed in
// tests that do not exercise the corresponding routes.
type Services struct {
	Trips          TripServicer
	Participations ParticipationServicer
	Cities         CityServicer
	Brands         BrandServicer
	Cars           CarServicer
	Students       StudentServicer
	Accounts       AccountServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips          TripServicer
	participations ParticipationServicer
	cities         CityServicer
	brands         BrandServicer
	cars           CarServicer
	students       StudentServicer
	accounts       AccountServicer
	log            *slog.Logger
}

// NewServer constructs the Server. A nil logger falls back to slog.Default().
func NewServer(svc Services, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		trips:          svc.Trips,
		participations: svc.Participations,
		cities:         svc.Cities,
		brands:         svc.Brands,
		cars:           svc.Cars,
		students:       svc.Students,
		accounts:       svc.Accounts,
		log:            log,
	}
}

// Routes returns the API router. /healthz, /openapi.yaml, /api/register and
// /api/login are public; every other /api route requires a bearer token, and
// the participation listing requires the administrator role.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.accounts))

			r.Route("/cities", func(r chi.Router) {
				r.Post("/", s.createCity)
				r.Get("/", s.listCities)
				r.Get("/zipcodes", s.listZipCodes)
				r.Get("/{id}", s.getCity)
				r.Put("/{id}", s.updateCity)
				r.Delete("/{id}", s.deleteCity)
			})
			r.Route("/brands", func(r chi.Router) {
				r.Post("/", s.createBrand)
				r.Get("/", s.listBrands)
				r.Delete("/{id}", s.deleteBrand)
			})
			r.Route("/cars", func(r chi.Router) {
				r.Post("/", s.createCar)
				r.Get("/", s.listCars)
				r.Get("/{id}", s.getCar)
				r.Delete("/{id}", s.deleteCar)
			})
			r.Route("/students", func(r chi.Router) {
				r.Post("/", s.createStudent)
				r.Get("/", s.listStudents)
				r.Get("/{id}", s.getStudent)
				r.Put("/{id}", s.updateStudent)
				r.Delete("/{id}", s.deleteStudent)
				r.Get("/{id}/trips", s.studentTrips)
			})
			r.Route("/trips", func(r chi.Router) {
				r.Post("/", s.createTrip)
				r.Get("/", s.listTrips)
				r.Get("/search/{startCityId}/{arriveCityId}/{date}", s.searchTrips)
				r.Get("/{id}", s.getTrip)
				r.Get("/{id}/driver", s.tripDriver)
			})
			r.Route("/participations", func(r chi.Router) {
				r.Post("/", s.enroll)
				r.With(middleware.RequireRole(domain.RoleAdmin)).Get("/", s.listParticipations)
			})
		})
	})
	return r
}
