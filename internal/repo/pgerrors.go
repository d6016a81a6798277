package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campusride/carpool/internal/domain"
)

// Postgres SQLSTATE codes translated into domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	stringTooLong       = "22001"
)

// uniqueConstraints maps unique index names from the schema to the Conflict
// error a service pre-check would have produced for the same violation.
var uniqueConstraints = map[string]error{
	"users_login_key":            domain.ConflictError("a user with the same login already exists"),
	"cities_name_zipcode_key":    domain.ConflictError("a city with the same name and zip code already exists"),
	"brands_name_key":            domain.ConflictError("a brand with the same name already exists"),
	"cars_matriculation_key":     domain.ConflictError("a car with the same matriculation already exists"),
	"students_phone_key":         domain.ConflictError("a student with the same phone number already exists"),
	"students_email_key":         domain.ConflictError("a student with the same email already exists"),
	"students_registered_by_key": domain.ConflictError("this account has already registered a student"),
	"students_car_id_key":        domain.ConflictError("this car is already possessed by another student"),
	"participations_pkey":        domain.ErrAlreadyEnrolled,
}

// foreignKeys maps foreign key names to the NotFound error raised when an
// insert or update points at a row that does not exist.
var foreignKeys = map[string]error{
	"cars_brand_id_fkey":             domain.NotFoundError("brand not found"),
	"students_registered_by_fkey":    domain.NotFoundError("user not found"),
	"students_city_id_fkey":          domain.NotFoundError("city not found"),
	"students_car_id_fkey":           domain.NotFoundError("car not found"),
	"trips_driver_id_fkey":           domain.NotFoundError("driver not found"),
	"trips_start_city_id_fkey":       domain.NotFoundError("start city not found"),
	"trips_arrive_city_id_fkey":      domain.NotFoundError("arrival city not found"),
	"participations_trip_id_fkey":    domain.NotFoundError("trip not found"),
	"participations_student_id_fkey": domain.NotFoundError("student not found"),
}

// translateWrite maps constraint violations raised by INSERT and UPDATE
// statements to domain errors. Errors it does not recognise are returned unchanged.
func translateWrite(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		if mapped, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return mapped
		}
		return domain.ConflictError("resource already exists")
	case foreignKeyViolation:
		if mapped, ok := foreignKeys[pgErr.ConstraintName]; ok {
			return mapped
		}
		return domain.NotFoundError("referenced resource not found")
	case checkViolation:
		return domain.ValidationError("value out of range")
	case stringTooLong:
		return domain.ValidationError("value too long")
	}
	return err
}

// translateDelete maps a foreign key violation raised by a DELETE to a
// Conflict naming the resource that is still referenced.
func translateDelete(err error, resource string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return domain.ConflictError(resource + " is still referenced and cannot be deleted")
	}
	return err
}
