package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/campusride/carpool/internal/domain"
)

func TestTranslateWrite(t *testing.T) {
	cases := []struct {
		name string
		pg   *pgconn.PgError
		kind error
		msg  string
	}{
		{"known unique", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "cars_matriculation_key"}, domain.ErrConflict, "a car with the same matriculation already exists"},
		{"enrollment pkey", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "participations_pkey"}, domain.ErrConflict, "student already participates in this trip"},
		{"known foreign key", &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "trips_driver_id_fkey"}, domain.ErrNotFound, "driver not found"},
		{"check", &pgconn.PgError{Code: checkViolation}, domain.ErrValidation, "value out of range"},
		{"string too long", &pgconn.PgError{Code: stringTooLong}, domain.ErrValidation, "value too long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := translateWrite(fmt.Errorf("insert: %w", tc.pg))

			assert.ErrorIs(t, err, tc.kind)
			assert.Equal(t, tc.msg, domain.Message(err, ""))
		})
	}
}

func TestTranslateWrite_UnknownErrorUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	assert.Same(t, boom, translateWrite(boom))

	pgErr := &pgconn.PgError{Code: "40001"}
	assert.Same(t, pgErr, translateWrite(pgErr))
}

func TestTranslateDelete(t *testing.T) {
	err := translateDelete(&pgconn.PgError{Code: foreignKeyViolation}, "brand")

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "brand is still referenced and cannot be deleted", domain.Message(err, ""))
}
