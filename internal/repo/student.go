package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusride/carpool/internal/domain"
)

// StudentRepo defines the persistence operations for Students.
type StudentRepo interface {
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	// Update replaces every mutable field. RegisteredBy is never changed.
	Update(ctx context.Context, student domain.Student) (domain.Student, error)
	// Delete removes the student; participations and driven trips cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgStudentRepo struct {
	db db
}

// NewStudentRepo constructs a StudentRepo backed by db.
func NewStudentRepo(db db) StudentRepo {
	return &pgStudentRepo{db: db}
}

const studentColumns = `id, firstname, name, phone, email, registered_by, city_id, car_id`

func (r *pgStudentRepo) Create(ctx context.Context, s domain.Student) (domain.Student, error) {
	const q = `
		INSERT INTO students (firstname, name, phone, email, registered_by, city_id, car_id)
		VALUES (@firstname, @name, @phone, @email, @registered_by, @city_id, @car_id)
		RETURNING ` + studentColumns

	args := pgx.NamedArgs{
		"firstname":     s.Firstname,
		"name":          s.Name,
		"phone":         s.Phone,
		"email":         s.Email,
		"registered_by": s.RegisteredBy,
		"city_id":       s.CityID,
		"car_id":        s.CarID.Ptr(), // nil becomes NULL
	}

	result, err := scanStudent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Student{}, fmt.Errorf("repo.StudentRepo.Create: %w", translateWrite(err))
	}
	return result, nil
}

func (r *pgStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	const q = `SELECT ` + studentColumns + ` FROM students WHERE id = @id`

	result, err := scanStudent(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Student{}, fmt.Errorf("repo.StudentRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStudentRepo) List(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY name, firstname, id`)
	if err != nil {
		return nil, fmt.Errorf("repo.StudentRepo.List: %w", err)
	}
	students, err := collect(rows, scanStudent)
	if err != nil {
		return nil, fmt.Errorf("repo.StudentRepo.List: scan: %w", err)
	}
	return students, nil
}

func (r *pgStudentRepo) Update(ctx context.Context, s domain.Student) (domain.Student, error) {
	const q = `
		UPDATE students
		SET firstname = @firstname,
		    name      = @name,
		    phone     = @phone,
		    email     = @email,
		    city_id   = @city_id,
		    car_id    = @car_id
		WHERE id = @id
		RETURNING ` + studentColumns

	args := pgx.NamedArgs{
		"id":        s.ID,
		"firstname": s.Firstname,
		"name":      s.Name,
		"phone":     s.Phone,
		"email":     s.Email,
		"city_id":   s.CityID,
		"car_id":    s.CarID.Ptr(),
	}

	result, err := scanStudent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Student{}, fmt.Errorf("repo.StudentRepo.Update: %w", translateWrite(err))
	}
	return result, nil
}

func (r *pgStudentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.StudentRepo.Delete: %w", translateDelete(err, "student"))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StudentRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanStudent maps a row into a domain.Student, converting the nullable car_id.
func scanStudent(s scanner) (domain.Student, error) {
	var (
		st    domain.Student
		carID *uuid.UUID
	)
	err := s.Scan(&st.ID, &st.Firstname, &st.Name, &st.Phone, &st.Email, &st.RegisteredBy, &st.CityID, &carID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Student{}, domain.ErrNotFound
		}
		return domain.Student{}, err
	}
	st.CarID = domain.FromPtr(carID)
	return st, nil
}
