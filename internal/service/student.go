package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/repo"
)

const (
	maxPhoneLen = 10
	// maxTextLen bounds names and email, matching their VARCHAR(255) columns.
	maxTextLen = 255
)

// TxRunner runs a unit of work against repositories bound to one transaction.
// *repo.Store satisfies it.
type TxRunner interface {
	InTx(ctx context.Context, fn func(repo.Repos) error) error
}

// StudentService implements business logic for Students, including the
// ownership rules: a student record belongs to the account that registered it.
type StudentService struct {
	students repo.StudentRepo
	cities   repo.CityRepo
	cars     repo.CarRepo
	tx       TxRunner
}

// NewStudentService constructs a StudentService backed by the provided repos.
func NewStudentService(students repo.StudentRepo, cities repo.CityRepo, cars repo.CarRepo, tx TxRunner) *StudentService {
	return &StudentService{students: students, cities: cities, cars: cars, tx: tx}
}

// Create registers a student owned by actor. An account registers at most
// one student; duplicate phone, email or car are Conflicts.
func (s *StudentService) Create(ctx context.Context, actor domain.Identity, st domain.Student) (domain.Student, error) {
	st = normalizeStudent(st)
	if err := validateStudent(st); err != nil {
		return domain.Student{}, err
	}
	if err := s.resolveRefs(ctx, st); err != nil {
		return domain.Student{}, fmt.Errorf("service.StudentService.Create: %w", err)
	}

	st.ID = uuid.Nil
	st.RegisteredBy = actor.UserID
	result, err := s.students.Create(ctx, st)
	if err != nil {
		return domain.Student{}, fmt.Errorf("service.StudentService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single student.
func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (domain.Student, error) {
	st, err := s.students.GetByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("service.StudentService.GetByID: %w", namedNotFound(err, "student not found"))
	}
	return st, nil
}

// List returns every student. Always returns a non-nil slice.
func (s *StudentService) List(ctx context.Context) ([]domain.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StudentService.List: %w", err)
	}
	if students == nil {
		return []domain.Student{}, nil
	}
	return students, nil
}

// Update replaces the student's firstname, name, phone, email, city and car.
// Only the registering account or an administrator may update a student.
func (s *StudentService) Update(ctx context.Context, actor domain.Identity, st domain.Student) (domain.Student, error) {
	existing, err := s.students.GetByID(ctx, st.ID)
	if err != nil {
		return domain.Student{}, fmt.Errorf("service.StudentService.Update: %w", namedNotFound(err, "student not found"))
	}
	if actor.UserID != existing.RegisteredBy && !actor.IsAdmin() {
		return domain.Student{}, domain.ForbiddenError("only the registering account may update this student")
	}

	st = normalizeStudent(st)
	if err := validateStudent(st); err != nil {
		return domain.Student{}, err
	}
	if err := s.resolveRefs(ctx, st); err != nil {
		return domain.Student{}, fmt.Errorf("service.StudentService.Update: %w", err)
	}

	st.RegisteredBy = existing.RegisteredBy
	result, err := s.students.Update(ctx, st)
	if err != nil {
		return domain.Student{}, fmt.Errorf("service.StudentService.Update: %w", namedNotFound(err, "student not found"))
	}
	return result, nil
}

// Delete removes a student together with the account that registered it,
// in one transaction. Participations and the trips the student drives go
// with it.
//
// Returns Forbidden when the owning account is an administrator, or when
// actor is neither the owner nor an administrator.
func (s *StudentService) Delete(ctx context.Context, actor domain.Identity, id uuid.UUID) error {
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		st, err := r.Students.GetByID(ctx, id)
		if err != nil {
			return namedNotFound(err, "student not found")
		}
		owner, err := r.Users.GetByID(ctx, st.RegisteredBy)
		if err != nil {
			return namedNotFound(err, "user not found")
		}
		if owner.IsAdmin() {
			return domain.ForbiddenError("a student registered by an administrator cannot be deleted")
		}
		if actor.UserID != owner.ID && !actor.IsAdmin() {
			return domain.ForbiddenError("only the registering account may delete this student")
		}

		if err := r.Students.Delete(ctx, st.ID); err != nil {
			return err
		}
		return r.Users.Delete(ctx, owner.ID)
	})
	if err != nil {
		return fmt.Errorf("service.StudentService.Delete: %w", err)
	}
	return nil
}

// resolveRefs checks that the student's city and optional car exist.
func (s *StudentService) resolveRefs(ctx context.Context, st domain.Student) error {
	if _, err := s.cities.GetByID(ctx, st.CityID); err != nil {
		return namedNotFound(err, "city not found")
	}
	if carID, ok := st.CarID.Get(); ok {
		if _, err := s.cars.GetByID(ctx, carID); err != nil {
			return namedNotFound(err, "car not found")
		}
	}
	return nil
}

func normalizeStudent(st domain.Student) domain.Student {
	st.Firstname = strings.TrimSpace(st.Firstname)
	st.Name = strings.TrimSpace(st.Name)
	st.Phone = strings.TrimSpace(st.Phone)
	st.Email = strings.ToLower(strings.TrimSpace(st.Email))
	return st
}

func validateStudent(st domain.Student) error {
	switch {
	case st.Firstname == "":
		return domain.ValidationError("firstname is required")
	case st.Name == "":
		return domain.ValidationError("name is required")
	case utf8.RuneCountInString(st.Firstname) > maxTextLen, utf8.RuneCountInString(st.Name) > maxTextLen:
		return domain.ValidationError("firstname and name must be at most %d characters", maxTextLen)
	case st.Phone == "":
		return domain.ValidationError("phone is required")
	case len(st.Phone) > maxPhoneLen:
		return domain.ValidationError("phone must be at most %d characters", maxPhoneLen)
	case st.Email == "" || !strings.Contains(st.Email, "@"):
		return domain.ValidationError("a valid email is required")
	case utf8.RuneCountInString(st.Email) > maxTextLen:
		return domain.ValidationError("email must be at most %d characters", maxTextLen)
	case st.CityID == uuid.Nil:
		return domain.ValidationError("city is required")
	}
	return nil
}
