package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
)

// studentRequest is the body of POST and PUT /api/students.
// car_id may be omitted or null for a student without a car.
type studentRequest struct {
	Firstname string                     `json:"firstname" validate:"required,max=64"`
	Name      string                     `json:"name" validate:"required,max=64"`
	Phone     string                     `json:"phone" validate:"required,max=10"`
	Email     string                     `json:"email" validate:"required,max=255,email"`
	CityID    *uuid.UUID                 `json:"city_id" validate:"required"`
	CarID     domain.Optional[uuid.UUID] `json:"car_id"`
}

type studentResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Firstname    string                     `json:"firstname"`
	Name         string                     `json:"name"`
	Phone        string                     `json:"phone"`
	Email        string                     `json:"email"`
	RegisteredBy uuid.UUID                  `json:"registered_by"`
	CityID       uuid.UUID                  `json:"city_id"`
	CarID        domain.Optional[uuid.UUID] `json:"car_id"`
}

func (req studentRequest) toDomain(id uuid.UUID) domain.Student {
	return domain.Student{
		ID:        id,
		Firstname: req.Firstname,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CityID:    *req.CityID,
		CarID:     req.CarID,
	}
}

// createStudent registers a student profile under the calling account.
func (s *Server) createStudent(w http.ResponseWriter, r *http.Request) {
	actor, err := identity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req studentRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	st, err := s.students.Create(r.Context(), actor, req.toDomain(uuid.Nil))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, studentToResponse(st))
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	students, err := s.students.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]studentResponse, 0, len(students))
	for _, st := range students {
		out = append(out, studentToResponse(st))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.students.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, studentToResponse(st))
}

func (s *Server) updateStudent(w http.ResponseWriter, r *http.Request) {
	actor, err := identity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req studentRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	st, err := s.students.Update(r.Context(), actor, req.toDomain(id))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, studentToResponse(st))
}

// deleteStudent removes the student together with its owning account.
func (s *Server) deleteStudent(w http.ResponseWriter, r *http.Request) {
	actor, err := identity(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.students.Delete(r.Context(), actor, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func studentToResponse(st domain.Student) studentResponse {
	return studentResponse{
		ID:           st.ID,
		Firstname:    st.Firstname,
		Name:         st.Name,
		Phone:        st.Phone,
		Email:        st.Email,
		RegisteredBy: st.RegisteredBy,
		CityID:       st.CityID,
		CarID:        st.CarID,
	}
}
