package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/service"
)

// carRequest is the body of POST /api/cars. The brand is given by name.
type carRequest struct {
	Model         string `json:"model" validate:"required,max=64"`
	Matriculation string `json:"matriculation" validate:"required,max=9"`
	Seats         *int   `json:"seats" validate:"required,gt=0,max=9"`
	Brand         string `json:"brand" validate:"required"`
}

type carResponse struct {
	ID            uuid.UUID `json:"id"`
	Model         string    `json:"model"`
	Matriculation string    `json:"matriculation"`
	Seats         int       `json:"seats"`
	BrandID       uuid.UUID `json:"brand_id"`
	Brand         string    `json:"brand"`
}

func (s *Server) createCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.cars.Create(r.Context(), service.NewCar{
		Model:         req.Model,
		Matriculation: req.Matriculation,
		Seats:         *req.Seats,
		BrandName:     req.Brand,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, carToResponse(c))
}

func (s *Server) listCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.cars.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]carResponse, 0, len(cars))
	for _, c := range cars {
		out = append(out, carToResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.cars.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, carToResponse(c))
}

func (s *Server) deleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cars.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func carToResponse(c domain.Car) carResponse {
	return carResponse{
		ID:            c.ID,
		Model:         c.Model,
		Matriculation: c.Matriculation,
		Seats:         c.Seats,
		BrandID:       c.BrandID,
		Brand:         c.BrandName,
	}
}
