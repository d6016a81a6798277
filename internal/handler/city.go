package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
)

// cityRequest is the body of POST and PUT /api/cities.
type cityRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	Zipcode string `json:"zipcode" validate:"required,len=5,numeric"`
}

type cityResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Zipcode string    `json:"zipcode"`
}

type zipcodeResponse struct {
	ID      uuid.UUID `json:"id"`
	Zipcode string    `json:"zipcode"`
}

func (s *Server) createCity(w http.ResponseWriter, r *http.Request) {
	var req cityRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.cities.Create(r.Context(), domain.City{Name: req.Name, Zipcode: req.Zipcode})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cityToResponse(c))
}

func (s *Server) listCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.cities.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]cityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, cityToResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// listZipCodes handles GET /api/cities/zipcodes: the same cities, reduced
// to their postal codes.
func (s *Server) listZipCodes(w http.ResponseWriter, r *http.Request) {
	cities, err := s.cities.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]zipcodeResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, zipcodeResponse{ID: c.ID, Zipcode: c.Zipcode})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.cities.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cityToResponse(c))
}

func (s *Server) updateCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req cityRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.cities.Update(r.Context(), domain.City{ID: id, Name: req.Name, Zipcode: req.Zipcode})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cityToResponse(c))
}

func (s *Server) deleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.cities.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func cityToResponse(c domain.City) cityResponse {
	return cityResponse{ID: c.ID, Name: c.Name, Zipcode: c.Zipcode}
}
