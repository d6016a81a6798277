package handler

import (
	"net/http"

	"github.com/google/uuid"
)

type brandRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type brandResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (s *Server) createBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.brands.Create(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, brandResponse{ID: b.ID, Name: b.Name})
}

func (s *Server) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.brands.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]brandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, brandResponse{ID: b.ID, Name: b.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// deleteBrand answers 409 while cars still reference the brand.
func (s *Server) deleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.brands.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
