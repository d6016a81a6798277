package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
)

// registerRequest is the body of POST /api/register.
type registerRequest struct {
	Login    string `json:"login" validate:"required,min=8,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// loginRequest is the body of POST /api/login. Length rules are not checked
// here so that every bad credential answers 401.
type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Login string    `json:"login"`
	Roles []string  `json:"roles"`
}

type registerResponse struct {
	userResponse
	Token string `json:"token"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// register handles POST /api/register.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, token, err := s.accounts.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{userResponse: userToResponse(u), Token: token})
}

// login handles POST /api/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	u, token, err := s.accounts.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: userToResponse(u)})
}

func userToResponse(u domain.User) userResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userResponse{ID: u.ID, Login: u.Login, Roles: roles}
}
