package handler

import (
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campusride/carpool/internal/domain"
)

// internalMessage is the only message a client ever sees for a 500.
const internalMessage = "internal server error"

// errHandled signals that a response has already been written.
var errHandled = errors.New("response already written")

// errorResponse is the uniform error body: {status, message}.
type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// statusFor maps a domain error kind to its HTTP status.
// A full trip and a repeated enrollment are client errors (400) rather than
// generic conflicts.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded), errors.Is(err, domain.ErrAlreadyEnrolled):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeError renders err as {status, message}. Errors without a domain kind
// are logged with the request id and answered with a fixed message, so
// storage or driver text never reaches the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errHandled) {
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeErrorBody(w, status, internalMessage)
		return
	}
	writeErrorBody(w, status, domain.Message(err, http.StatusText(status)))
}

func writeErrorBody(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: status, Message: message})
}
