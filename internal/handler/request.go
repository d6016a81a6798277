package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/middleware"
)

// validate checks request DTOs against their `validate` tags. Field names in
// messages are the JSON names clients send.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate decodes a JSON body into dst and validates it.
// Every failure is a domain validation error (400), except a body over the
// size limit, which keeps its 413.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeErrorBody(w, http.StatusRequestEntityTooLarge, "request body too large")
			return errHandled
		case errors.Is(err, io.EOF):
			return domain.ValidationError("request body is required")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.ValidationError("invalid value for field %s", typeErr.Field)
		}
		return domain.ValidationError("malformed JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.ValidationError("%s", formatValidationError(verrs[0]))
		}
		return domain.ValidationError("invalid request body")
	}
	return nil
}

// formatValidationError turns a validator failure into a client message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "len":
		return e.Field() + " must be exactly " + e.Param() + " characters"
	case "email":
		return e.Field() + " must be a valid email address"
	case "numeric":
		return e.Field() + " must contain only digits"
	case "datetime":
		return e.Field() + " must match " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}

// pathUUID binds the chi path parameter name as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, domain.ValidationError("invalid format for parameter %s: expected a UUID", name)
	}
	return id, nil
}

// queryUUID binds the optional query parameter name as a UUID. An absent
// parameter yields uuid.Nil.
func queryUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &id)
	if err != nil {
		return uuid.Nil, domain.ValidationError("invalid format for parameter %s: expected a UUID", name)
	}
	return id, nil
}

// chiParam returns the raw chi path parameter name.
func chiParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// identity returns the caller resolved by the authentication middleware.
func identity(r *http.Request) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return domain.Identity{}, fmt.Errorf("handler: %w", domain.UnauthorizedError("authentication required"))
	}
	return id, nil
}
