package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusride/carpool/internal/domain"
	"github.com/campusride/carpool/internal/middleware"
)

type authenticatorFunc func(ctx context.Context, token string) (domain.Identity, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	return f(ctx, token)
}

var _ middleware.Authenticator = authenticatorFunc(nil)

var alice = domain.Identity{UserID: uuid.New(), Login: "alice.student", Roles: []string{domain.RoleUser}}

func onlyGoodToken(_ context.Context, token string) (domain.Identity, error) {
	if token != "good" {
		return domain.Identity{}, domain.UnauthorizedError("invalid token")
	}
	return alice, nil
}

// identityEcho answers 200 with the login of the identity found in context.
var identityEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(id.Login))
})

func TestAuthenticate(t *testing.T) {
	h := middleware.Authenticate(authenticatorFunc(onlyGoodToken))(identityEcho)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, alice.Login, rec.Body.String())
			} else {
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
				assert.Contains(t, rec.Body.String(), `"status":401`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := middleware.RequireRole(domain.RoleAdmin)(okHandler)

	serve := func(ctx context.Context) int {
		req := httptest.NewRequest(http.MethodGet, "/api/participations", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	admin := domain.Identity{UserID: uuid.New(), Roles: []string{domain.RoleUser, domain.RoleAdmin}}

	assert.Equal(t, http.StatusOK, serve(middleware.WithIdentity(context.Background(), admin)))
	assert.Equal(t, http.StatusForbidden, serve(middleware.WithIdentity(context.Background(), alice)))
	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
}
