package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/api/middleware"
	"github.com/logisticsnet/logisticsnet/internal/auth"
)

func newJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.logisticsnet.in",
		Audience:   "logisticsnet-api",
	})
	require.NoError(t, err)
	return svc
}

func mintToken(t *testing.T, svc *auth.JWTService, subject string, role auth.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(subject, role)
	require.NoError(t, err)
	return token
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuth_RejectsBadHeaders(t *testing.T) {
	handler := middleware.Auth(newJWTService(t))(okHandler)

	tests := []struct {
		name   string
		header string
		detail string
	}{
		{"missing header", "", "missing authorization header"},
		{"no bearer prefix", "token123", "invalid authorization header format"},
		{"basic auth", "Basic dXNlcjpwYXNz", "invalid authorization header format"},
		{"just bearer", "Bearer", "invalid authorization header format"},
		{"empty bearer", "Bearer ", "missing bearer token"},
		{"invalid token", "Bearer invalid.jwt.token", "invalid access token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.detail)
		})
	}
}

func TestAuth_NilValidatorRejects(t *testing.T) {
	handler := middleware.Auth(nil)(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/jobs", http.NoBody)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication is not configured")
}

func TestAuth_ValidToken(t *testing.T) {
	svc := newJWTService(t)
	token := mintToken(t, svc, "ops@logisticsnet", auth.RoleOperator)

	var subject string
	var role auth.Role
	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = middleware.GetSubject(r.Context())
		role = middleware.GetClaims(r.Context()).Role
		w.WriteHeader(http.StatusOK)
	}))

	for _, prefix := range []string{"Bearer ", "bearer ", "BEARER "} {
		t.Run(prefix, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
			req.Header.Set("Authorization", prefix+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "ops@logisticsnet", subject)
			assert.Equal(t, auth.RoleOperator, role)
		})
	}
}

func TestRequireRole(t *testing.T) {
	svc := newJWTService(t)
	handler := middleware.Auth(svc)(middleware.RequireRole(auth.RoleAdmin)(okHandler))

	tests := []struct {
		name   string
		role   auth.Role
		status int
	}{
		{"admin allowed", auth.RoleAdmin, http.StatusOK},
		{"operator forbidden", auth.RoleOperator, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/datasets/intracity", http.NoBody)
			req.Header.Set("Authorization", "Bearer "+mintToken(t, svc, "ops", tt.role))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "admin role required")
			}
		})
	}

	t.Run("without auth", func(t *testing.T) {
		rec := httptest.NewRecorder()
		middleware.RequireRole(auth.RoleOperator)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetSubject_NoAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/carriers", http.NoBody)
	assert.Empty(t, middleware.GetSubject(req.Context()))
	assert.Nil(t, middleware.GetClaims(req.Context()))
}
