package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/logisticsnet/logisticsnet/internal/api/middleware"
	"github.com/logisticsnet/logisticsnet/internal/auth"
)

func hit(handler http.Handler, remoteAddr, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/routes:plan", http.NoBody)
	req.RemoteAddr = remoteAddr
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitByIP(t *testing.T) {
	handler := middleware.RequestID(middleware.RateLimitByIP(middleware.RateLimitConfig{
		RequestLimit: 3,
		WindowLength: time.Minute,
	})(okHandler))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:12345", "").Code, "request %d", i+1)
	}

	rec := hit(handler, "10.0.0.1:12345", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "too-many-requests")
	assert.Contains(t, body, "Rate limit exceeded")
	assert.Contains(t, body, "/v1/routes:plan")

	// Another client keeps its own budget.
	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.2:12345", "").Code)
}

func TestRateLimitBySubject(t *testing.T) {
	svc := newJWTService(t)
	handler := middleware.Auth(svc)(middleware.RateLimitBySubject(middleware.RateLimitConfig{
		RequestLimit: 2,
		WindowLength: time.Minute,
	})(okHandler))

	token := mintToken(t, svc, "ops@logisticsnet", auth.RoleAdmin)

	// The same subject shares one budget across addresses.
	assert.Equal(t, http.StatusOK, hit(handler, "192.168.1.1:1", token).Code)
	assert.Equal(t, http.StatusOK, hit(handler, "192.168.1.2:1", token).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "192.168.1.3:1", token).Code)

	other := mintToken(t, svc, "planner@logisticsnet", auth.RoleAdmin)
	assert.Equal(t, http.StatusOK, hit(handler, "192.168.1.1:1", other).Code)
}

func TestRateLimitBySubject_FallsBackToIP(t *testing.T) {
	handler := middleware.RateLimitBySubject(middleware.RateLimitConfig{
		RequestLimit: 1,
		WindowLength: time.Minute,
	})(okHandler)

	assert.Equal(t, http.StatusOK, hit(handler, "172.16.0.1:1", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "172.16.0.1:1", "").Code)
	assert.Equal(t, http.StatusOK, hit(handler, "172.16.0.2:1", "").Code)
}

func TestRateLimit_RetryAfterFollowsWindow(t *testing.T) {
	handler := middleware.RateLimitByIP(middleware.RateLimitConfig{
		RequestLimit: 1,
		WindowLength: 10 * time.Second,
	})(okHandler)

	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.9:1", "").Code)
	rec := hit(handler, "10.0.0.9:1", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("Retry-After"))
}

func TestDefaultRateLimitConfigs(t *testing.T) {
	assert.Equal(t, 10, middleware.AdminRateLimit.RequestLimit)
	assert.Equal(t, 30, middleware.ExpensiveRateLimit.RequestLimit)
	assert.Equal(t, 100, middleware.StandardRateLimit.RequestLimit)
	for _, cfg := range []middleware.RateLimitConfig{middleware.AdminRateLimit, middleware.ExpensiveRateLimit, middleware.StandardRateLimit} {
		assert.Equal(t, time.Minute, cfg.WindowLength)
	}
}
