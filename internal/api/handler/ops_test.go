package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/api/handler"
	"github.com/logisticsnet/logisticsnet/internal/api/models"
	"github.com/logisticsnet/logisticsnet/internal/provider/resilience"
)

func okCheck(context.Context) error { return nil }

func TestOpsHandler_HealthCheck(t *testing.T) {
	h := handler.NewOpsHandler(handler.OpsConfig{Version: "1.2.3", BuildTime: "2026-01-01T00:00:00Z"})

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[models.Health](t, rec)
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.Equal(t, "1.2.3", health.Details["version"])
}

func TestOpsHandler_ReadinessCheck(t *testing.T) {
	t.Run("all dependencies ready", func(t *testing.T) {
		h := handler.NewOpsHandler(handler.OpsConfig{
			Checks: map[string]handler.CheckFunc{"postgres": okCheck, "redis": okCheck},
		})
		rec := httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)

		health := decode[models.Health](t, rec)
		assert.Equal(t, models.HealthStatusOK, health.Status)
		assert.Equal(t, "OK", health.Details["redis"])
	})

	t.Run("failing dependency", func(t *testing.T) {
		h := handler.NewOpsHandler(handler.OpsConfig{
			Checks: map[string]handler.CheckFunc{
				"postgres": okCheck,
				"redis":    func(context.Context) error { return errors.New("dial tcp: connection refused") },
			},
		})
		rec := httptest.NewRecorder()
		h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		health := decode[models.Health](t, rec)
		assert.Equal(t, models.HealthStatusFail, health.Status)
		assert.Equal(t, "FAIL", health.Details["redis"])
		assert.Equal(t, "OK", health.Details["postgres"])
	})

	t.Run("no dependencies", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.NewOpsHandler(handler.OpsConfig{}).ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOpsHandler_SystemStatus(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register("classifier", resilience.NewClient(resilience.DefaultClientConfig("classifier")))

	h := handler.NewOpsHandler(handler.OpsConfig{
		Checks: map[string]handler.CheckFunc{
			"redis":    okCheck,
			"postgres": func(context.Context) error { return errors.New("timeout") },
		},
		Registry: registry,
	})

	rec := httptest.NewRecorder()
	h.SystemStatus(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	status := decode[models.SystemStatus](t, rec)
	assert.Equal(t, models.HealthStatusFail, status.Status)
	require.Len(t, status.Subsystems, 2)
	assert.Equal(t, "postgres", status.Subsystems[0].Name)
	assert.Equal(t, models.HealthStatusFail, status.Subsystems[0].Status)
	require.NotNil(t, status.Subsystems[0].Detail)
	assert.Equal(t, "timeout", *status.Subsystems[0].Detail)

	require.Len(t, status.Providers, 1)
	assert.Equal(t, "classifier", status.Providers[0].Provider)
	assert.Equal(t, models.HealthStatusOK, status.Providers[0].Status)
	assert.Equal(t, "closed", status.Providers[0].CircuitState)
}
