package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/api/models"
	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// newCarrierService returns a service over the generated profiles of the
// built-in catalog.
func newCarrierService(t *testing.T) *carrier.Service {
	t.Helper()
	catalog := refdata.Default()
	profiles := carrier.NewGenerator(carrier.GeneratorConfig{}).Generate(catalog)
	require.NotEmpty(t, profiles)
	return carrier.NewService(carrier.ServiceConfig{
		Repository: carrier.NewInMemoryRepository(profiles),
		Catalog:    catalog,
		Logger:     zerolog.Nop(),
	})
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) models.Problem {
	t.Helper()
	return decode[models.Problem](t, rec)
}
