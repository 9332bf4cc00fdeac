package classifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/classifier"
	"github.com/logisticsnet/logisticsnet/internal/planner"
	"github.com/logisticsnet/logisticsnet/internal/provider/resilience"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/synth"
)

func TestLabelEncoder(t *testing.T) {
	enc := classifier.FitLabels([]string{"Piplani", "ISBT", "Piplani", "Bairagarh"})
	assert.Equal(t, []string{"Bairagarh", "ISBT", "Piplani"}, enc.Classes())

	code, err := enc.Transform("Piplani")
	require.NoError(t, err)
	assert.Equal(t, 2, code)

	name, err := enc.Inverse(1)
	require.NoError(t, err)
	assert.Equal(t, "ISBT", name)

	_, err = enc.Transform("Lalghati")
	assert.ErrorIs(t, err, classifier.ErrUnseenLabel)
	_, err = enc.Inverse(3)
	assert.ErrorIs(t, err, classifier.ErrUnseenLabel)
}

func TestTableEncoder(t *testing.T) {
	rows := [][]string{
		{"MP Nagar", "True", "Food"},
		{"ISBT", "False", "Documents"},
		{"MP Nagar", "False", "Food"},
	}
	enc, err := classifier.FitTable(rows)
	require.NoError(t, err)
	assert.Equal(t, 3, enc.Width())

	X, err := enc.Transform(rows)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1, 1}, {0, 0, 0}, {1, 0, 1}}, X)

	_, err = enc.Transform([][]string{{"Shahpura", "True", "Food"}})
	assert.ErrorIs(t, err, classifier.ErrUnseenLabel)

	_, err = classifier.FitTable([][]string{{"a", "b"}, {"a"}})
	assert.ErrorIs(t, err, classifier.ErrShapeMismatch)

	_, err = classifier.FitTable(nil)
	assert.ErrorIs(t, err, classifier.ErrEmptyDataset)
}

func TestFrequencyClassifier(t *testing.T) {
	ctx := context.Background()
	model := classifier.NewFrequencyClassifier()

	_, err := model.Predict(ctx, [][]float64{{0}})
	assert.ErrorIs(t, err, classifier.ErrNotFitted)

	X := [][]float64{{0, 1}, {0, 1}, {0, 1}, {1, 0}, {1, 0}, {2, 2}}
	y := []string{"B", "A", "B", "C", "A", "C"}
	require.NoError(t, model.Fit(ctx, X, y))

	got, err := model.Predict(ctx, [][]float64{{0, 1}, {1, 0}, {9, 9}})
	require.NoError(t, err)
	// {1,0} ties A and C: the smaller label wins. {9,9} is unseen: global
	// majority is a three-way tie between A, B and C at two each.
	assert.Equal(t, []string{"B", "A", "A"}, got)

	assert.ErrorIs(t, model.Fit(ctx, X, y[:2]), classifier.ErrShapeMismatch)
	assert.ErrorIs(t, model.Fit(ctx, nil, nil), classifier.ErrEmptyDataset)
}

type countingClassifier struct {
	inner classifier.Classifier
	fits  atomic.Int32
}

func (c *countingClassifier) Fit(ctx context.Context, X [][]float64, y []string) error {
	c.fits.Add(1)
	return c.inner.Fit(ctx, X, y)
}

func (c *countingClassifier) Predict(ctx context.Context, X [][]float64) ([]string, error) {
	return c.inner.Predict(ctx, X)
}

func TestTrainer_Train(t *testing.T) {
	ctx := context.Background()
	catalog := refdata.Default()
	s, err := synth.New(synth.Config{
		Planner:   planner.New(catalog),
		Locations: catalog.LocationNames(),
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	ds, err := s.Generate(ctx, synth.Options{Iterations: 400, Seed: 11})
	require.NoError(t, err)

	model := &countingClassifier{inner: classifier.NewFrequencyClassifier()}
	report, err := classifier.NewTrainer(model, zerolog.Nop()).Train(ctx, ds.Rows)
	require.NoError(t, err)

	assert.Equal(t, int32(1), model.fits.Load())
	assert.Equal(t, ds.Produced(), report.Samples)
	assert.NotEmpty(t, report.Classes)
	// The label is a pure function of the features, so the frequency model
	// reproduces its training set exactly.
	assert.Equal(t, 1.0, report.Accuracy)

	_, err = classifier.NewTrainer(model, zerolog.Nop()).Train(ctx, nil)
	assert.ErrorIs(t, err, classifier.ErrEmptyDataset)
}

func TestRemoteClassifier(t *testing.T) {
	var fitted atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/fit", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Features [][]float64 `json:"features"`
			Labels   []string    `json:"labels"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Labels, len(req.Features))
		fitted.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/v1/predict", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Features [][]float64 `json:"features"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		labels := make([]string, len(req.Features))
		for i := range labels {
			labels[i] = "MP Nagar"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string][]string{"labels": labels})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("model-server")
	cfg.Registry = registry
	cfg.InitialInterval = time.Millisecond
	model := classifier.NewRemoteClassifier(classifier.RemoteConfig{
		Endpoint: server.URL + "/v1/",
		Client:   resilience.NewClient(cfg),
	})

	ctx := context.Background()
	require.NoError(t, model.Fit(ctx, [][]float64{{0, 1}, {1, 0}}, []string{"ISBT", "MP Nagar"}))
	assert.True(t, fitted.Load())

	labels, err := model.Predict(ctx, [][]float64{{0, 1}, {1, 1}, {2, 0}})
	require.NoError(t, err)
	assert.Equal(t, []string{"MP Nagar", "MP Nagar", "MP Nagar"}, labels)

	health := registry.GetHealth("model-server")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)

	assert.ErrorIs(t, model.Fit(ctx, [][]float64{{0}}, nil), classifier.ErrShapeMismatch)
}

func TestRemoteClassifier_FitSentOnce(t *testing.T) {
	var fits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/fit", func(w http.ResponseWriter, _ *http.Request) {
		if fits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := classifier.DefaultRemoteClientConfig("model-server")
	cfg.InitialInterval = time.Millisecond
	model := classifier.NewRemoteClassifier(classifier.RemoteConfig{
		Endpoint: server.URL,
		Client:   resilience.NewClient(cfg),
	})

	err := model.Fit(context.Background(), [][]float64{{0, 1}, {1, 0}}, []string{"ISBT", "MP Nagar"})

	var statusErr *resilience.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, int32(1), fits.Load())
}

func TestDefaultRemoteClientConfig(t *testing.T) {
	cfg := classifier.DefaultRemoteClientConfig("model-server")
	assert.Equal(t, classifier.DefaultRemoteTimeout, cfg.Timeout)
	assert.Equal(t, "model-server", cfg.Name)
}
