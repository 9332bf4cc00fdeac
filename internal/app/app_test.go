package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/app"
	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/classifier"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

func TestBuild_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := app.Build(ctx, app.Options{}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	routes, err := s.Carriers.Routes(ctx)
	require.NoError(t, err)
	assert.Len(t, routes, len(refdata.Default().Routes()))

	assert.IsType(t, &classifier.FrequencyClassifier{}, s.Classifier)
	assert.Empty(t, s.Checks())
	assert.Zero(t, s.Registry.ProviderCount())
}

func TestBuild_WithRedisAndRemoteClassifier(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := app.Build(ctx, app.Options{
		RedisURL:           "redis://" + mr.Addr(),
		ClassifierEndpoint: "http://127.0.0.1:1",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	q, err := carrier.NewQuery("Bhopal", "Pune", []string{"warehouse"}, "Low")
	require.NoError(t, err)
	_, err = s.Carriers.Recommend(ctx, q)
	require.NoError(t, err)
	assert.NotEmpty(t, mr.Keys(), "recommendation should be cached")

	checks := s.Checks()
	require.Contains(t, checks, "redis")
	assert.NoError(t, checks["redis"](ctx))

	assert.IsType(t, &classifier.RemoteClassifier{}, s.Classifier)
	assert.Equal(t, []string{"model-server"}, s.Registry.GetProviderNames())
}

func TestBuild_InvalidRefdata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("carriers: [\n"), 0o600))

	_, err := app.Build(context.Background(), app.Options{RefdataPath: path}, zerolog.Nop())
	assert.Error(t, err)
}

func TestBuild_InvalidRedisURL(t *testing.T) {
	_, err := app.Build(context.Background(), app.Options{RedisURL: "ftp://nowhere"}, zerolog.Nop())
	assert.Error(t, err)
}
