package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/auth"
	"github.com/logisticsnet/logisticsnet/internal/classifier"
	"github.com/logisticsnet/logisticsnet/internal/synth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRank(t *testing.T) {
	out, err := run(t, "rank", "Bhopal", "Delhi", "--priorities", "safety,cost", "--fragility", "high")
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	top, ok := rec["topChoice"].(map[string]any)
	require.True(t, ok, out)
	assert.NotEmpty(t, top["name"])
	assert.Contains(t, rec, "valuePick")
	assert.NotContains(t, rec, "ranking")
}

func TestRank_Explain(t *testing.T) {
	out, err := run(t, "rank", "Bhopal", "Delhi", "-p", "speed", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, `"ranking"`)
}

func TestRank_NoRouteData(t *testing.T) {
	out, err := run(t, "rank", "Bhopal", "Atlantis", "-p", "cost")
	require.NoError(t, err)

	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "No data available for the route Bhopal to Atlantis.", resp["error"])
}

func TestRank_InvalidQuery(t *testing.T) {
	_, err := run(t, "rank", "Bhopal", "Delhi", "-p", "luxury", "-f", "extreme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priorities")
	assert.Contains(t, err.Error(), "fragility")
}

func TestRank_RequiresPriorities(t *testing.T) {
	_, err := run(t, "rank", "Bhopal", "Delhi")
	require.Error(t, err)
}

func TestPlan(t *testing.T) {
	out, err := run(t, "plan", "Habib Ganj", "Piplani", "Ayodhya Bypass", "ISBT", "--fragile")
	require.NoError(t, err)

	var plan planOutput
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Len(t, plan.Order, 4)
	assert.Equal(t, plan.Order[0], plan.FirstStop)
	assert.Positive(t, plan.Cost)
}

func TestPlan_TooFewStops(t *testing.T) {
	_, err := run(t, "plan", "Habib Ganj", "Piplani")
	require.Error(t, err)
}

func TestPlan_UnknownStop(t *testing.T) {
	_, err := run(t, "plan", "Habib Ganj", "Piplani", "Nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan route")
}

func TestCarrier(t *testing.T) {
	t.Run("known", func(t *testing.T) {
		out, err := run(t, "carrier", "Gati")
		require.NoError(t, err)
		assert.Contains(t, out, `"name": "Gati"`)
		assert.Contains(t, out, `"careNumber"`)
	})

	t.Run("unknown", func(t *testing.T) {
		out, err := run(t, "carrier", "Nope")
		require.NoError(t, err)
		assert.Contains(t, out, "Company details not found.")
	})
}

func TestDatasetIntracity_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intracity.csv")

	_, err := run(t, "dataset", "intracity", "-n", "20", "--seed", "7", "-o", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := synth.ReadCSV(f)
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
	assert.LessOrEqual(t, len(rows), 20)
}

func TestDatasetIntracity_Reproducible(t *testing.T) {
	first, err := run(t, "dataset", "intracity", "-n", "15", "--seed", "3")
	require.NoError(t, err)
	second, err := run(t, "dataset", "intracity", "-n", "15", "--seed", "3", "--workers", "1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDatasetCarriers(t *testing.T) {
	out, err := run(t, "dataset", "carriers")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.Equal(t, strings.Join(synth.CarrierHeader, ","), lines[0])
}

func TestTrain(t *testing.T) {
	out, err := run(t, "train", "-n", "200", "--seed", "1")
	require.NoError(t, err)

	var report classifier.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Positive(t, report.Samples)
	assert.NotEmpty(t, report.Classes)
	assert.GreaterOrEqual(t, report.Accuracy, 0.0)
	assert.LessOrEqual(t, report.Accuracy, 1.0)
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "")

	t.Run("issues a valid token", func(t *testing.T) {
		out, err := run(t, "token", "ops@logisticsnet", "--role", "admin", "--key", "cli-test-key",
			"--issuer", "https://issuer.test", "--audience", "test-api")
		require.NoError(t, err)

		var tok tokenOutput
		require.NoError(t, json.Unmarshal([]byte(out), &tok))

		svc, err := auth.NewJWTService(auth.JWTConfig{
			SigningKey: "cli-test-key",
			Issuer:     "https://issuer.test",
			Audience:   "test-api",
		})
		require.NoError(t, err)
		claims, err := svc.ValidateAccessToken(tok.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "ops@logisticsnet", claims.Subject)
		assert.Equal(t, auth.RoleAdmin, claims.Role)
	})

	t.Run("requires a signing key", func(t *testing.T) {
		_, err := run(t, "token", "ops@logisticsnet")
		require.ErrorIs(t, err, auth.ErrMissingSigningKey)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		_, err := run(t, "token", "ops@logisticsnet", "--role", "root", "--key", "k")
		require.ErrorIs(t, err, auth.ErrInvalidRole)
	})
}
