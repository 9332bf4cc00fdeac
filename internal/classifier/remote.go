package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/logisticsnet/logisticsnet/internal/provider/resilience"
)

// DefaultRemoteTimeout bounds a single model server call. Training on a
// full dataset takes far longer than a prediction.
const DefaultRemoteTimeout = 5 * time.Minute

// DefaultRemoteClientConfig returns the client configuration for a model
// server registered under name.
func DefaultRemoteClientConfig(name string) resilience.ClientConfig {
	cfg := resilience.DefaultClientConfig(name)
	cfg.Timeout = DefaultRemoteTimeout
	return cfg
}

// RemoteConfig holds configuration for a remote model server.
type RemoteConfig struct {
	// Endpoint is the model server base URL; /fit and /predict are appended.
	Endpoint string
	// Client performs the calls. Register it with a resilience.Registry to
	// expose the model server in ops status.
	Client *resilience.Client
}

// RemoteClassifier delegates training and prediction to a model server.
type RemoteClassifier struct {
	endpoint string
	client   *resilience.Client
}

// NewRemoteClassifier creates a classifier backed by a model server.
func NewRemoteClassifier(cfg RemoteConfig) *RemoteClassifier {
	client := cfg.Client
	if client == nil {
		client = resilience.NewClient(DefaultRemoteClientConfig("model-server"))
	}
	return &RemoteClassifier{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   client,
	}
}

type fitRequest struct {
	Features [][]float64 `json:"features"`
	Labels   []string    `json:"labels"`
}

type predictRequest struct {
	Features [][]float64 `json:"features"`
}

type predictResponse struct {
	Labels []string `json:"labels"`
}

// Fit posts the training set to the model server. Training is not
// idempotent, so the call is made once and never retried.
func (c *RemoteClassifier) Fit(ctx context.Context, X [][]float64, y []string) error {
	if len(X) == 0 {
		return ErrEmptyDataset
	}
	if len(X) != len(y) {
		return ErrShapeMismatch
	}
	if err := checkShape(X); err != nil {
		return err
	}

	if err := c.client.PostJSONOnce(ctx, c.endpoint+"/fit", fitRequest{Features: X, Labels: y}, nil); err != nil {
		return fmt.Errorf("model server fit: %w", err)
	}
	return nil
}

// Predict asks the model server for one label per row.
func (c *RemoteClassifier) Predict(ctx context.Context, X [][]float64) ([]string, error) {
	if err := checkShape(X); err != nil {
		return nil, err
	}

	var resp predictResponse
	if err := c.client.PostJSON(ctx, c.endpoint+"/predict", predictRequest{Features: X}, &resp); err != nil {
		return nil, fmt.Errorf("model server predict: %w", err)
	}
	if len(resp.Labels) != len(X) {
		return nil, fmt.Errorf("%w: model server returned %d labels for %d rows", ErrShapeMismatch, len(resp.Labels), len(X))
	}
	return resp.Labels, nil
}

var _ Classifier = (*RemoteClassifier)(nil)
