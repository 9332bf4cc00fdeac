// Package classifier is the boundary to the supervised next-stop model.
//
// Synthesized intra-city rows are encoded into fixed-width numeric vectors and
// handed to a Classifier exactly once per training run. The in-process
// FrequencyClassifier serves tests and offline runs; RemoteClassifier delegates
// to an external model server.
package classifier

import (
	"context"
	"errors"
)

// Sentinel errors for classification.
var (
	// ErrNotFitted indicates Predict was called before a successful Fit.
	ErrNotFitted = errors.New("classifier is not fitted")
	// ErrUnseenLabel indicates a value that was not present when the encoder was fitted.
	ErrUnseenLabel = errors.New("unseen label")
	// ErrShapeMismatch indicates features and labels of different lengths, or ragged rows.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrEmptyDataset indicates an attempt to fit on zero rows.
	ErrEmptyDataset = errors.New("empty dataset")
)

// Classifier is a supervised model over fixed-width feature vectors.
type Classifier interface {
	// Fit trains the model on X with labels y.
	Fit(ctx context.Context, X [][]float64, y []string) error
	// Predict returns one label per row of X.
	Predict(ctx context.Context, X [][]float64) ([]string, error)
}

func checkShape(X [][]float64) error {
	if len(X) == 0 {
		return nil
	}
	width := len(X[0])
	for _, row := range X[1:] {
		if len(row) != width {
			return ErrShapeMismatch
		}
	}
	return nil
}
