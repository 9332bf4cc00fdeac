package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/logisticsnet/logisticsnet/internal/synth"
)

// Report summarizes a training run.
type Report struct {
	Samples  int           `json:"samples"`
	Classes  []string      `json:"classes"`
	Accuracy float64       `json:"accuracy"` // on the training set
	Duration time.Duration `json:"duration"`
}

// Trainer fits a classifier on synthesized intra-city rows.
type Trainer struct {
	model  Classifier
	logger zerolog.Logger
}

// NewTrainer creates a trainer for the given model.
func NewTrainer(model Classifier, logger zerolog.Logger) *Trainer {
	return &Trainer{model: model, logger: logger}
}

// Train encodes the rows, calls Fit exactly once and scores the model on the
// same rows.
func (t *Trainer) Train(ctx context.Context, rows []synth.Row) (*Report, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	start := time.Now()

	table := make([][]string, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		table[i] = row.Features()
		labels[i] = row.BestFirstStop
	}

	enc, err := FitTable(table)
	if err != nil {
		return nil, fmt.Errorf("fit encoder: %w", err)
	}
	X, err := enc.Transform(table)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}

	if err := t.model.Fit(ctx, X, labels); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	predicted, err := t.model.Predict(ctx, X)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	correct := 0
	for i := range labels {
		if predicted[i] == labels[i] {
			correct++
		}
	}

	report := &Report{
		Samples:  len(rows),
		Classes:  FitLabels(labels).Classes(),
		Accuracy: float64(correct) / float64(len(rows)),
		Duration: time.Since(start),
	}

	t.logger.Info().
		Int("samples", report.Samples).
		Int("classes", len(report.Classes)).
		Float64("accuracy", report.Accuracy).
		Dur("duration", report.Duration).
		Msg("classifier trained")

	return report, nil
}
