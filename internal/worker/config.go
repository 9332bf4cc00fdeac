// Package worker provides background job processing for Logistics Net:
// dataset synthesis, classifier training and carrier profile refresh, driven
// by Pub/Sub messages.
package worker

import (
	"time"

	"github.com/logisticsnet/logisticsnet/internal/synth"
)

// JobConfig holds configuration for dataset jobs.
type JobConfig struct {
	// OutputDir receives the CSV files written by dataset jobs.
	// Default: "datasets"
	OutputDir string

	// Iterations is the intra-city sample count when a message does not set one.
	// Default: synth.DefaultIterations
	Iterations int

	// Seed is the synthesis seed when a message does not set one.
	// Default: 42
	Seed uint64

	// Workers bounds synthesis parallelism. Zero uses GOMAXPROCS.
	Workers int

	// Timeout bounds a single job run.
	// Default: 30 minutes
	Timeout time.Duration
}

// DefaultJobConfig returns the default job configuration.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		OutputDir:  "datasets",
		Iterations: synth.DefaultIterations,
		Seed:       42,
		Timeout:    30 * time.Minute,
	}
}

// withDefaults fills zero fields from DefaultJobConfig.
func (c JobConfig) withDefaults() JobConfig {
	d := DefaultJobConfig()
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	if c.Workers < 0 {
		c.Workers = d.Workers
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	return c
}
