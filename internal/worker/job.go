package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/classifier"
	"github.com/logisticsnet/logisticsnet/internal/planner"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/synth"
)

// CarrierService is the part of the carrier service dataset jobs use.
type CarrierService interface {
	synth.Recommender
	Routes(ctx context.Context) ([]refdata.RouteKey, error)
	RefreshProfiles(ctx context.Context, gen *carrier.Generator) (int, error)
}

// DatasetJobConfig holds configuration for creating a DatasetJob.
type DatasetJobConfig struct {
	Config      JobConfig
	Logger      zerolog.Logger
	Synthesizer *synth.Synthesizer
	Planner     *planner.Planner
	Carriers    CarrierService
	Generator   *carrier.Generator

	// Locations are the city locations the health check plans over.
	Locations []string

	// Classifier is fitted after intra-city jobs that request it (optional).
	Classifier classifier.Classifier
}

// DatasetJob runs the worker's jobs and keeps run metrics.
type DatasetJob struct {
	config      JobConfig
	logger      zerolog.Logger
	synthesizer *synth.Synthesizer
	planner     *planner.Planner
	carriers    CarrierService
	generator   *carrier.Generator
	classifier  classifier.Classifier
	locations   []string

	metrics *JobMetrics
}

// JobMetrics tracks job statistics.
type JobMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalJobs         int64
	SucceededJobs     int64
	FailedJobs        int64
	RowsWritten       int64
	RowsDropped       int64
	ProfilesRefreshed int64
	ClassifierFits    int64

	// Timings
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// JobResult contains the result of one job run.
type JobResult struct {
	JobID     string
	JobType   JobType
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Rows     int
	Dropped  int
	Files    []string
	Profiles int
	Training *classifier.Report
}

// NewDatasetJob creates a new job runner.
func NewDatasetJob(cfg DatasetJobConfig) *DatasetJob {
	return &DatasetJob{
		config:      cfg.Config.withDefaults(),
		logger:      cfg.Logger,
		synthesizer: cfg.Synthesizer,
		planner:     cfg.Planner,
		carriers:    cfg.Carriers,
		generator:   cfg.Generator,
		classifier:  cfg.Classifier,
		locations:   cfg.Locations,
		metrics:     &JobMetrics{},
	}
}

// Run executes the job described by msg. It returns ErrUnknownJobType for
// job types the worker does not run.
func (j *DatasetJob) Run(ctx context.Context, msg JobMessage) (*JobResult, error) {
	if !msg.JobType.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJobType, msg.JobType)
	}

	jobID := msg.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}
	result := &JobResult{
		JobID:     jobID,
		JobType:   msg.JobType,
		StartTime: time.Now(),
	}

	logger := j.logger.With().
		Str("job_id", jobID).
		Str("job_type", string(msg.JobType)).
		Logger()
	logger.Info().Msg("starting job")

	ctx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	var err error
	switch msg.JobType {
	case JobIntracityDataset:
		err = j.intracity(ctx, msg, result)
	case JobCarrierDataset:
		err = j.carrierDataset(ctx, result)
	case JobProfileRefresh:
		err = j.refreshProfiles(ctx, result)
	case JobHealthCheck:
		err = j.healthCheck(ctx)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	j.updateMetrics(result, err)

	if err != nil {
		logger.Error().Err(err).Dur("duration", result.Duration).Msg("job failed")
		return nil, err
	}

	logger.Info().
		Dur("duration", result.Duration).
		Int("rows", result.Rows).
		Int("dropped", result.Dropped).
		Strs("files", result.Files).
		Msg("job completed")
	return result, nil
}

func (j *DatasetJob) intracity(ctx context.Context, msg JobMessage, result *JobResult) error {
	if j.synthesizer == nil {
		return errors.New("synthesizer is not configured")
	}

	opts := synth.Options{
		Iterations: msg.Iterations,
		Seed:       j.config.Seed,
		Workers:    j.config.Workers,
	}
	if opts.Iterations == 0 {
		opts.Iterations = j.config.Iterations
	}
	if msg.Seed != nil {
		opts.Seed = *msg.Seed
	}

	ds, err := j.synthesizer.Generate(ctx, opts)
	if err != nil {
		return fmt.Errorf("synthesizing dataset: %w", err)
	}
	result.Rows = ds.Produced()
	result.Dropped = ds.Dropped

	path, err := j.writeFile("intracity-"+result.JobID+".csv", func(w io.Writer) error {
		return synth.WriteCSV(w, ds.Rows)
	})
	if err != nil {
		return err
	}
	result.Files = append(result.Files, path)

	if !msg.FitClassifier {
		return nil
	}
	if j.classifier == nil {
		return errors.New("classifier is not configured")
	}
	report, err := classifier.NewTrainer(j.classifier, j.logger).Train(ctx, ds.Rows)
	if err != nil {
		return fmt.Errorf("training classifier: %w", err)
	}
	result.Training = report
	return nil
}

func (j *DatasetJob) carrierDataset(ctx context.Context, result *JobResult) error {
	if j.carriers == nil {
		return errors.New("carrier service is not configured")
	}

	routes, err := j.carriers.Routes(ctx)
	if err != nil {
		return fmt.Errorf("listing routes: %w", err)
	}
	rows, err := synth.CarrierExamples(ctx, j.carriers, routes)
	if err != nil {
		return fmt.Errorf("ranking carriers: %w", err)
	}
	result.Rows = len(rows)

	path, err := j.writeFile("carriers-"+result.JobID+".csv", func(w io.Writer) error {
		return synth.WriteCarrierCSV(w, rows)
	})
	if err != nil {
		return err
	}
	result.Files = append(result.Files, path)
	return nil
}

func (j *DatasetJob) refreshProfiles(ctx context.Context, result *JobResult) error {
	if j.carriers == nil || j.generator == nil {
		return errors.New("profile refresh is not configured")
	}
	n, err := j.carriers.RefreshProfiles(ctx, j.generator)
	if err != nil {
		return fmt.Errorf("refreshing profiles: %w", err)
	}
	result.Profiles = n
	return nil
}

// healthCheck plans one small route and lists the stored routes to verify
// the planner and the profile store are usable.
func (j *DatasetJob) healthCheck(ctx context.Context) error {
	if j.planner != nil && len(j.locations) >= planner.MinWaypoints {
		if _, err := j.planner.PlanRoute(j.locations[:planner.MinWaypoints], planner.Cargo{}); err != nil {
			return fmt.Errorf("planner health check: %w", err)
		}
	}
	if j.carriers != nil {
		if _, err := j.carriers.Routes(ctx); err != nil {
			return fmt.Errorf("profile store health check: %w", err)
		}
	}
	return nil
}

// writeFile writes name into the output directory through a temporary file,
// so readers never observe a partial dataset.
func (j *DatasetJob) writeFile(name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(j.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(j.config.OutputDir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := write(tmp); err != nil {
		tmp.Close() //nolint:errcheck
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}

	path := filepath.Join(j.config.OutputDir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("publishing %s: %w", name, err)
	}
	return path, nil
}

func (j *DatasetJob) updateMetrics(result *JobResult, err error) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalJobs++
	if err != nil {
		j.metrics.FailedJobs++
	} else {
		j.metrics.SucceededJobs++
		j.metrics.RowsWritten += int64(result.Rows)
		j.metrics.RowsDropped += int64(result.Dropped)
		j.metrics.ProfilesRefreshed += int64(result.Profiles)
		if result.Training != nil {
			j.metrics.ClassifierFits++
		}
	}
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *DatasetJob) GetMetrics() JobMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return JobMetrics{
		TotalJobs:         j.metrics.TotalJobs,
		SucceededJobs:     j.metrics.SucceededJobs,
		FailedJobs:        j.metrics.FailedJobs,
		RowsWritten:       j.metrics.RowsWritten,
		RowsDropped:       j.metrics.RowsDropped,
		ProfilesRefreshed: j.metrics.ProfilesRefreshed,
		ClassifierFits:    j.metrics.ClassifierFits,
		LastRunAt:         j.metrics.LastRunAt,
		LastRunDuration:   j.metrics.LastRunDuration,
		TotalDuration:     j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *DatasetJob) MetricsSnapshot() map[string]any {
	m := j.GetMetrics()
	return map[string]any{
		"total_jobs":         m.TotalJobs,
		"succeeded_jobs":     m.SucceededJobs,
		"failed_jobs":        m.FailedJobs,
		"rows_written":       m.RowsWritten,
		"rows_dropped":       m.RowsDropped,
		"profiles_refreshed": m.ProfilesRefreshed,
		"classifier_fits":    m.ClassifierFits,
		"last_run_at":        m.LastRunAt,
		"last_run_duration":  m.LastRunDuration.String(),
		"total_duration":     m.TotalDuration.String(),
	}
}
