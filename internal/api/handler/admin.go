package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/logisticsnet/logisticsnet/internal/api/middleware"
	"github.com/logisticsnet/logisticsnet/internal/api/models"
	"github.com/logisticsnet/logisticsnet/internal/api/response"
	"github.com/logisticsnet/logisticsnet/internal/synth"
	"github.com/logisticsnet/logisticsnet/internal/worker"
)

// DefaultSyncIterations is the sample count of a synchronous intra-city
// dataset request that does not set one.
const DefaultSyncIterations = 1000

// JobPublisher enqueues background jobs.
type JobPublisher interface {
	Publish(ctx context.Context, msg worker.JobMessage) (string, error)
}

// AdminHandler handles dataset synthesis and job endpoints.
type AdminHandler struct {
	synthesizer *synth.Synthesizer
	carriers    CarrierService
	publisher   JobPublisher
	logger      zerolog.Logger
}

// AdminConfig holds configuration for the admin handler.
type AdminConfig struct {
	Synthesizer *synth.Synthesizer
	Carriers    CarrierService
	// Publisher is optional. Without it, job requests return 503.
	Publisher JobPublisher
	Logger    zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	return &AdminHandler{
		synthesizer: cfg.Synthesizer,
		carriers:    cfg.Carriers,
		publisher:   cfg.Publisher,
		logger:      cfg.Logger,
	}
}

// IntracityDataset handles POST /v1/admin/datasets/intracity - synthesize a
// labelled intra-city dataset and return it as CSV.
func (h *AdminHandler) IntracityDataset(w http.ResponseWriter, r *http.Request) {
	// An empty body selects every default.
	var input models.IntracityDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}
	if input.Iterations == 0 {
		input.Iterations = DefaultSyncIterations
	}

	ds, err := h.synthesizer.Generate(r.Context(), synth.Options{
		Iterations: input.Iterations,
		Seed:       input.Seed,
		Workers:    input.Workers,
	})
	if err != nil {
		h.logger.Error().Err(err).Int("iterations", input.Iterations).Msg("failed to synthesize dataset")
		response.InternalError(w, r, "failed to synthesize dataset")
		return
	}

	var buf bytes.Buffer
	if err := synth.WriteCSV(&buf, ds.Rows); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode dataset")
		response.InternalError(w, r, "failed to encode dataset")
		return
	}

	response.CSV(w, r, "intracity.csv", map[string]string{
		"X-Dataset-Requested": strconv.Itoa(ds.Requested),
		"X-Dataset-Rows":      strconv.Itoa(ds.Produced()),
		"X-Dataset-Dropped":   strconv.Itoa(ds.Dropped),
	}, buf.Bytes())
}

// CarrierDataset handles POST /v1/admin/datasets/carriers - the top choice of
// every stored route under each single priority and fragility.
func (h *AdminHandler) CarrierDataset(w http.ResponseWriter, r *http.Request) {
	routes, err := h.carriers.Routes(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list routes")
		response.InternalError(w, r, "failed to list routes")
		return
	}

	rows, err := synth.CarrierExamples(r.Context(), h.carriers, routes)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to rank carriers")
		response.InternalError(w, r, "failed to rank carriers")
		return
	}

	items := make([]models.CarrierExample, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.CarrierExample{
			Origin:           row.Origin,
			Destination:      row.Destination,
			Priority:         string(row.Priority),
			Fragility:        string(row.Fragility),
			TopChoiceCompany: row.TopChoice,
		})
	}
	response.JSON(w, r, http.StatusOK, models.CarrierDatasetResponse{
		GeneratedAt: models.Timestamp(time.Now()),
		Items:       items,
	})
}

// EnqueueJob handles POST /v1/admin/jobs - enqueue a background job.
func (h *AdminHandler) EnqueueJob(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		response.ServiceUnavailable(w, r, "job queue is not configured")
		return
	}

	var input models.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		response.BadRequest(w, r, "validation failed", errs)
		return
	}

	msg := worker.JobMessage{
		JobID:         uuid.NewString(),
		JobType:       worker.JobType(input.JobType),
		Iterations:    input.Iterations,
		Seed:          input.Seed,
		FitClassifier: input.FitClassifier,
		RequestedBy:   middleware.GetSubject(r.Context()),
	}

	messageID, err := h.publisher.Publish(r.Context(), msg)
	if err != nil {
		h.logger.Error().Err(err).Str("job_type", string(msg.JobType)).Msg("failed to enqueue job")
		response.ServiceUnavailable(w, r, "failed to enqueue job")
		return
	}

	h.logger.Info().
		Str("job_id", msg.JobID).
		Str("job_type", string(msg.JobType)).
		Str("requested_by", msg.RequestedBy).
		Msg("job enqueued")

	response.Accepted(w, r, "", models.JobAccepted{
		JobID:     msg.JobID,
		JobType:   input.JobType,
		MessageID: messageID,
		QueuedAt:  models.Timestamp(time.Now()),
	})
}
