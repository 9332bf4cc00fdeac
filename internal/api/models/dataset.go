package models

import "fmt"

// MaxSyncIterations caps synchronous dataset synthesis over HTTP. Larger runs
// go through the job queue.
const MaxSyncIterations = 5000

// IntracityDatasetRequest is the request body for synthesizing an intra-city
// training dataset.
type IntracityDatasetRequest struct {
	Iterations int    `json:"iterations"`
	Seed       uint64 `json:"seed"`
	Workers    int    `json:"workers,omitempty"`
}

// Validate checks the request bounds. Zero values select defaults.
func (r *IntracityDatasetRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Iterations < 0 || r.Iterations > MaxSyncIterations {
		errs = append(errs, FieldError{
			Field:   "iterations",
			Message: fmt.Sprintf("must be between 1 and %d", MaxSyncIterations),
			Code:    "OUT_OF_RANGE",
		})
	}
	if r.Workers < 0 {
		errs = append(errs, FieldError{
			Field:   "workers",
			Message: "must not be negative",
			Code:    "OUT_OF_RANGE",
		})
	}
	return errs
}

// CarrierExample is one row of the carrier top-choice dataset.
type CarrierExample struct {
	Origin           string `json:"origin"`
	Destination      string `json:"destination"`
	Priority         string `json:"priority"`
	Fragility        string `json:"fragility"`
	TopChoiceCompany string `json:"topChoiceCompany"`
}

// CarrierDatasetResponse is the response for the carrier top-choice dataset.
type CarrierDatasetResponse struct {
	GeneratedAt Timestamp        `json:"generatedAt"`
	Items       []CarrierExample `json:"items"`
}

// JobType identifies a background job.
type JobType string

const (
	JobTypeIntracityDataset JobType = "intracity_dataset"
	JobTypeCarrierDataset   JobType = "carrier_dataset"
	JobTypeProfileRefresh   JobType = "profile_refresh"
	JobTypeHealthCheck      JobType = "health_check"
)

// JobTypes lists the job types the worker accepts.
var JobTypes = []JobType{JobTypeIntracityDataset, JobTypeCarrierDataset, JobTypeProfileRefresh, JobTypeHealthCheck}

// JobRequest is the request body for enqueueing a background job.
type JobRequest struct {
	JobType       JobType `json:"jobType"`
	Iterations    int     `json:"iterations,omitempty"`
	Seed          *uint64 `json:"seed,omitempty"`
	FitClassifier bool    `json:"fitClassifier,omitempty"`
}

// Validate checks the job type and bounds.
func (r *JobRequest) Validate() []FieldError {
	var errs []FieldError
	known := false
	for _, t := range JobTypes {
		if r.JobType == t {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, FieldError{
			Field:   "jobType",
			Message: "must be one of intracity_dataset, carrier_dataset, profile_refresh, health_check",
			Code:    "INVALID",
		})
	}
	if r.Iterations < 0 {
		errs = append(errs, FieldError{
			Field:   "iterations",
			Message: "must not be negative",
			Code:    "OUT_OF_RANGE",
		})
	}
	return errs
}

// JobAccepted is the response for an enqueued job.
type JobAccepted struct {
	JobID     string    `json:"jobId"`
	JobType   JobType   `json:"jobType"`
	MessageID string    `json:"messageId"`
	QueuedAt  Timestamp `json:"queuedAt"`
}
