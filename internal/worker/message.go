package worker

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownJobType indicates a message whose job type the worker does not run.
var ErrUnknownJobType = errors.New("unknown job type")

// JobType identifies a background job.
type JobType string

const (
	JobIntracityDataset JobType = "intracity_dataset"
	JobCarrierDataset   JobType = "carrier_dataset"
	JobProfileRefresh   JobType = "profile_refresh"
	JobHealthCheck      JobType = "health_check"
)

// Known reports whether the worker runs jobs of this type.
func (t JobType) Known() bool {
	switch t {
	case JobIntracityDataset, JobCarrierDataset, JobProfileRefresh, JobHealthCheck:
		return true
	}
	return false
}

// JobMessage is the Pub/Sub payload of a job.
type JobMessage struct {
	JobID         string  `json:"job_id,omitempty"`
	JobType       JobType `json:"job_type"`
	Iterations    int     `json:"iterations,omitempty"`
	Seed          *uint64 `json:"seed,omitempty"`
	FitClassifier bool    `json:"fit_classifier,omitempty"`
	RequestedBy   string  `json:"requested_by,omitempty"`
}

// ParseJobMessage decodes a message payload. Unknown job types decode
// successfully; callers decide what to do with them.
func ParseJobMessage(data []byte) (JobMessage, error) {
	var msg JobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return JobMessage{}, fmt.Errorf("decoding job message: %w", err)
	}
	if msg.Iterations < 0 {
		return JobMessage{}, fmt.Errorf("decoding job message: negative iterations %d", msg.Iterations)
	}
	return msg, nil
}
