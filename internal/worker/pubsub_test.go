package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/worker"
)

type stubRunner struct {
	calls []worker.JobMessage
	err   error
}

func (s *stubRunner) Run(_ context.Context, msg worker.JobMessage) (*worker.JobResult, error) {
	s.calls = append(s.calls, msg)
	if s.err != nil {
		return nil, s.err
	}
	return &worker.JobResult{JobID: msg.JobID, JobType: msg.JobType}, nil
}

func TestDispatcher_Handle(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		runErr    error
		want      worker.Outcome
		wantCalls int
	}{
		{"successful job", `{"job_type":"intracity_dataset","iterations":10}`, nil, worker.Ack, 1},
		{"failed job is redelivered", `{"job_type":"carrier_dataset"}`, errors.New("disk full"), worker.Nack, 1},
		{"unknown job type", `{"job_type":"provider_refresh"}`, nil, worker.Ack, 0},
		{"malformed payload", `{not json`, nil, worker.Ack, 0},
		{"negative iterations", `{"job_type":"intracity_dataset","iterations":-1}`, nil, worker.Ack, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{err: tt.runErr}
			d := worker.NewDispatcher(runner, zerolog.Nop())

			got := d.Handle(context.Background(), "msg-1", []byte(tt.data))
			assert.Equal(t, tt.want, got)
			assert.Len(t, runner.calls, tt.wantCalls)
		})
	}
}

func TestDispatcher_PassesMessageFields(t *testing.T) {
	runner := &stubRunner{}
	d := worker.NewDispatcher(runner, zerolog.Nop())

	got := d.Handle(context.Background(), "msg-2",
		[]byte(`{"job_id":"j-9","job_type":"intracity_dataset","iterations":500,"seed":0,"fit_classifier":true,"requested_by":"ops"}`))
	require.Equal(t, worker.Ack, got)
	require.Len(t, runner.calls, 1)

	msg := runner.calls[0]
	assert.Equal(t, "j-9", msg.JobID)
	assert.Equal(t, 500, msg.Iterations)
	require.NotNil(t, msg.Seed)
	assert.Zero(t, *msg.Seed)
	assert.True(t, msg.FitClassifier)
	assert.Equal(t, "ops", msg.RequestedBy)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ack", worker.Ack.String())
	assert.Equal(t, "nack", worker.Nack.String())
}

func TestJobType_Known(t *testing.T) {
	for _, jt := range []worker.JobType{
		worker.JobIntracityDataset, worker.JobCarrierDataset, worker.JobProfileRefresh, worker.JobHealthCheck,
	} {
		assert.True(t, jt.Known(), jt)
	}
	assert.False(t, worker.JobType("").Known())
}
