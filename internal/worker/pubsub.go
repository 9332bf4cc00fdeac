package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// Outcome is the acknowledgement decision for a delivered message.
type Outcome int

const (
	// Ack removes the message from the subscription.
	Ack Outcome = iota
	// Nack asks Pub/Sub to redeliver the message.
	Nack
)

func (o Outcome) String() string {
	if o == Ack {
		return "ack"
	}
	return "nack"
}

// JobRunner runs a decoded job.
type JobRunner interface {
	Run(ctx context.Context, msg JobMessage) (*JobResult, error)
}

// Dispatcher decodes job messages and runs them. It holds no Pub/Sub state,
// so it can be driven by any delivery mechanism.
type Dispatcher struct {
	runner JobRunner
	logger zerolog.Logger
}

// NewDispatcher creates a dispatcher for runner.
func NewDispatcher(runner JobRunner, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{runner: runner, logger: logger}
}

// Handle runs the job in data. Malformed payloads and unknown job types are
// acked so they are not redelivered forever; failed jobs are nacked.
func (d *Dispatcher) Handle(ctx context.Context, messageID string, data []byte) Outcome {
	logger := d.logger.With().Str("message_id", messageID).Logger()

	msg, err := ParseJobMessage(data)
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		return Ack
	}
	if !msg.JobType.Known() {
		logger.Warn().Str("job_type", string(msg.JobType)).Msg("unknown job type")
		return Ack
	}

	if _, err := d.runner.Run(ctx, msg); err != nil {
		if errors.Is(err, ErrUnknownJobType) {
			return Ack
		}
		logger.Error().Err(err).Str("job_type", string(msg.JobType)).Msg("job failed")
		return Nack
	}
	return Ack
}

// PubSubHandler receives job messages from a Pub/Sub subscription.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	dispatcher       *Dispatcher
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Dispatcher       *Dispatcher
	Logger           zerolog.Logger
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	if cfg.Dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Dataset jobs are CPU bound and long; keep few in flight.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 30 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		dispatcher:       cfg.Dispatcher,
		logger:           cfg.Logger,
	}, nil
}

// Start processes messages until ctx is cancelled.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		start := time.Now()
		h.logger.Debug().
			Str("message_id", msg.ID).
			Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
			Msg("received pubsub message")

		outcome := h.dispatcher.Handle(ctx, msg.ID, msg.Data)
		if outcome == Ack {
			msg.Ack()
		} else {
			msg.Nack()
		}

		h.logger.Info().
			Str("message_id", msg.ID).
			Stringer("outcome", outcome).
			Dur("duration", time.Since(start)).
			Msg("message handled")
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}
