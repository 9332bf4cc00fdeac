package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
)

// PublisherConfig holds configuration for the job publisher.
type PublisherConfig struct {
	ProjectID string
	Topic     string
}

// Publisher enqueues job messages on a Pub/Sub topic.
type Publisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
}

// NewPublisher creates a publisher for cfg.Topic.
func NewPublisher(ctx context.Context, cfg PublisherConfig) (*Publisher, error) {
	if cfg.Topic == "" {
		return nil, errors.New("topic is required")
	}
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}
	return &Publisher{
		client:    client,
		publisher: client.Publisher(cfg.Topic),
	}, nil
}

// Publish enqueues msg and returns the server-assigned message ID. A job ID is
// assigned when msg has none.
func (p *Publisher) Publish(ctx context.Context, msg JobMessage) (string, error) {
	if !msg.JobType.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownJobType, msg.JobType)
	}
	if msg.JobID == "" {
		msg.JobID = uuid.NewString()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("encoding job message: %w", err)
	}

	res := p.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"job_type": string(msg.JobType),
			"job_id":   msg.JobID,
		},
	})
	id, err := res.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publishing job message: %w", err)
	}
	return id, nil
}

// Close flushes pending messages and closes the client.
func (p *Publisher) Close() error {
	p.publisher.Stop()
	return p.client.Close()
}
