package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"courseplayer/internal/config"
	"courseplayer/internal/model"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
)

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher creates a new PubSubPublisher using the GCP project from config.
// PUBSUB_EMULATOR_HOST is honoured by the client library.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}

// CourseCompletedEvent is the message body on the completion topic.
type CourseCompletedEvent struct {
	Type string `json:"type"`
	model.CourseCompletion
}

const CourseCompletedType = "course.completed"

// CompletionPublisher forwards course completions to a topic.
type CompletionPublisher struct {
	publisher Publisher
	topic     string
	logger    zerolog.Logger
}

func NewCompletionPublisher(publisher Publisher, topic string, logger zerolog.Logger) *CompletionPublisher {
	return &CompletionPublisher{publisher: publisher, topic: topic, logger: logger}
}

// Notify publishes c and waits for the broker acknowledgement or ctx.
func (p *CompletionPublisher) Notify(ctx context.Context, c model.CourseCompletion) error {
	payload, err := json.Marshal(CourseCompletedEvent{Type: CourseCompletedType, CourseCompletion: c})
	if err != nil {
		return fmt.Errorf("marshalling completion event: %w", err)
	}
	id, err := p.publisher.Publish(ctx, p.topic, payload)
	if err != nil {
		return err
	}
	p.logger.Info().
		Str("message_id", id).
		Str("topic", p.topic).
		Str("session_id", c.SessionID).
		Msg("Published course completion")
	return nil
}
