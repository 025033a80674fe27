package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courseplayer/internal/config"
	"courseplayer/internal/logger"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const retention = 7 * 24 * time.Hour

// Provisions the course completion topic on the local Pub/Sub emulator:
// the topic, a dead-letter topic, and a pull subscription on each.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system environment variables.")
	}

	logger := logger.New()
	logger.Info().Msg("Starting Pub/Sub setup for the local environment.")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.GCPProjectID == "" {
		logger.Fatal().Msg("GCP_PROJECT_ID is not set in the environment.")
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set for local environment.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Msgf("Failed to close pubsub client: %v", err)
		}
	}()

	topicID := cfg.PubSubCompletionTopic
	resetTopic(ctx, client, logger, topicID)
	if err := provision(ctx, client, logger, topicID); err != nil {
		logger.Fatal().Msgf("Failed to provision %s: %v", topicID, err)
	}

	logger.Info().Msg("Pub/Sub setup for local environment complete.")
}

// resetTopic deletes the topic, its dead-letter topic and every subscription
// attached to either. Only meant for the emulator.
func resetTopic(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, topicID string) {
	owned := map[string]bool{topicID: true, topicID + "-dlq": true}

	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Fatal().Msgf("Failed to list subscriptions: %v", err)
		}
		subCfg, err := sub.Config(ctx)
		if err != nil {
			logger.Warn().Msgf("Failed to read subscription %s: %v", sub.ID(), err)
			continue
		}
		if subCfg.Topic == nil || !owned[subCfg.Topic.ID()] {
			continue
		}
		logger.Info().Msgf("Deleting subscription: %s", sub.ID())
		if err := sub.Delete(ctx); err != nil {
			logger.Warn().Msgf("Failed to delete subscription %s: %v", sub.ID(), err)
		}
	}

	for id := range owned {
		t := client.Topic(id)
		exists, err := t.Exists(ctx)
		if err != nil || !exists {
			continue
		}
		logger.Info().Msgf("Deleting topic: %s", id)
		if err := t.Delete(ctx); err != nil {
			logger.Warn().Msgf("Failed to delete topic %s: %v", id, err)
		}
	}
}

func provision(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, topicID string) error {
	dlqTopic, err := createTopicIfNotExists(ctx, client, logger, topicID+"-dlq")
	if err != nil {
		return err
	}
	mainTopic, err := createTopicIfNotExists(ctx, client, logger, topicID)
	if err != nil {
		return err
	}

	if err := createSubscriptionIfNotExists(ctx, client, logger, topicID+"-sub", pubsub.SubscriptionConfig{
		Topic:            mainTopic,
		AckDeadline:      60 * time.Second,
		ExpirationPolicy: 31 * 24 * time.Hour,
		RetryPolicy: &pubsub.RetryPolicy{
			MinimumBackoff: 10 * time.Second,
			MaximumBackoff: 600 * time.Second,
		},
		DeadLetterPolicy: &pubsub.DeadLetterPolicy{
			DeadLetterTopic:     dlqTopic.String(),
			MaxDeliveryAttempts: 5,
		},
	}); err != nil {
		return err
	}
	return createSubscriptionIfNotExists(ctx, client, logger, topicID+"-dlq-sub", pubsub.SubscriptionConfig{
		Topic:            dlqTopic,
		AckDeadline:      60 * time.Second,
		ExpirationPolicy: 31 * 24 * time.Hour,
	})
}

func createTopicIfNotExists(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, topicID string) (*pubsub.Topic, error) {
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking topic %s: %w", topicID, err)
	}
	if exists {
		logger.Info().Msgf("Topic %s already exists", topicID)
		return topic, nil
	}
	logger.Info().Msgf("Creating topic: %s with %v retention", topicID, retention)
	return client.CreateTopicWithConfig(ctx, topicID, &pubsub.TopicConfig{RetentionDuration: retention})
}

func createSubscriptionIfNotExists(ctx context.Context, client *pubsub.Client, logger zerolog.Logger, subID string, subCfg pubsub.SubscriptionConfig) error {
	sub := client.Subscription(subID)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return fmt.Errorf("checking subscription %s: %w", subID, err)
	}
	if exists {
		logger.Info().Msgf("Subscription %s already exists", subID)
		return nil
	}
	logger.Info().Msgf("Creating pull subscription %s on %s", subID, strings.TrimPrefix(subCfg.Topic.String(), "projects/"))
	if _, err := client.CreateSubscription(ctx, subID, subCfg); err != nil {
		return fmt.Errorf("creating subscription %s: %w", subID, err)
	}
	return nil
}
