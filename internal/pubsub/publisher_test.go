package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"courseplayer/internal/config"
	"courseplayer/internal/logger"
	"courseplayer/internal/model"

	ps "cloud.google.com/go/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	sent []captured
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, captured{topic: topic, payload: payload})
	return "msg-1", nil
}

func sampleCompletion() model.CourseCompletion {
	return model.CourseCompletion{
		SessionID:    "4f1c6a9e-0000-4000-8000-000000000001",
		UserID:       "user-1",
		LearnerName:  "Ada Lovelace",
		CourseID:     "1",
		CourseTitle:  "Complete Web Development Bootcamp",
		Instructor:   "Dr. Angela Yu",
		TotalLessons: 7,
		CompletedAt:  time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCompletionPublisherPayload(t *testing.T) {
	fake := &fakePublisher{}
	p := NewCompletionPublisher(fake, "course-completed", logger.Nop())

	require.NoError(t, p.Notify(context.Background(), sampleCompletion()))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "course-completed", fake.sent[0].topic)

	var body map[string]any
	require.NoError(t, json.Unmarshal(fake.sent[0].payload, &body))
	assert.Equal(t, "course.completed", body["type"])
	assert.Equal(t, "1", body["course_id"])
	assert.Equal(t, "user-1", body["user_id"])
	assert.EqualValues(t, 7, body["total_lessons"])
	assert.Equal(t, "2026-05-01T10:00:00Z", body["completed_at"])
}

func TestCompletionPublisherPropagatesErrors(t *testing.T) {
	fake := &fakePublisher{err: errors.New("unavailable")}
	p := NewCompletionPublisher(fake, "course-completed", logger.Nop())
	assert.Error(t, p.Notify(context.Background(), sampleCompletion()))
}

func TestNewPublisherInvalidProject(t *testing.T) {
	cfg := &config.Config{GCPProjectID: ""}
	if _, err := NewPublisher(context.Background(), cfg); err == nil {
		t.Fatal("expected error when project ID is empty")
	}
}

func TestPublishCompletionWithEmulator(t *testing.T) {
	emulator := os.Getenv("PUBSUB_EMULATOR_HOST")
	if emulator == "" {
		t.Skip("PUBSUB_EMULATOR_HOST is not set, skip emulator integration test")
	}

	ctx := context.Background()
	cfg := &config.Config{GCPProjectID: "test-project"}
	pub, err := NewPublisher(ctx, cfg)
	require.NoError(t, err)
	defer pub.Close()

	topicName := "course-completed-test"
	topic, err := pub.client.CreateTopic(ctx, topicName)
	require.NoError(t, err)
	sub, err := pub.client.CreateSubscription(ctx, "course-completed-test-sub", ps.SubscriptionConfig{Topic: topic})
	require.NoError(t, err)

	p := NewCompletionPublisher(pub, topicName, logger.Nop())
	require.NoError(t, p.Notify(ctx, sampleCompletion()))

	recvCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	c := make(chan []byte, 1)
	go func() {
		sub.Receive(recvCtx, func(ctx context.Context, m *ps.Message) {
			c <- m.Data
			m.Ack()
			cancel()
		})
	}()

	select {
	case data := <-c:
		var ev CourseCompletedEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, CourseCompletedType, ev.Type)
		assert.Equal(t, "1", ev.CourseID)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message from emulator subscription")
	}
}
