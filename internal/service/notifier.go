package service

import (
	"context"

	"courseplayer/internal/model"

	"github.com/rs/zerolog"
)

// CompletionNotifier is told about every finished course. Implementations
// run on their own goroutine and must respect ctx.
type CompletionNotifier interface {
	Notify(ctx context.Context, c model.CourseCompletion) error
}

// LogNotifier records completions in the service log.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, c model.CourseCompletion) error {
	n.logger.Info().
		Str("session_id", c.SessionID).
		Str("user_id", c.UserID).
		Str("course_id", c.CourseID).
		Int("total_lessons", c.TotalLessons).
		Time("completed_at", c.CompletedAt).
		Msg("Course completed")
	return nil
}
