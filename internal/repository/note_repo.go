package repository

import (
	"context"
	"fmt"
	"sync"

	"courseplayer/internal/model"
)

// NoteRepository defines lesson note operations
// GetNote returns nil if the learner has no note for the lesson
type NoteRepository interface {
	GetNote(ctx context.Context, userID, courseID string, lessonID int) (*model.LessonNote, error)
	SaveNote(ctx context.Context, note *model.LessonNote) error
}

type noteKey struct {
	userID   string
	courseID string
	lessonID int
}

// noteRepository keeps notes in process memory
type noteRepository struct {
	mu    sync.RWMutex
	notes map[noteKey]model.LessonNote
}

// NewNoteRepository creates a new in-memory NoteRepository
func NewNoteRepository() NoteRepository {
	return &noteRepository{notes: make(map[noteKey]model.LessonNote)}
}

func (r *noteRepository) GetNote(ctx context.Context, userID, courseID string, lessonID int) (*model.LessonNote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[noteKey{userID, courseID, lessonID}]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *noteRepository) SaveNote(ctx context.Context, note *model.LessonNote) error {
	if note == nil || note.UserID == "" {
		return fmt.Errorf("saving note: missing owner")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes[noteKey{note.UserID, note.CourseID, note.LessonID}] = *note
	return nil
}
