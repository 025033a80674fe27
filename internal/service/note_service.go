package service

import (
	"context"

	"courseplayer/internal/model"
	"courseplayer/internal/repository"
)

// NoteService defines lesson note operations
// GetNote returns an empty note if none exists
type NoteService interface {
	GetNote(ctx context.Context, userID, courseID string, lessonID int) (*model.LessonNote, error)
	SaveNote(ctx context.Context, userID, courseID string, lessonID int, content string) (*model.LessonNote, error)
}

// noteService is the implementation of NoteService
type noteService struct {
	repo repository.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(repo repository.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) GetNote(ctx context.Context, userID, courseID string, lessonID int) (*model.LessonNote, error) {
	n, err := s.repo.GetNote(ctx, userID, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		n = &model.LessonNote{UserID: userID, CourseID: courseID, LessonID: lessonID}
	}
	return n, nil
}

func (s *noteService) SaveNote(ctx context.Context, userID, courseID string, lessonID int, content string) (*model.LessonNote, error) {
	n := &model.LessonNote{UserID: userID, CourseID: courseID, LessonID: lessonID, Content: content}
	if err := s.repo.SaveNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
