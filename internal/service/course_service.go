package service

import (
	"context"
	"errors"
	"fmt"

	"courseplayer/internal/model"
	"courseplayer/internal/repository"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseService defines the interface for catalog operations
type CourseService interface {
	// ListCourses returns the catalog listing
	ListCourses(ctx context.Context) ([]model.CourseSummary, error)
	// GetCourseByID retrieves a course with its curriculum
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
}

// courseService is the implementation of CourseService
type courseService struct {
	repo repository.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) ListCourses(ctx context.Context) ([]model.CourseSummary, error) {
	return s.repo.ListCourses(ctx)
}

// GetCourseByID returns ErrCourseNotFound for unknown ids
func (s *courseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	c, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("loading course %s: %w", courseID, err)
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}
