package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"courseplayer/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CourseRepository is the read-only course catalog provider
type CourseRepository interface {
	// ListCourses returns the catalog listing, ordered by course id
	ListCourses(ctx context.Context) ([]model.CourseSummary, error)
	// GetCourseByID returns the full course with its curriculum, or nil when
	// the id is unknown
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
}

// --- in-memory catalog ---

type memoryCourseRepo struct {
	mu      sync.RWMutex
	courses map[string]*model.Course
}

// NewMemoryCourseRepo creates a CourseRepository over a fixed set of courses
func NewMemoryCourseRepo(courses []model.Course) CourseRepository {
	r := &memoryCourseRepo{courses: make(map[string]*model.Course, len(courses))}
	for i := range courses {
		r.courses[courses[i].ID] = courses[i].Clone()
	}
	return r
}

func (r *memoryCourseRepo) ListCourses(ctx context.Context) ([]model.CourseSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.CourseSummary, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryCourseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[courseID]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

// --- postgres catalog ---

type courseRepo struct {
	pool *pgxpool.Pool
}

// NewCourseRepo creates a Postgres-backed CourseRepository
func NewCourseRepo(pool *pgxpool.Pool) CourseRepository {
	return &courseRepo{pool: pool}
}

// ListCourses retrieves the catalog listing with chapter and lesson counts
func (r *courseRepo) ListCourses(ctx context.Context) ([]model.CourseSummary, error) {
	query := `
		SELECT c.id, c.title, c.instructor, c.description, c.category, c.level, c.duration_label,
		       (SELECT COUNT(*) FROM chapters ch WHERE ch.course_id = c.id),
		       (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id)
		FROM courses c
		ORDER BY c.id ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	courses := []model.CourseSummary{}
	for rows.Next() {
		var s model.CourseSummary
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Instructor,
			&s.Description,
			&s.Category,
			&s.Level,
			&s.Duration,
			&s.ChapterCount,
			&s.LessonCount,
		); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course rows: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a course and assembles its chapters and lessons in
// curriculum order
func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `
		SELECT id, title, instructor, description, category, level, duration_label
		FROM courses
		WHERE id = $1
	`
	var c model.Course
	err := r.pool.QueryRow(ctx, query, courseID).Scan(
		&c.ID,
		&c.Title,
		&c.Instructor,
		&c.Description,
		&c.Category,
		&c.Level,
		&c.Duration,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting course %s: %w", courseID, err)
	}

	chapters, err := r.getChapters(ctx, courseID)
	if err != nil {
		return nil, err
	}
	c.Chapters = chapters
	return &c, nil
}

func (r *courseRepo) getChapters(ctx context.Context, courseID string) ([]model.Chapter, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title
		FROM chapters
		WHERE course_id = $1
		ORDER BY position ASC
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying chapters for course %s: %w", courseID, err)
	}
	var chapters []model.Chapter
	byID := make(map[int]int)
	for rows.Next() {
		var ch model.Chapter
		if err := rows.Scan(&ch.ID, &ch.Title); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning chapter row: %w", err)
		}
		byID[ch.ID] = len(chapters)
		chapters = append(chapters, ch)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chapter rows: %w", err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT chapter_id, id, title, duration_label, kind, description, video_url, quiz, resources
		FROM lessons
		WHERE course_id = $1
		ORDER BY position ASC
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying lessons for course %s: %w", courseID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			chapterID      int
			l              model.Lesson
			quiz, resource []byte
		)
		if err := rows.Scan(
			&chapterID,
			&l.ID,
			&l.Title,
			&l.DurationLabel,
			&l.Kind,
			&l.Description,
			&l.VideoURL,
			&quiz,
			&resource,
		); err != nil {
			return nil, fmt.Errorf("scanning lesson row: %w", err)
		}
		if len(quiz) > 0 {
			if err := json.Unmarshal(quiz, &l.Quiz); err != nil {
				return nil, fmt.Errorf("decoding quiz of lesson %d: %w", l.ID, err)
			}
		}
		if len(resource) > 0 {
			if err := json.Unmarshal(resource, &l.Resources); err != nil {
				return nil, fmt.Errorf("decoding resources of lesson %d: %w", l.ID, err)
			}
		}
		i, ok := byID[chapterID]
		if !ok {
			return nil, fmt.Errorf("lesson %d references unknown chapter %d", l.ID, chapterID)
		}
		chapters[i].Lessons = append(chapters[i].Lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lesson rows: %w", err)
	}
	return chapters, nil
}
