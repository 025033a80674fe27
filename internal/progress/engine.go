// Package progress implements the lesson progression state machine of a
// single course session: sequential unlocking, completion tracking, quiz
// grading and the transition to the completed state.
//
// An Engine is owned by exactly one session and is not safe for concurrent
// use; callers serialise access.
package progress

import (
	"errors"
	"fmt"
	"time"

	"courseplayer/internal/model"
)

// State is the lifecycle state of a course session.
type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

var (
	ErrNotFound             = errors.New("lesson not found")
	ErrLocked               = errors.New("lesson is locked")
	ErrIncompleteSubmission = errors.New("quiz submission is incomplete")
	ErrDuplicateLesson      = errors.New("duplicate lesson id")
)

// CompletionEvent is emitted exactly once, when the final lesson of the
// flattened sequence is completed through Advance.
type CompletionEvent struct {
	CourseID     string
	CourseTitle  string
	Instructor   string
	TotalLessons int
	CompletedAt  time.Time
}

// CompletionListener receives the completion event. It is called
// synchronously from Advance and must not block.
type CompletionListener func(CompletionEvent)

// Option configures an Engine.
type Option func(*Engine)

// WithStartLesson activates the given lesson on load if it is unlocked,
// otherwise the last unlocked lesson before it.
func WithStartLesson(lessonID int) Option {
	return func(e *Engine) {
		e.startLesson = &lessonID
	}
}

// WithCompletionListener registers fn for the completion event.
func WithCompletionListener(fn CompletionListener) Option {
	return func(e *Engine) {
		if fn != nil {
			e.listeners = append(e.listeners, fn)
		}
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine owns the flattened lesson sequence of one course and its
// in-memory completion state.
type Engine struct {
	course    *model.Course
	lessons   []model.Lesson
	chapterOf []int       // position -> chapter index
	index     map[int]int // lesson id -> position
	completed []bool

	// frontier is the position of the first incomplete lesson, or
	// len(lessons) when all are completed. Position i is unlocked iff
	// i <= frontier.
	frontier int
	active   int
	state    State

	attempts map[int]*Attempt

	startLesson *int
	listeners   []CompletionListener
	now         func() time.Time
}

// New builds an engine for course. The course is copied; the engine never
// mutates catalog data.
func New(course *model.Course, opts ...Option) (*Engine, error) {
	if course == nil {
		return nil, errors.New("new engine: course is nil")
	}
	c := course.Clone()

	e := &Engine{
		course:   c,
		index:    make(map[int]int),
		active:   -1,
		state:    StateInProgress,
		attempts: make(map[int]*Attempt),
		now:      time.Now,
	}
	for ci, ch := range c.Chapters {
		for _, l := range ch.Lessons {
			if _, dup := e.index[l.ID]; dup {
				return nil, fmt.Errorf("lesson %d: %w", l.ID, ErrDuplicateLesson)
			}
			e.index[l.ID] = len(e.lessons)
			e.lessons = append(e.lessons, l)
			e.chapterOf = append(e.chapterOf, ci)
			e.completed = append(e.completed, l.Completed)
		}
	}
	for _, opt := range opts {
		opt(e)
	}

	e.advanceFrontier()
	if len(e.lessons) > 0 {
		e.active = 0
		if e.startLesson != nil {
			if pos, ok := e.index[*e.startLesson]; ok {
				e.active = min(pos, e.frontier)
			}
		}
	}
	return e, nil
}

// CourseID returns the id of the course the engine was built for.
func (e *Engine) CourseID() string { return e.course.ID }

// Course returns the engine's private copy of the course.
func (e *Engine) Course() *model.Course { return e.course }

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Len returns the number of lessons in the flattened sequence.
func (e *Engine) Len() int { return len(e.lessons) }

// ActiveLesson returns the lesson under the cursor, or false for a course
// without lessons.
func (e *Engine) ActiveLesson() (model.Lesson, bool) {
	if e.active < 0 {
		return model.Lesson{}, false
	}
	return e.lessonAt(e.active), true
}

// Lesson returns the lesson with the given id and its current completion.
func (e *Engine) Lesson(lessonID int) (model.Lesson, bool) {
	pos, ok := e.index[lessonID]
	if !ok {
		return model.Lesson{}, false
	}
	return e.lessonAt(pos), true
}

// Check explains why a lesson cannot be opened: ErrNotFound, ErrLocked or nil.
func (e *Engine) Check(lessonID int) error {
	pos, ok := e.index[lessonID]
	if !ok {
		return ErrNotFound
	}
	if pos > e.frontier {
		return ErrLocked
	}
	return nil
}

// IsUnlocked reports whether the learner may open the lesson. The first
// lesson is always unlocked; any other lesson is unlocked iff every lesson
// before it is completed. Unknown ids are never unlocked.
func (e *Engine) IsUnlocked(lessonID int) bool {
	return e.Check(lessonID) == nil
}

// IsCompleted reports the completion flag of a lesson.
func (e *Engine) IsCompleted(lessonID int) bool {
	pos, ok := e.index[lessonID]
	return ok && e.completed[pos]
}

// SelectLesson moves the cursor to lessonID. Unknown or locked lessons are
// ignored and false is returned.
func (e *Engine) SelectLesson(lessonID int) bool {
	if e.Check(lessonID) != nil {
		return false
	}
	e.active = e.index[lessonID]
	return true
}

// MarkComplete flips the lesson's completion flag. It is idempotent and
// reports whether the state changed. Unknown or locked lessons are ignored.
func (e *Engine) MarkComplete(lessonID int) bool {
	if e.Check(lessonID) != nil {
		return false
	}
	return e.markAt(e.index[lessonID])
}

// Advance is the "Next / Complete" action: it completes the active lesson if
// needed, then either moves to the next lesson or, on the last lesson,
// transitions to StateCompleted. It reports whether anything changed.
func (e *Engine) Advance() bool {
	if e.active < 0 {
		return false
	}
	changed := e.markAt(e.active)

	if e.active == len(e.lessons)-1 {
		if e.state == StateCompleted {
			return changed
		}
		e.state = StateCompleted
		e.emit()
		return true
	}

	e.active++
	return true
}

// GoBack moves the cursor to the previous lesson; no-op at the first one.
func (e *Engine) GoBack() bool {
	if e.active <= 0 {
		return false
	}
	e.active--
	return true
}

// Progress returns the aggregate completion of the course.
func (e *Engine) Progress() Progress {
	var done int
	for _, c := range e.completed {
		if c {
			done++
		}
	}
	return newProgress(done, len(e.lessons))
}

func (e *Engine) markAt(pos int) bool {
	if e.completed[pos] {
		return false
	}
	e.completed[pos] = true
	e.advanceFrontier()
	return true
}

func (e *Engine) advanceFrontier() {
	for e.frontier < len(e.lessons) && e.completed[e.frontier] {
		e.frontier++
	}
}

func (e *Engine) lessonAt(pos int) model.Lesson {
	l := e.lessons[pos]
	l.Completed = e.completed[pos]
	return l
}

func (e *Engine) emit() {
	ev := CompletionEvent{
		CourseID:     e.course.ID,
		CourseTitle:  e.course.Title,
		Instructor:   e.course.Instructor,
		TotalLessons: len(e.lessons),
		CompletedAt:  e.now(),
	}
	for _, fn := range e.listeners {
		fn(ev)
	}
}
