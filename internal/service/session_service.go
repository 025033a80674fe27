package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"courseplayer/internal/certificate"
	"courseplayer/internal/model"
	"courseplayer/internal/progress"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrCourseNotCompleted = errors.New("course not completed")
)

// IncompleteSubmissionError lists the quiz questions still unanswered when
// a submission is attempted.
type IncompleteSubmissionError struct {
	Missing []int
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("%s: unanswered questions %v", progress.ErrIncompleteSubmission, e.Missing)
}

func (e *IncompleteSubmissionError) Unwrap() error { return progress.ErrIncompleteSubmission }

// SessionView is the state of a session returned to callers.
type SessionView struct {
	ID          string
	UserID      string
	StartedAt   time.Time
	CompletedAt *time.Time
	progress.Snapshot
}

// SessionSummary is one row of the learner's dashboard.
type SessionSummary struct {
	ID             string
	CourseID       string
	CourseTitle    string
	Instructor     string
	State          progress.State
	Progress       progress.Progress
	ActiveLessonID int
	LastAccessed   time.Time
}

// QuizSubmission is the outcome of SubmitQuiz. Applied is false when the
// lesson is not an unlocked quiz or the attempt was already submitted; in the
// latter case Result carries the stored grade.
type QuizSubmission struct {
	Applied bool
	Result  progress.QuizResult
	Session *SessionView
}

// SessionLesson is an unlocked lesson looked up through a session.
type SessionLesson struct {
	CourseID string
	Lesson   model.Lesson
}

// SessionService manages the learners' course sessions
type SessionService interface {
	// StartSession opens a new session on a course, optionally deep linked to
	// a lesson
	StartSession(ctx context.Context, learner model.Learner, courseID string, lessonID *int) (*SessionView, error)
	GetSession(ctx context.Context, userID, sessionID string) (*SessionView, error)
	// ListSessions returns the learner's open sessions, most recently used first
	ListSessions(ctx context.Context, userID string) ([]SessionSummary, error)

	SelectLesson(ctx context.Context, userID, sessionID string, lessonID int) (*SessionView, bool, error)
	Advance(ctx context.Context, userID, sessionID string) (*SessionView, bool, error)
	GoBack(ctx context.Context, userID, sessionID string) (*SessionView, bool, error)

	AnswerQuestion(ctx context.Context, userID, sessionID string, lessonID, questionID int, ans model.Answer) (*SessionView, bool, error)
	SubmitQuiz(ctx context.Context, userID, sessionID string, lessonID int, answers map[int]model.Answer) (*QuizSubmission, error)
	ResetQuiz(ctx context.Context, userID, sessionID string, lessonID int) (*SessionView, bool, error)

	// Lesson returns an unlocked lesson of the session's course, or an error
	// wrapping progress.ErrNotFound / progress.ErrLocked
	Lesson(ctx context.Context, userID, sessionID string, lessonID int) (*SessionLesson, error)
	// Certificate renders the completion certificate of a completed session
	Certificate(ctx context.Context, learner model.Learner, sessionID string) ([]byte, error)

	// Drain waits for in-flight completion notifications
	Drain(ctx context.Context) error
}

// SessionOptions tunes a SessionService.
type SessionOptions struct {
	TTL           time.Duration
	NotifyTimeout time.Duration
	Clock         func() time.Time
}

type session struct {
	id        string
	learner   model.Learner
	courseID  string
	startedAt time.Time
	lastSeen  atomic.Int64

	mu          sync.Mutex
	engine      *progress.Engine
	completedAt time.Time
}

type sessionService struct {
	courses   CourseService
	renderer  certificate.Renderer
	notifiers []CompletionNotifier
	logger    zerolog.Logger

	ttl           time.Duration
	notifyTimeout time.Duration
	now           func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session

	inflight sync.WaitGroup
}

// NewSessionService creates a new SessionService
func NewSessionService(courses CourseService, renderer certificate.Renderer, notifiers []CompletionNotifier, opts SessionOptions, logger zerolog.Logger) SessionService {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	timeout := opts.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &sessionService{
		courses:       courses,
		renderer:      renderer,
		notifiers:     notifiers,
		logger:        logger,
		ttl:           opts.TTL,
		notifyTimeout: timeout,
		now:           now,
		sessions:      make(map[string]*session),
	}
}

func (s *sessionService) StartSession(ctx context.Context, learner model.Learner, courseID string, lessonID *int) (*SessionView, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		id:        uuid.NewString(),
		learner:   learner,
		courseID:  course.ID,
		startedAt: s.now(),
	}
	opts := []progress.Option{
		progress.WithClock(s.now),
		progress.WithCompletionListener(func(ev progress.CompletionEvent) {
			// runs under sess.mu inside Advance
			sess.completedAt = ev.CompletedAt
			s.dispatch(model.CourseCompletion{
				SessionID:    sess.id,
				UserID:       learner.UserID,
				LearnerName:  learner.DisplayName(),
				CourseID:     ev.CourseID,
				CourseTitle:  ev.CourseTitle,
				Instructor:   ev.Instructor,
				TotalLessons: ev.TotalLessons,
				CompletedAt:  ev.CompletedAt,
			})
		}),
	}
	if lessonID != nil {
		opts = append(opts, progress.WithStartLesson(*lessonID))
	}
	engine, err := progress.New(course, opts...)
	if err != nil {
		return nil, fmt.Errorf("starting session on course %s: %w", courseID, err)
	}
	sess.engine = engine
	sess.lastSeen.Store(sess.startedAt.UnixNano())

	s.evictExpired()
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Debug().
		Str("session_id", sess.id).
		Str("user_id", learner.UserID).
		Str("course_id", course.ID).
		Msg("Session started")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

func (s *sessionService) GetSession(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	v, _, err := s.with(userID, sessionID, func(*progress.Engine) bool { return false })
	return v, err
}

func (s *sessionService) ListSessions(ctx context.Context, userID string) ([]SessionSummary, error) {
	s.evictExpired()

	s.mu.RLock()
	owned := make([]*session, 0)
	for _, sess := range s.sessions {
		if sess.learner.UserID == userID {
			owned = append(owned, sess)
		}
	}
	s.mu.RUnlock()

	out := make([]SessionSummary, 0, len(owned))
	for _, sess := range owned {
		sess.mu.Lock()
		e := sess.engine
		row := SessionSummary{
			ID:           sess.id,
			CourseID:     sess.courseID,
			CourseTitle:  e.Course().Title,
			Instructor:   e.Course().Instructor,
			State:        e.State(),
			Progress:     e.Progress(),
			LastAccessed: time.Unix(0, sess.lastSeen.Load()),
		}
		if l, ok := e.ActiveLesson(); ok {
			row.ActiveLessonID = l.ID
		}
		sess.mu.Unlock()
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastAccessed.Equal(out[j].LastAccessed) {
			return out[i].LastAccessed.After(out[j].LastAccessed)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *sessionService) SelectLesson(ctx context.Context, userID, sessionID string, lessonID int) (*SessionView, bool, error) {
	return s.with(userID, sessionID, func(e *progress.Engine) bool { return e.SelectLesson(lessonID) })
}

func (s *sessionService) Advance(ctx context.Context, userID, sessionID string) (*SessionView, bool, error) {
	return s.with(userID, sessionID, func(e *progress.Engine) bool { return e.Advance() })
}

func (s *sessionService) GoBack(ctx context.Context, userID, sessionID string) (*SessionView, bool, error) {
	return s.with(userID, sessionID, func(e *progress.Engine) bool { return e.GoBack() })
}

func (s *sessionService) AnswerQuestion(ctx context.Context, userID, sessionID string, lessonID, questionID int, ans model.Answer) (*SessionView, bool, error) {
	return s.with(userID, sessionID, func(e *progress.Engine) bool {
		return e.AnswerQuestion(lessonID, questionID, ans)
	})
}

// SubmitQuiz rejects submissions that would leave a question unanswered with
// an *IncompleteSubmissionError. A repeated submission is not checked again;
// it reports the stored result with Applied false.
func (s *sessionService) SubmitQuiz(ctx context.Context, userID, sessionID string, lessonID int, answers map[int]model.Answer) (*QuizSubmission, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	e := sess.engine
	if a, ok := e.Attempt(lessonID); !ok || !a.Submitted {
		if missing := e.MissingAnswers(lessonID, answers); len(missing) > 0 {
			return nil, &IncompleteSubmissionError{Missing: missing}
		}
	}
	res, applied := e.SubmitQuiz(lessonID, answers)
	return &QuizSubmission{Applied: applied, Result: res, Session: sess.view()}, nil
}

func (s *sessionService) ResetQuiz(ctx context.Context, userID, sessionID string, lessonID int) (*SessionView, bool, error) {
	return s.with(userID, sessionID, func(e *progress.Engine) bool { return e.ResetQuiz(lessonID) })
}

func (s *sessionService) Lesson(ctx context.Context, userID, sessionID string, lessonID int) (*SessionLesson, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.engine.Check(lessonID); err != nil {
		return nil, fmt.Errorf("lesson %d: %w", lessonID, err)
	}
	l, _ := sess.engine.Lesson(lessonID)
	return &SessionLesson{CourseID: sess.courseID, Lesson: l}, nil
}

func (s *sessionService) Certificate(ctx context.Context, learner model.Learner, sessionID string) ([]byte, error) {
	sess, err := s.lookup(learner.UserID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	if sess.engine.State() != progress.StateCompleted {
		sess.mu.Unlock()
		return nil, ErrCourseNotCompleted
	}
	c := certificate.Certificate{
		LearnerName: learner.DisplayName(),
		CourseTitle: sess.engine.Course().Title,
		Instructor:  sess.engine.Course().Instructor,
		CompletedAt: sess.completedAt,
	}
	sess.mu.Unlock()

	png, err := s.renderer.Render(c)
	if err != nil {
		return nil, fmt.Errorf("rendering certificate: %w", err)
	}
	return png, nil
}

func (s *sessionService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// with runs fn on the session's engine under its lock and returns the
// resulting view together with fn's result.
func (s *sessionService) with(userID, sessionID string, fn func(e *progress.Engine) bool) (*SessionView, bool, error) {
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, false, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	applied := fn(sess.engine)
	return sess.view(), applied, nil
}

// lookup finds a live session owned by userID and refreshes its idle timer.
// Sessions of other users are reported as not found.
func (s *sessionService) lookup(userID, sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || sess.learner.UserID != userID {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	sess.lastSeen.Store(now.UnixNano())
	return sess, nil
}

func (s *sessionService) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(time.Unix(0, sess.lastSeen.Load())) > s.ttl
}

func (s *sessionService) evictExpired() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			s.logger.Debug().Str("session_id", id).Msg("Session expired")
		}
	}
}

// dispatch hands the completion to every notifier on its own goroutine.
// Failures are logged and never reach the learner.
func (s *sessionService) dispatch(c model.CourseCompletion) {
	for _, n := range s.notifiers {
		s.inflight.Add(1)
		go func(n CompletionNotifier) {
			defer s.inflight.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
			defer cancel()
			if err := n.Notify(ctx, c); err != nil {
				s.logger.Error().
					Err(err).
					Str("session_id", c.SessionID).
					Str("course_id", c.CourseID).
					Msg("Failed to deliver course completion")
			}
		}(n)
	}
}

// view must be called with sess.mu held.
func (sess *session) view() *SessionView {
	v := &SessionView{
		ID:        sess.id,
		UserID:    sess.learner.UserID,
		StartedAt: sess.startedAt,
		Snapshot:  sess.engine.Snapshot(),
	}
	if !sess.completedAt.IsZero() {
		t := sess.completedAt
		v.CompletedAt = &t
	}
	return v
}
