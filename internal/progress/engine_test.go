package progress

import (
	"testing"
	"time"

	"courseplayer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearCourse(n int) *model.Course {
	lessons := make([]model.Lesson, n)
	for i := range lessons {
		lessons[i] = model.Lesson{ID: i + 1, Title: "Lesson", Kind: model.LessonVideo}
	}
	return &model.Course{ID: "c1", Title: "Course", Instructor: "Dr. Angela Yu", Chapters: []model.Chapter{{ID: 1, Lessons: lessons}}}
}

func chapteredCourse() *model.Course {
	return &model.Course{
		ID:    "web",
		Title: "Web",
		Chapters: []model.Chapter{
			{ID: 1, Title: "Getting Started", Lessons: []model.Lesson{{ID: 10}, {ID: 11}}},
			{ID: 2, Title: "Empty"},
			{ID: 3, Title: "JavaScript", Lessons: []model.Lesson{{ID: 20}, {ID: 21}, {ID: 22}}},
		},
	}
}

func newEngine(t *testing.T, c *model.Course, opts ...Option) *Engine {
	t.Helper()
	e, err := New(c, opts...)
	require.NoError(t, err)
	return e
}

func TestFirstLessonAlwaysUnlocked(t *testing.T) {
	c := linearCourse(3)
	e := newEngine(t, c)
	assert.True(t, e.IsUnlocked(1))

	c.Chapters[0].Lessons[1].Completed = true
	e = newEngine(t, c)
	assert.True(t, e.IsUnlocked(1))
}

func TestUnlockFollowsCompletedPrefix(t *testing.T) {
	e := newEngine(t, linearCourse(3))

	assert.False(t, e.IsUnlocked(2))
	assert.False(t, e.IsUnlocked(3))

	require.True(t, e.MarkComplete(1))
	assert.True(t, e.IsUnlocked(2))
	assert.False(t, e.IsUnlocked(3))

	require.True(t, e.MarkComplete(2))
	assert.True(t, e.IsUnlocked(3))
}

func TestUnlockAcrossChapters(t *testing.T) {
	e := newEngine(t, chapteredCourse())

	assert.False(t, e.IsUnlocked(20))
	e.MarkComplete(10)
	e.MarkComplete(11)
	assert.True(t, e.IsUnlocked(20))
	assert.False(t, e.IsUnlocked(21))
}

func TestUnlockPropertyWithSeededFlags(t *testing.T) {
	for mask := 0; mask < 1<<5; mask++ {
		c := linearCourse(5)
		for i := range c.Chapters[0].Lessons {
			c.Chapters[0].Lessons[i].Completed = mask&(1<<i) != 0
		}
		e := newEngine(t, c)
		lessons := c.Flatten()
		for i := range lessons {
			want := true
			for _, prev := range lessons[:i] {
				want = want && prev.Completed
			}
			assert.Equal(t, want, e.IsUnlocked(lessons[i].ID), "mask %05b lesson %d", mask, lessons[i].ID)
		}
	}
}

func TestIsUnlockedUnknownLesson(t *testing.T) {
	e := newEngine(t, linearCourse(2))
	assert.False(t, e.IsUnlocked(99))
	assert.ErrorIs(t, e.Check(99), ErrNotFound)
	assert.ErrorIs(t, e.Check(2), ErrLocked)
	assert.NoError(t, e.Check(1))
}

func TestMarkCompleteIsIdempotent(t *testing.T) {
	once := newEngine(t, linearCourse(3))
	twice := newEngine(t, linearCourse(3))

	assert.True(t, once.MarkComplete(1))
	assert.True(t, twice.MarkComplete(1))
	assert.False(t, twice.MarkComplete(1))

	assert.Equal(t, once.Snapshot(), twice.Snapshot())
}

func TestMarkCompleteIgnoresLockedAndUnknown(t *testing.T) {
	e := newEngine(t, linearCourse(3))
	assert.False(t, e.MarkComplete(3))
	assert.False(t, e.MarkComplete(42))
	assert.Equal(t, 0, e.Progress().Completed)
}

func TestSelectLesson(t *testing.T) {
	e := newEngine(t, linearCourse(3))

	assert.False(t, e.SelectLesson(3), "locked lesson must be ignored")
	assert.False(t, e.SelectLesson(7), "unknown lesson must be ignored")
	active, _ := e.ActiveLesson()
	assert.Equal(t, 1, active.ID)

	e.MarkComplete(1)
	assert.True(t, e.SelectLesson(2))
	active, _ = e.ActiveLesson()
	assert.Equal(t, 2, active.ID)
	assert.False(t, active.Completed, "selecting must not complete")
}

func TestAdvanceCompletesCourse(t *testing.T) {
	const n = 5
	var events []CompletionEvent
	at := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	e := newEngine(t, linearCourse(n),
		WithCompletionListener(func(ev CompletionEvent) { events = append(events, ev) }),
		WithClock(func() time.Time { return at }),
	)

	for i := 0; i < n; i++ {
		assert.Equal(t, StateInProgress, e.State())
		assert.True(t, e.Advance())
	}

	assert.Equal(t, StateCompleted, e.State())
	p := e.Progress()
	assert.Equal(t, n, p.Completed)
	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, 100, p.Rounded)

	active, ok := e.ActiveLesson()
	require.True(t, ok)
	assert.Equal(t, n, active.ID, "cursor must stay on the last lesson")

	require.Len(t, events, 1)
	assert.Equal(t, CompletionEvent{CourseID: "c1", CourseTitle: "Course", Instructor: "Dr. Angela Yu", TotalLessons: n, CompletedAt: at}, events[0])
}

func TestAdvanceOnLastLessonEmitsOnce(t *testing.T) {
	var count int
	e := newEngine(t, linearCourse(2), WithCompletionListener(func(CompletionEvent) { count++ }))

	e.Advance()
	e.Advance()
	e.Advance()
	e.Advance()

	assert.Equal(t, 1, count)
	assert.Equal(t, StateCompleted, e.State())

	// review after completion does not leave the terminal state
	assert.True(t, e.GoBack())
	assert.True(t, e.Advance())
	assert.Equal(t, StateCompleted, e.State())
	assert.Equal(t, 1, count)
}

func TestAdvanceMovesInReviewMode(t *testing.T) {
	c := linearCourse(3)
	c.Chapters[0].Lessons[0].Completed = true
	e := newEngine(t, c)

	assert.True(t, e.Advance())
	active, _ := e.ActiveLesson()
	assert.Equal(t, 2, active.ID)
	assert.Equal(t, 1, e.Progress().Completed)
}

func TestAdvanceDoesNotUnlockBeyondNext(t *testing.T) {
	e := newEngine(t, linearCourse(4))
	e.Advance()

	assert.True(t, e.IsUnlocked(2))
	assert.False(t, e.IsUnlocked(3))
	assert.False(t, e.IsCompleted(2))
}

func TestGoBack(t *testing.T) {
	e := newEngine(t, linearCourse(3))
	assert.False(t, e.GoBack(), "no-op at the first lesson")

	e.Advance()
	e.Advance()
	require.True(t, e.GoBack())
	active, _ := e.ActiveLesson()
	assert.Equal(t, 2, active.ID)
	assert.Equal(t, 2, e.Progress().Completed, "going back keeps completion")
}

func TestEmptyCourse(t *testing.T) {
	e := newEngine(t, &model.Course{ID: "empty"})

	p := e.Progress()
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0.0, p.Percent)

	_, ok := e.ActiveLesson()
	assert.False(t, ok)
	assert.False(t, e.Advance())
	assert.False(t, e.GoBack())
	assert.False(t, e.SelectLesson(1))
	assert.Equal(t, StateInProgress, e.State())
	assert.Nil(t, e.Snapshot().Active)
}

func TestDuplicateLessonIDs(t *testing.T) {
	c := chapteredCourse()
	c.Chapters[2].Lessons[0].ID = 10
	_, err := New(c)
	assert.ErrorIs(t, err, ErrDuplicateLesson)
}

func TestStartLessonDeepLink(t *testing.T) {
	c := linearCourse(5)
	c.Chapters[0].Lessons[0].Completed = true
	c.Chapters[0].Lessons[1].Completed = true

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"unlocked lesson", 2, 2},
		{"frontier lesson", 3, 3},
		{"locked falls back to last unlocked before it", 5, 3},
		{"unknown falls back to first", 99, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, c, WithStartLesson(tt.requested))
			active, ok := e.ActiveLesson()
			require.True(t, ok)
			assert.Equal(t, tt.want, active.ID)
		})
	}
}

func TestEngineDoesNotMutateCatalogCourse(t *testing.T) {
	c := linearCourse(2)
	e := newEngine(t, c)
	e.Advance()
	assert.False(t, c.Chapters[0].Lessons[0].Completed)
}

func TestSnapshotChapterProgress(t *testing.T) {
	e := newEngine(t, chapteredCourse())
	e.Advance()
	e.Advance()
	e.Advance()

	s := e.Snapshot()
	require.Len(t, s.Chapters, 3)
	assert.Equal(t, ChapterStatus{ID: 1, Title: "Getting Started", Completed: 2, Total: 2}, s.Chapters[0])
	assert.Equal(t, ChapterStatus{ID: 2, Title: "Empty", Completed: 0, Total: 0}, s.Chapters[1])
	assert.Equal(t, ChapterStatus{ID: 3, Title: "JavaScript", Completed: 1, Total: 3}, s.Chapters[2])

	require.NotNil(t, s.Active)
	assert.Equal(t, 21, s.Active.ID)
	assert.True(t, s.HasPrevious)
	assert.False(t, s.IsLast)
	assert.Equal(t, 60, s.Progress.Rounded)

	var unlocked []int
	for _, l := range s.Lessons {
		if l.Unlocked {
			unlocked = append(unlocked, l.ID)
		}
	}
	assert.Equal(t, []int{10, 11, 20, 21}, unlocked)
}
