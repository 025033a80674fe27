package progress

import (
	"math"

	"courseplayer/internal/model"
)

// Progress is the aggregate completion of a course.
type Progress struct {
	Completed int
	Total     int
	Percent   float64
	Rounded   int
}

func newProgress(done, total int) Progress {
	p := Progress{Completed: done, Total: total}
	if total > 0 {
		p.Percent = float64(done) / float64(total) * 100
		p.Rounded = int(math.Round(p.Percent))
	}
	return p
}

// LessonStatus is the per-lesson view used by the curriculum sidebar.
type LessonStatus struct {
	ID            int
	ChapterID     int
	Title         string
	DurationLabel string
	Kind          model.LessonKind
	Completed     bool
	Unlocked      bool
	Active        bool
}

// ChapterStatus carries the completed/total counters of a chapter.
type ChapterStatus struct {
	ID        int
	Title     string
	Completed int
	Total     int
}

// Snapshot is a read-only rendering of the whole session state.
type Snapshot struct {
	CourseID    string
	CourseTitle string
	Instructor  string
	State       State
	Active      *model.Lesson
	HasPrevious bool
	IsLast      bool
	Progress    Progress
	Lessons     []LessonStatus
	Chapters    []ChapterStatus
	Quiz        *Attempt
}

// Snapshot renders the current state. The returned value shares nothing
// with the engine.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		CourseID:    e.course.ID,
		CourseTitle: e.course.Title,
		Instructor:  e.course.Instructor,
		State:       e.state,
		Progress:    e.Progress(),
		Lessons:     make([]LessonStatus, 0, len(e.lessons)),
		Chapters:    make([]ChapterStatus, len(e.course.Chapters)),
	}
	for i, ch := range e.course.Chapters {
		s.Chapters[i] = ChapterStatus{ID: ch.ID, Title: ch.Title, Total: len(ch.Lessons)}
	}
	for pos, l := range e.lessons {
		ci := e.chapterOf[pos]
		if e.completed[pos] {
			s.Chapters[ci].Completed++
		}
		s.Lessons = append(s.Lessons, LessonStatus{
			ID:            l.ID,
			ChapterID:     e.course.Chapters[ci].ID,
			Title:         l.Title,
			DurationLabel: l.DurationLabel,
			Kind:          l.Kind,
			Completed:     e.completed[pos],
			Unlocked:      pos <= e.frontier,
			Active:        pos == e.active,
		})
	}
	if e.active >= 0 {
		l := e.lessonAt(e.active)
		s.Active = &l
		s.HasPrevious = e.active > 0
		s.IsLast = e.active == len(e.lessons)-1
		if a, ok := e.Attempt(l.ID); ok {
			s.Quiz = &a
		}
	}
	return s
}
