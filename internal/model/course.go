package model

// LessonKind determines which renderer and validator applies to a lesson.
type LessonKind string

const (
	LessonVideo   LessonKind = "video"
	LessonProject LessonKind = "project"
	LessonQuiz    LessonKind = "quiz"
)

// Course represents a course in the catalog together with its curriculum.
type Course struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Instructor  string    `db:"instructor" json:"instructor"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Level       string    `db:"level" json:"level"`
	Duration    string    `db:"duration_label" json:"duration"`
	Chapters    []Chapter `json:"chapters"`
}

// CourseSummary is the catalog listing entry for a course.
type CourseSummary struct {
	ID           string `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Instructor   string `db:"instructor" json:"instructor"`
	Description  string `db:"description" json:"description"`
	Category     string `db:"category" json:"category"`
	Level        string `db:"level" json:"level"`
	Duration     string `db:"duration_label" json:"duration"`
	ChapterCount int    `db:"chapter_count" json:"chapter_count"`
	LessonCount  int    `db:"lesson_count" json:"lesson_count"`
}

// Chapter groups an ordered run of lessons.
type Chapter struct {
	ID      int      `db:"id" json:"id"`
	Title   string   `db:"title" json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson is a single step of a course.
type Lesson struct {
	ID            int        `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	DurationLabel string     `db:"duration_label" json:"duration"`
	Kind          LessonKind `db:"kind" json:"type"`
	Description   string     `db:"description" json:"description"`
	VideoURL      string     `db:"video_url" json:"video_url,omitempty"`
	Quiz          []Question `db:"quiz" json:"quiz,omitempty"`
	Resources     []Resource `db:"resources" json:"resources,omitempty"`
	Completed     bool       `db:"completed" json:"completed"`
}

// Resource describes a downloadable file attached to a lesson.
// Key names an object in the resource bucket; URL is a static fallback.
type Resource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Flatten returns the global lesson sequence: chapters in declaration order,
// lessons in order within each chapter.
func (c *Course) Flatten() []Lesson {
	var n int
	for _, ch := range c.Chapters {
		n += len(ch.Lessons)
	}
	lessons := make([]Lesson, 0, n)
	for _, ch := range c.Chapters {
		lessons = append(lessons, ch.Lessons...)
	}
	return lessons
}

// LessonCount returns the number of lessons across all chapters.
func (c *Course) LessonCount() int {
	var n int
	for _, ch := range c.Chapters {
		n += len(ch.Lessons)
	}
	return n
}

// Summary builds the catalog listing entry for the course.
func (c *Course) Summary() CourseSummary {
	return CourseSummary{
		ID:           c.ID,
		Title:        c.Title,
		Instructor:   c.Instructor,
		Description:  c.Description,
		Category:     c.Category,
		Level:        c.Level,
		Duration:     c.Duration,
		ChapterCount: len(c.Chapters),
		LessonCount:  c.LessonCount(),
	}
}

// Clone returns a deep copy of the course so callers can never mutate
// catalog data through shared slices.
func (c *Course) Clone() *Course {
	out := *c
	out.Chapters = make([]Chapter, len(c.Chapters))
	for i, ch := range c.Chapters {
		lessons := make([]Lesson, len(ch.Lessons))
		for j, l := range ch.Lessons {
			l.Quiz = append([]Question(nil), l.Quiz...)
			for k := range l.Quiz {
				l.Quiz[k].Options = append([]string(nil), l.Quiz[k].Options...)
			}
			l.Resources = append([]Resource(nil), l.Resources...)
			lessons[j] = l
		}
		ch.Lessons = lessons
		out.Chapters[i] = ch
	}
	return &out
}
