package dto

import (
	"encoding/json"
	"time"
)

// StartSessionDTO opens a course session, optionally on a specific lesson
type StartSessionDTO struct {
	LessonID *int `json:"lesson_id,omitempty" validate:"omitempty,gte=0"`
}

// SelectLessonDTO moves the session cursor
type SelectLessonDTO struct {
	LessonID *int `json:"lesson_id" validate:"required"`
}

// QuizAnswerDTO is one answer; its JSON type depends on the question type:
// option index, boolean or free text.
type QuizAnswerDTO struct {
	QuestionID *int            `json:"question_id" validate:"required"`
	Answer     json.RawMessage `json:"answer" validate:"required"`
}

// SubmitQuizDTO carries answers merged into the draft before grading
type SubmitQuizDTO struct {
	Answers []QuizAnswerDTO `json:"answers" validate:"omitempty,dive"`
}

// NoteUpdateDTO replaces the learner's note on a lesson
type NoteUpdateDTO struct {
	Content *string `json:"content" validate:"required,max=20000"`
}

// SessionMutationDTO is returned by every session command
type SessionMutationDTO struct {
	Applied bool               `json:"applied"`
	Session SessionResponseDTO `json:"session"`
}

// QuizSubmissionDTO is returned by quiz submission
type QuizSubmissionDTO struct {
	Applied bool               `json:"applied"`
	Result  *QuizResultDTO     `json:"result,omitempty"`
	Session SessionResponseDTO `json:"session"`
}

// IncompleteSubmissionDTO is the 422 body of a quiz submission with
// unanswered questions
type IncompleteSubmissionDTO struct {
	Error   string `json:"error"`
	Missing []int  `json:"missing_question_ids"`
}

// SessionResponseDTO is the full state of a course session
type SessionResponseDTO struct {
	SessionID    string               `json:"session_id"`
	CourseID     string               `json:"course_id"`
	CourseTitle  string               `json:"course_title"`
	Instructor   string               `json:"instructor"`
	State        string               `json:"state"`
	StartedAt    time.Time            `json:"started_at"`
	CompletedAt  *time.Time           `json:"completed_at,omitempty"`
	ActiveLesson *LessonDTO           `json:"active_lesson"`
	HasPrevious  bool                 `json:"has_previous"`
	IsLast       bool                 `json:"is_last"`
	Progress     ProgressDTO          `json:"progress"`
	Chapters     []ChapterProgressDTO `json:"chapters"`
	Lessons      []LessonStatusDTO    `json:"lessons"`
	Quiz         *QuizAttemptDTO      `json:"quiz,omitempty"`
}

type ProgressDTO struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Rounded   int     `json:"rounded_percent"`
}

type ChapterProgressDTO struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type LessonStatusDTO struct {
	ID        int    `json:"id"`
	ChapterID int    `json:"chapter_id"`
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Type      string `json:"type"`
	Completed bool   `json:"completed"`
	Unlocked  bool   `json:"unlocked"`
	Active    bool   `json:"active"`
}

// LessonDTO is the lesson under the cursor
type LessonDTO struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Duration    string        `json:"duration"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	VideoURL    string        `json:"video_url,omitempty"`
	Completed   bool          `json:"completed"`
	Quiz        []QuestionDTO `json:"quiz,omitempty"`
	Resources   []string      `json:"resources,omitempty"`
}

// QuestionDTO hides the correct answer until the attempt is submitted
type QuestionDTO struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer any      `json:"correct_answer,omitempty"`
}

type QuizAttemptDTO struct {
	LessonID  int            `json:"lesson_id"`
	Answers   map[string]any `json:"answers"`
	Submitted bool           `json:"submitted"`
	Result    *QuizResultDTO `json:"result,omitempty"`
}

type QuizResultDTO struct {
	Correct  int             `json:"correct"`
	Total    int             `json:"total"`
	Outcomes map[string]bool `json:"outcomes"`
}

// ResourceLinkDTO is a downloadable lesson resource
type ResourceLinkDTO struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type LessonNoteDTO struct {
	CourseID string `json:"course_id"`
	LessonID int    `json:"lesson_id"`
	Content  string `json:"content"`
}
