package model

import "time"

// CourseCompletion is published when a learner finishes the last lesson of a
// course in a session.
type CourseCompletion struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	LearnerName  string    `json:"learner_name"`
	CourseID     string    `json:"course_id"`
	CourseTitle  string    `json:"course_title"`
	Instructor   string    `json:"instructor"`
	TotalLessons int       `json:"total_lessons"`
	CompletedAt  time.Time `json:"completed_at"`
}
