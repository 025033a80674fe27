package dto

import "time"

// UserResponseDTO is the authenticated learner
type UserResponseDTO struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// LearningSessionDTO is one row of the "My Learning" dashboard
type LearningSessionDTO struct {
	SessionID      string      `json:"session_id"`
	CourseID       string      `json:"course_id"`
	CourseTitle    string      `json:"course_title"`
	Instructor     string      `json:"instructor"`
	State          string      `json:"state"`
	Progress       ProgressDTO `json:"progress"`
	ActiveLessonID int         `json:"active_lesson_id"`
	LastAccessed   time.Time   `json:"last_accessed"`
}
