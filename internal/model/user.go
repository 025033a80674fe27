package model

// Learner is the identity supplied by the authentication context. It is used
// for session ownership and display only (e.g. the certificate name).
type Learner struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// DisplayName returns the best human-readable name for the learner.
func (l Learner) DisplayName() string {
	switch {
	case l.Name != "":
		return l.Name
	case l.Email != "":
		return l.Email
	}
	return "Learner"
}

// LessonNote is a learner's free-form note attached to a lesson.
type LessonNote struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	LessonID int    `json:"lesson_id"`
	Content  string `json:"content"`
}
