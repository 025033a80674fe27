package handler

import (
	"strconv"

	"courseplayer/internal/api/v1/dto"
	"courseplayer/internal/model"
	"courseplayer/internal/progress"
	"courseplayer/internal/service"
)

func toCourseSummaryDTO(c model.CourseSummary) dto.CourseSummaryDTO {
	return dto.CourseSummaryDTO{
		ID:           c.ID,
		Title:        c.Title,
		Instructor:   c.Instructor,
		Description:  c.Description,
		Category:     c.Category,
		Level:        c.Level,
		Duration:     c.Duration,
		ChapterCount: c.ChapterCount,
		LessonCount:  c.LessonCount,
	}
}

func toCourseDetailDTO(c *model.Course) dto.CourseDetailDTO {
	out := dto.CourseDetailDTO{
		CourseSummaryDTO: toCourseSummaryDTO(c.Summary()),
		Chapters:         make([]dto.ChapterOutlineDTO, 0, len(c.Chapters)),
	}
	for _, ch := range c.Chapters {
		outline := dto.ChapterOutlineDTO{ID: ch.ID, Title: ch.Title, Lessons: make([]dto.LessonOutlineDTO, 0, len(ch.Lessons))}
		for _, l := range ch.Lessons {
			outline.Lessons = append(outline.Lessons, dto.LessonOutlineDTO{
				ID:       l.ID,
				Title:    l.Title,
				Duration: l.DurationLabel,
				Type:     string(l.Kind),
			})
		}
		out.Chapters = append(out.Chapters, outline)
	}
	return out
}

func toProgressDTO(p progress.Progress) dto.ProgressDTO {
	return dto.ProgressDTO{Completed: p.Completed, Total: p.Total, Percent: p.Percent, Rounded: p.Rounded}
}

func toSessionDTO(v *service.SessionView) dto.SessionResponseDTO {
	out := dto.SessionResponseDTO{
		SessionID:   v.ID,
		CourseID:    v.CourseID,
		CourseTitle: v.CourseTitle,
		Instructor:  v.Instructor,
		State:       string(v.State),
		StartedAt:   v.StartedAt,
		CompletedAt: v.CompletedAt,
		HasPrevious: v.HasPrevious,
		IsLast:      v.IsLast,
		Progress:    toProgressDTO(v.Progress),
		Chapters:    make([]dto.ChapterProgressDTO, 0, len(v.Chapters)),
		Lessons:     make([]dto.LessonStatusDTO, 0, len(v.Lessons)),
	}
	for _, ch := range v.Chapters {
		out.Chapters = append(out.Chapters, dto.ChapterProgressDTO{
			ID: ch.ID, Title: ch.Title, Completed: ch.Completed, Total: ch.Total,
		})
	}
	for _, l := range v.Lessons {
		out.Lessons = append(out.Lessons, dto.LessonStatusDTO{
			ID:        l.ID,
			ChapterID: l.ChapterID,
			Title:     l.Title,
			Duration:  l.DurationLabel,
			Type:      string(l.Kind),
			Completed: l.Completed,
			Unlocked:  l.Unlocked,
			Active:    l.Active,
		})
	}
	if v.Active != nil {
		submitted := v.Quiz != nil && v.Quiz.Submitted
		out.ActiveLesson = toLessonDTO(*v.Active, submitted)
		if v.Quiz != nil {
			out.Quiz = toQuizAttemptDTO(v.Active.ID, *v.Quiz)
		}
	}
	return out
}

// toLessonDTO reveals correct answers only once the quiz has been submitted.
func toLessonDTO(l model.Lesson, revealAnswers bool) *dto.LessonDTO {
	out := &dto.LessonDTO{
		ID:          l.ID,
		Title:       l.Title,
		Duration:    l.DurationLabel,
		Type:        string(l.Kind),
		Description: l.Description,
		VideoURL:    l.VideoURL,
		Completed:   l.Completed,
	}
	for _, q := range l.Quiz {
		qd := dto.QuestionDTO{ID: q.ID, Type: string(q.Kind), Question: q.Prompt, Options: q.Options}
		if revealAnswers {
			qd.CorrectAnswer = q.CorrectAnswer.Raw()
		}
		out.Quiz = append(out.Quiz, qd)
	}
	for _, r := range l.Resources {
		out.Resources = append(out.Resources, r.Name)
	}
	return out
}

func toQuizAttemptDTO(lessonID int, a progress.Attempt) *dto.QuizAttemptDTO {
	out := &dto.QuizAttemptDTO{
		LessonID:  lessonID,
		Answers:   make(map[string]any, len(a.Answers)),
		Submitted: a.Submitted,
	}
	for qid, ans := range a.Answers {
		out.Answers[strconv.Itoa(qid)] = ans.Raw()
	}
	if a.Submitted {
		out.Result = toQuizResultDTO(a.Result)
	}
	return out
}

func toQuizResultDTO(r progress.QuizResult) *dto.QuizResultDTO {
	out := &dto.QuizResultDTO{Correct: r.Correct, Total: r.Total, Outcomes: make(map[string]bool, len(r.Outcomes))}
	for qid, ok := range r.Outcomes {
		out.Outcomes[strconv.Itoa(qid)] = ok
	}
	return out
}

func toLearningSessionDTO(s service.SessionSummary) dto.LearningSessionDTO {
	return dto.LearningSessionDTO{
		SessionID:      s.ID,
		CourseID:       s.CourseID,
		CourseTitle:    s.CourseTitle,
		Instructor:     s.Instructor,
		State:          string(s.State),
		Progress:       toProgressDTO(s.Progress),
		ActiveLessonID: s.ActiveLessonID,
		LastAccessed:   s.LastAccessed,
	}
}
