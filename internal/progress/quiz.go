package progress

import (
	"maps"
	"slices"

	"courseplayer/internal/model"
)

// Attempt is the learner's current attempt at a quiz lesson.
type Attempt struct {
	Answers   map[int]model.Answer
	Submitted bool
	Result    QuizResult
}

// QuizResult is the outcome of grading an attempt.
type QuizResult struct {
	Correct  int
	Total    int
	Outcomes map[int]bool // question id -> correct
}

// Grade scores answers against the quiz. Answers for unknown question ids are
// ignored; unanswered questions count as incorrect.
func Grade(quiz []model.Question, answers map[int]model.Answer) QuizResult {
	res := QuizResult{Total: len(quiz), Outcomes: make(map[int]bool, len(quiz))}
	for _, q := range quiz {
		a, ok := answers[q.ID]
		correct := ok && q.Grade(a)
		res.Outcomes[q.ID] = correct
		if correct {
			res.Correct++
		}
	}
	return res
}

// Attempt returns a copy of the quiz attempt for a lesson, if any.
func (e *Engine) Attempt(lessonID int) (Attempt, bool) {
	a, ok := e.attempts[lessonID]
	if !ok {
		return Attempt{}, false
	}
	return Attempt{
		Answers:   maps.Clone(a.Answers),
		Submitted: a.Submitted,
		Result: QuizResult{
			Correct:  a.Result.Correct,
			Total:    a.Result.Total,
			Outcomes: maps.Clone(a.Result.Outcomes),
		},
	}, true
}

// AnswerQuestion records a draft answer. It is rejected for lessons that are
// not unlocked quizzes, for unknown questions, for malformed answers and
// while the attempt is submitted.
func (e *Engine) AnswerQuestion(lessonID, questionID int, ans model.Answer) bool {
	quiz, ok := e.quizFor(lessonID)
	if !ok {
		return false
	}
	q, ok := findQuestion(quiz, questionID)
	if !ok || !q.Accepts(ans) {
		return false
	}
	a := e.attemptFor(lessonID)
	if a.Submitted {
		return false
	}
	a.Answers[questionID] = ans
	return true
}

// SubmitQuiz merges answers into the draft, grades the attempt and locks it
// until ResetQuiz. Submitting an already submitted attempt returns the stored
// result without regrading. It never marks the lesson complete.
func (e *Engine) SubmitQuiz(lessonID int, answers map[int]model.Answer) (QuizResult, bool) {
	quiz, ok := e.quizFor(lessonID)
	if !ok {
		return QuizResult{}, false
	}
	a := e.attemptFor(lessonID)
	if a.Submitted {
		return a.Result, false
	}
	for qid, ans := range answers {
		if q, ok := findQuestion(quiz, qid); ok && q.Accepts(ans) {
			a.Answers[qid] = ans
		}
	}
	a.Result = Grade(quiz, a.Answers)
	a.Submitted = true
	return a.Result, true
}

// ResetQuiz clears the answers and the submitted flag of a quiz lesson.
func (e *Engine) ResetQuiz(lessonID int) bool {
	if _, ok := e.quizFor(lessonID); !ok {
		return false
	}
	if _, ok := e.attempts[lessonID]; !ok {
		return false
	}
	delete(e.attempts, lessonID)
	return true
}

// MissingAnswers lists the question ids of a quiz that would be unanswered
// after merging answers into the current draft, in quiz order.
func (e *Engine) MissingAnswers(lessonID int, answers map[int]model.Answer) []int {
	quiz, ok := e.quizFor(lessonID)
	if !ok {
		return nil
	}
	var draft map[int]model.Answer
	if a, ok := e.attempts[lessonID]; ok {
		draft = a.Answers
	}
	var missing []int
	for _, q := range quiz {
		if ans, ok := answers[q.ID]; ok && q.Accepts(ans) {
			continue
		}
		if _, ok := draft[q.ID]; ok {
			continue
		}
		missing = append(missing, q.ID)
	}
	return missing
}

func (e *Engine) quizFor(lessonID int) ([]model.Question, bool) {
	if e.Check(lessonID) != nil {
		return nil, false
	}
	l := e.lessons[e.index[lessonID]]
	if l.Kind != model.LessonQuiz {
		return nil, false
	}
	return l.Quiz, true
}

func (e *Engine) attemptFor(lessonID int) *Attempt {
	a, ok := e.attempts[lessonID]
	if !ok {
		a = &Attempt{Answers: make(map[int]model.Answer)}
		e.attempts[lessonID] = a
	}
	return a
}

func findQuestion(quiz []model.Question, id int) (model.Question, bool) {
	i := slices.IndexFunc(quiz, func(q model.Question) bool { return q.ID == id })
	if i < 0 {
		return model.Question{}, false
	}
	return quiz[i], true
}
