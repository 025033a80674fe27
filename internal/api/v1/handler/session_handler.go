package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"courseplayer/internal/api/v1/dto"
	"courseplayer/internal/model"
	"courseplayer/internal/progress"
	"courseplayer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SessionHandler handles course session endpoints
type SessionHandler struct {
	sessionService  service.SessionService
	resourceService service.ResourceService
	noteService     service.NoteService
	validate        *validator.Validate
	logger          zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(
	sessionService service.SessionService,
	resourceService service.ResourceService,
	noteService service.NoteService,
	validate *validator.Validate,
	logger zerolog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		resourceService: resourceService,
		noteService:     noteService,
		validate:        validate,
		logger:          logger,
	}
}

// RegisterRoutes mounts session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Post("/courses/{courseId}/sessions", h.startSession)
		r.Route("/sessions/{sessionId}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Post("/select", h.selectLesson)
			r.Post("/advance", h.advance)
			r.Post("/back", h.goBack)
			r.Get("/certificate", h.getCertificate)
			r.Route("/lessons/{lessonId}", func(r chi.Router) {
				r.Put("/answers", h.answerQuestion)
				r.Post("/quiz", h.submitQuiz)
				r.Delete("/quiz", h.resetQuiz)
				r.Get("/resources", h.getResources)
				r.Get("/notes", h.getNote)
				r.Put("/notes", h.saveNote)
			})
		})
	})
}

// startSession godoc
// @Summary Start a course session
// @Description Opens a learning session on a course. lesson_id deep links to a lesson; a locked lesson falls back to the last unlocked one before it.
// @Tags sessions
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param session body dto.StartSessionDTO false "Session start request"
// @Success 201 {object} dto.SessionResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Course not found"
// @Router /courses/{courseId}/sessions [post]
func (h *SessionHandler) startSession(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	var req dto.StartSessionDTO
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	v, err := h.sessionService.StartSession(r.Context(), learner, chi.URLParam(r, "courseId"), req.LessonID)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to start session")
		return
	}
	respondJSON(w, http.StatusCreated, toSessionDTO(v))
}

// getSession godoc
// @Summary Get a session
// @Description Returns the full state of a learning session.
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionResponseDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Session not found"
// @Router /sessions/{sessionId} [get]
func (h *SessionHandler) getSession(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	v, err := h.sessionService.GetSession(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"))
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to retrieve session")
		return
	}
	respondJSON(w, http.StatusOK, toSessionDTO(v))
}

// selectLesson godoc
// @Summary Select a lesson
// @Description Moves the cursor to an unlocked lesson. Locked or unknown lessons are ignored (applied=false).
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param lesson body dto.SelectLessonDTO true "Lesson selection"
// @Success 200 {object} dto.SessionMutationDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 404 {string} string "Session not found"
// @Router /sessions/{sessionId}/select [post]
func (h *SessionHandler) selectLesson(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	var req dto.SelectLessonDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	v, applied, err := h.sessionService.SelectLesson(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"), *req.LessonID)
	h.respondMutation(w, v, applied, err)
}

// advance godoc
// @Summary Complete and advance
// @Description Marks the active lesson complete and moves to the next one; on the last lesson the course becomes completed.
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionMutationDTO
// @Failure 404 {string} string "Session not found"
// @Router /sessions/{sessionId}/advance [post]
func (h *SessionHandler) advance(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	v, applied, err := h.sessionService.Advance(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"))
	h.respondMutation(w, v, applied, err)
}

// goBack godoc
// @Summary Previous lesson
// @Description Moves the cursor back one lesson; no-op on the first lesson.
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionMutationDTO
// @Failure 404 {string} string "Session not found"
// @Router /sessions/{sessionId}/back [post]
func (h *SessionHandler) goBack(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	v, applied, err := h.sessionService.GoBack(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"))
	h.respondMutation(w, v, applied, err)
}

// answerQuestion godoc
// @Summary Record a draft answer
// @Description Stores an answer for one quiz question. Ignored once the quiz is submitted or when the lesson is not an unlocked quiz.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param lessonId path int true "Lesson ID"
// @Param answer body dto.QuizAnswerDTO true "Answer"
// @Success 200 {object} dto.SessionMutationDTO
// @Failure 400 {string} string "Invalid JSON payload, validation failed or malformed answer"
// @Failure 404 {string} string "Session not found"
// @Router /sessions/{sessionId}/lessons/{lessonId}/answers [put]
func (h *SessionHandler) answerQuestion(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	lessonID, ok := lessonIDParam(w, r)
	if !ok {
		return
	}
	var req dto.QuizAnswerDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	sessionID := chi.URLParam(r, "sessionId")

	quiz, ok := h.quizOf(w, r, learner.UserID, sessionID, lessonID)
	if !ok {
		return
	}
	answers, err := parseAnswers(quiz, []dto.QuizAnswerDTO{req})
	if err != nil {
		http.Error(w, "Invalid answer: "+err.Error(), http.StatusBadRequest)
		return
	}
	ans, known := answers[*req.QuestionID]
	if !known {
		h.respondNoop(w, r, learner.UserID, sessionID)
		return
	}
	v, applied, err := h.sessionService.AnswerQuestion(r.Context(), learner.UserID, sessionID, lessonID, *req.QuestionID, ans)
	h.respondMutation(w, v, applied, err)
}

// submitQuiz godoc
// @Summary Submit a quiz
// @Description Merges the answers into the draft and grades the attempt. Every question must be answered. A repeated submission returns the stored result with applied=false.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param lessonId path int true "Lesson ID"
// @Param answers body dto.SubmitQuizDTO false "Answers"
// @Success 200 {object} dto.QuizSubmissionDTO
// @Failure 400 {string} string "Invalid JSON payload, validation failed or malformed answer"
// @Failure 404 {string} string "Session not found"
// @Failure 422 {object} dto.IncompleteSubmissionDTO
// @Router /sessions/{sessionId}/lessons/{lessonId}/quiz [post]
func (h *SessionHandler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	lessonID, ok := lessonIDParam(w, r)
	if !ok {
		return
	}
	var req dto.SubmitQuizDTO
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	sessionID := chi.URLParam(r, "sessionId")

	quiz, ok := h.quizOf(w, r, learner.UserID, sessionID, lessonID)
	if !ok {
		return
	}
	answers, err := parseAnswers(quiz, req.Answers)
	if err != nil {
		http.Error(w, "Invalid answer: "+err.Error(), http.StatusBadRequest)
		return
	}

	sub, err := h.sessionService.SubmitQuiz(r.Context(), learner.UserID, sessionID, lessonID, answers)
	if err != nil {
		var incomplete *service.IncompleteSubmissionError
		if errors.As(err, &incomplete) {
			respondJSON(w, http.StatusUnprocessableEntity, dto.IncompleteSubmissionDTO{
				Error:   "Every question must be answered before submitting",
				Missing: incomplete.Missing,
			})
			return
		}
		writeServiceError(w, err, h.logger, "Failed to submit quiz")
		return
	}
	resp := dto.QuizSubmissionDTO{Applied: sub.Applied, Session: toSessionDTO(sub.Session)}
	if sub.Result.Total > 0 {
		resp.Result = toQuizResultDTO(sub.Result)
	}
	respondJSON(w, http.StatusOK, resp)
}

// resetQuiz godoc
// @Summary Retake a quiz
// @Description Clears the answers and the submitted flag of a quiz.
// @Tags quizzes
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.SessionMutationDTO
// @Failure 404 {string} string "Session not found"
// @Router /sessions/{sessionId}/lessons/{lessonId}/quiz [delete]
func (h *SessionHandler) resetQuiz(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	lessonID, ok := lessonIDParam(w, r)
	if !ok {
		return
	}
	v, applied, err := h.sessionService.ResetQuiz(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"), lessonID)
	h.respondMutation(w, v, applied, err)
}

// getResources godoc
// @Summary Lesson resources
// @Description Returns download links for the resources of an unlocked lesson.
// @Tags lessons
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {array} dto.ResourceLinkDTO
// @Failure 403 {string} string "Lesson is locked"
// @Failure 404 {string} string "Session or lesson not found"
// @Failure 500 {string} string "Failed to resolve resources"
// @Router /sessions/{sessionId}/lessons/{lessonId}/resources [get]
func (h *SessionHandler) getResources(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	lessonID, ok := lessonIDParam(w, r)
	if !ok {
		return
	}
	sl, err := h.sessionService.Lesson(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"), lessonID)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to retrieve lesson")
		return
	}
	links, err := h.resourceService.Links(r.Context(), sl.Lesson)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to resolve resources")
		return
	}
	resp := make([]dto.ResourceLinkDTO, 0, len(links))
	for _, l := range links {
		resp = append(resp, dto.ResourceLinkDTO{Name: l.Name, Type: l.Type, URL: l.URL, ExpiresAt: l.ExpiresAt})
	}
	respondJSON(w, http.StatusOK, resp)
}

// getNote godoc
// @Summary Get lesson note
// @Description Returns the learner's note on an unlocked lesson (empty when none).
// @Tags lessons
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} dto.LessonNoteDTO
// @Failure 403 {string} string "Lesson is locked"
// @Failure 404 {string} string "Session or lesson not found"
// @Router /sessions/{sessionId}/lessons/{lessonId}/notes [get]
func (h *SessionHandler) getNote(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	lessonID, ok := lessonIDParam(w, r)
	if !ok {
		return
	}
	sl, err := h.sessionService.Lesson(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"), lessonID)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to retrieve lesson")
		return
	}
	n, err := h.noteService.GetNote(r.Context(), learner.UserID, sl.CourseID, lessonID)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to retrieve note")
		return
	}
	respondJSON(w, http.StatusOK, dto.LessonNoteDTO{CourseID: n.CourseID, LessonID: n.LessonID, Content: n.Content})
}

// saveNote godoc
// @Summary Save lesson note
// @Description Replaces the learner's note on an unlocked lesson.
// @Tags lessons
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param lessonId path int true "Lesson ID"
// @Param note body dto.NoteUpdateDTO true "Note"
// @Success 200 {object} dto.LessonNoteDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 403 {string} string "Lesson is locked"
// @Failure 404 {string} string "Session or lesson not found"
// @Router /sessions/{sessionId}/lessons/{lessonId}/notes [put]
func (h *SessionHandler) saveNote(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	lessonID, ok := lessonIDParam(w, r)
	if !ok {
		return
	}
	var req dto.NoteUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	sl, err := h.sessionService.Lesson(r.Context(), learner.UserID, chi.URLParam(r, "sessionId"), lessonID)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to retrieve lesson")
		return
	}
	n, err := h.noteService.SaveNote(r.Context(), learner.UserID, sl.CourseID, lessonID, *req.Content)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to save note")
		return
	}
	respondJSON(w, http.StatusOK, dto.LessonNoteDTO{CourseID: n.CourseID, LessonID: n.LessonID, Content: n.Content})
}

// getCertificate godoc
// @Summary Completion certificate
// @Description Renders the completion certificate of a completed session as a PNG image.
// @Tags sessions
// @Produce png
// @Param sessionId path string true "Session ID"
// @Success 200 {file} binary
// @Failure 404 {string} string "Session not found"
// @Failure 409 {string} string "Course not completed"
// @Router /sessions/{sessionId}/certificate [get]
func (h *SessionHandler) getCertificate(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	img, err := h.sessionService.Certificate(r.Context(), learner, chi.URLParam(r, "sessionId"))
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to render certificate")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="certificate.png"`)
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

// quizOf returns the questions of an unlocked quiz lesson. For anything else
// it answers the request with applied=false and returns false.
func (h *SessionHandler) quizOf(w http.ResponseWriter, r *http.Request, userID, sessionID string, lessonID int) ([]model.Question, bool) {
	sl, err := h.sessionService.Lesson(r.Context(), userID, sessionID, lessonID)
	switch {
	case errors.Is(err, progress.ErrLocked), errors.Is(err, progress.ErrNotFound):
		h.respondNoop(w, r, userID, sessionID)
		return nil, false
	case err != nil:
		writeServiceError(w, err, h.logger, "Failed to retrieve lesson")
		return nil, false
	case sl.Lesson.Kind != model.LessonQuiz:
		h.respondNoop(w, r, userID, sessionID)
		return nil, false
	}
	return sl.Lesson.Quiz, true
}

func (h *SessionHandler) respondNoop(w http.ResponseWriter, r *http.Request, userID, sessionID string) {
	v, err := h.sessionService.GetSession(r.Context(), userID, sessionID)
	h.respondMutation(w, v, false, err)
}

func (h *SessionHandler) respondMutation(w http.ResponseWriter, v *service.SessionView, applied bool, err error) {
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to update session")
		return
	}
	respondJSON(w, http.StatusOK, dto.SessionMutationDTO{Applied: applied, Session: toSessionDTO(v)})
}

// parseAnswers decodes each answer by the type of its question. Answers to
// questions outside the quiz are dropped.
func parseAnswers(quiz []model.Question, in []dto.QuizAnswerDTO) (map[int]model.Answer, error) {
	kinds := make(map[int]model.QuestionKind, len(quiz))
	for _, q := range quiz {
		kinds[q.ID] = q.Kind
	}
	out := make(map[int]model.Answer, len(in))
	for _, a := range in {
		kind, ok := kinds[*a.QuestionID]
		if !ok {
			continue
		}
		if string(bytes.TrimSpace(a.Answer)) == "null" {
			return nil, fmt.Errorf("question %d: answer is null", *a.QuestionID)
		}
		ans, err := model.ParseAnswer(kind, a.Answer)
		if err != nil {
			return nil, err
		}
		out[*a.QuestionID] = ans
	}
	return out, nil
}
