package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"courseplayer/internal/middleware"
	"courseplayer/internal/model"
	"courseplayer/internal/progress"
	"courseplayer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// learnerFrom writes a 401 and returns false when the request carries no
// authenticated learner.
func learnerFrom(w http.ResponseWriter, r *http.Request) (model.Learner, bool) {
	l, ok := middleware.LearnerFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
	}
	return l, ok
}

func lessonIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "lessonId"))
	if err != nil {
		http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeOptional decodes a JSON body that may be absent.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// writeServiceError maps service and engine errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger, msg string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, service.ErrCourseNotFound):
		http.Error(w, "Course not found", http.StatusNotFound)
	case errors.Is(err, progress.ErrNotFound):
		http.Error(w, "Lesson not found", http.StatusNotFound)
	case errors.Is(err, progress.ErrLocked):
		http.Error(w, "Lesson is locked", http.StatusForbidden)
	case errors.Is(err, service.ErrCourseNotCompleted):
		http.Error(w, "Course not completed", http.StatusConflict)
	default:
		logger.Error().Err(err).Msg(msg)
		http.Error(w, msg+": "+err.Error(), http.StatusInternalServerError)
	}
}
