package handler

import (
	"net/http"

	"courseplayer/internal/api/v1/dto"
	"courseplayer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// UserHandler handles endpoints about the authenticated learner
type UserHandler struct {
	sessionService service.SessionService
	logger         zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(sessionService service.SessionService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{sessionService: sessionService, logger: logger}
}

// RegisterRoutes mounts user routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.With(authMw).Get("/users/me", h.getMe)
	r.With(authMw).Get("/users/me/sessions", h.listSessions)
}

// getMe godoc
// @Summary Current learner
// @Description Returns the identity carried by the bearer token.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponseDTO
// @Failure 401 {string} string "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) getMe(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, dto.UserResponseDTO{
		UserID:      learner.UserID,
		Name:        learner.Name,
		Email:       learner.Email,
		DisplayName: learner.DisplayName(),
	})
}

// listSessions godoc
// @Summary My learning
// @Description Lists the learner's open course sessions with their progress, most recently used first.
// @Tags users
// @Produce json
// @Success 200 {array} dto.LearningSessionDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to list sessions"
// @Router /users/me/sessions [get]
func (h *UserHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	learner, ok := learnerFrom(w, r)
	if !ok {
		return
	}
	sessions, err := h.sessionService.ListSessions(r.Context(), learner.UserID)
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to list sessions")
		return
	}
	resp := make([]dto.LearningSessionDTO, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, toLearningSessionDTO(s))
	}
	respondJSON(w, http.StatusOK, resp)
}
