package handler

import (
	"net/http"

	"courseplayer/internal/api/v1/dto"
	"courseplayer/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CourseHandler handles catalog endpoints
type CourseHandler struct {
	courseService service.CourseService
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, logger: logger}
}

// RegisterRoutes mounts course routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.With(authMw).Get("/courses", h.listCourses)
	r.With(authMw).Get("/courses/{courseId}", h.getCourse)
}

// listCourses godoc
// @Summary List courses
// @Description Returns the course catalog.
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CourseSummaryDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {string} string "Failed to list courses"
// @Router /courses [get]
func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list courses")
		http.Error(w, "Failed to list courses: "+err.Error(), http.StatusInternalServerError)
		return
	}
	resp := make([]dto.CourseSummaryDTO, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, toCourseSummaryDTO(c))
	}
	respondJSON(w, http.StatusOK, resp)
}

// getCourse godoc
// @Summary Get a course
// @Description Retrieves a course and its curriculum outline.
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.CourseDetailDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Course not found"
// @Failure 500 {string} string "Failed to retrieve course"
// @Router /courses/{courseId} [get]
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.GetCourseByID(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		writeServiceError(w, err, h.logger, "Failed to retrieve course")
		return
	}
	respondJSON(w, http.StatusOK, toCourseDetailDTO(course))
}
