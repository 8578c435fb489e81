package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type journeyService interface {
	Resolve(ctx context.Context, studentID, enrollmentID string) (journey.ViewState, error)
	EligibleCourses(ctx context.Context, studentID string, filters models.FilterState, page, size int) ([]models.Course, *models.Pagination, error)
}

// JourneyHandler exposes the signed-in student's journey.
type JourneyHandler struct {
	service journeyService
}

// NewJourneyHandler builds a new handler.
func NewJourneyHandler(service journeyService) *JourneyHandler {
	return &JourneyHandler{service: service}
}

// Journey godoc
// @Summary Resolve the current student's journey state
// @Tags Journey
// @Produce json
// @Param enrollmentId query string false "Enrollment to select when enrolled"
// @Success 200 {object} response.Envelope
// @Router /me/journey [get]
func (h *JourneyHandler) Journey(c *gin.Context) {
	claims, ok := requireStudent(c)
	if !ok {
		return
	}
	state, err := h.service.Resolve(c.Request.Context(), claims.UserID, c.Query("enrollmentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewJourneyResponse(state), nil)
}

// EligibleCourses godoc
// @Summary List courses the current student may still apply to
// @Tags Journey
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/eligible-courses [get]
func (h *JourneyHandler) EligibleCourses(c *gin.Context) {
	claims, ok := requireStudent(c)
	if !ok {
		return
	}
	var query dto.CourseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	filters := query.FilterState()
	courses, pagination, err := h.service.EligibleCourses(c.Request.Context(), claims.UserID, filters, query.Page, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination, dto.CatalogMeta(filters))
}
