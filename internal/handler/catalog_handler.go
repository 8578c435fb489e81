package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/dto"
	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/service"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type catalogService interface {
	Search(ctx context.Context, filters models.FilterState, page, size int) ([]models.Course, *models.Pagination, error)
	PaymentOptions(ctx context.Context, courseID string) ([]journey.PaymentOption, error)
	Presets() []models.FilterPreset
	ApplyPreset(name string) (models.FilterState, error)
	Export(ctx context.Context, filters models.FilterState, format service.ExportFormat) (*service.ExportResult, error)
	InvalidateCache(ctx context.Context) error
}

// CatalogHandler exposes course discovery endpoints.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List godoc
// @Summary Filter and sort the course catalog
// @Tags Catalog
// @Produce json
// @Param search query string false "Case-insensitive text search"
// @Param categories query string false "Comma separated categories"
// @Param difficulties query string false "Comma separated difficulties"
// @Param modes query string false "Comma separated delivery modes"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minDuration query int false "Minimum duration in weeks"
// @Param maxDuration query int false "Maximum duration in weeks"
// @Param rating query number false "Minimum average rating"
// @Param sort query string false "title|price|duration|rating|enrollments|createdAt"
// @Param order query string false "asc|desc"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var query dto.CourseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	filters := query.FilterState()
	courses, pagination, err := h.service.Search(c.Request.Context(), filters, query.Page, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination, dto.CatalogMeta(filters))
}

// Export godoc
// @Summary Export the filtered catalog
// @Tags Catalog
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv|pdf"
// @Success 200 {file} file
// @Router /courses/export [get]
func (h *CatalogHandler) Export(c *gin.Context) {
	var query dto.CourseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(service.ExportFormatCSV))))
	result, err := h.service.Export(c.Request.Context(), query.FilterState(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Content)
}

// PaymentOptions godoc
// @Summary List payment options for a course
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/payment-options [get]
func (h *CatalogHandler) PaymentOptions(c *gin.Context) {
	options, err := h.service.PaymentOptions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Presets godoc
// @Summary List filter presets
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /filter-presets [get]
func (h *CatalogHandler) Presets(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Presets(), nil)
}

// ApplyPreset godoc
// @Summary Get the filter state of a preset
// @Tags Catalog
// @Produce json
// @Param name path string true "Preset name"
// @Success 200 {object} response.Envelope
// @Router /filter-presets/{name} [get]
func (h *CatalogHandler) ApplyPreset(c *gin.Context) {
	state, err := h.service.ApplyPreset(c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil, dto.CatalogMeta(state))
}

// InvalidateCache godoc
// @Summary Drop the cached course catalog
// @Tags Catalog
// @Success 204
// @Router /admin/catalog/cache [delete]
func (h *CatalogHandler) InvalidateCache(c *gin.Context) {
	if err := h.service.InvalidateCache(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
