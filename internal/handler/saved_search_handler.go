package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/service"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/response"
)

type savedSearchService interface {
	List(ctx context.Context, userID string) ([]models.SavedSearch, error)
	Save(ctx context.Context, userID string, req service.SaveSearchRequest) ([]models.SavedSearch, error)
	Delete(ctx context.Context, userID string, index int) ([]models.SavedSearch, error)
}

// SavedSearchHandler manages the current user's saved searches.
type SavedSearchHandler struct {
	service savedSearchService
}

// NewSavedSearchHandler builds a new handler.
func NewSavedSearchHandler(service savedSearchService) *SavedSearchHandler {
	return &SavedSearchHandler{service: service}
}

// List godoc
// @Summary List saved searches
// @Tags SavedSearches
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/saved-searches [get]
func (h *SavedSearchHandler) List(c *gin.Context) {
	claims, ok := requireStudent(c)
	if !ok {
		return
	}
	searches, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, searches, nil)
}

// Create godoc
// @Summary Save a search
// @Tags SavedSearches
// @Accept json
// @Produce json
// @Param payload body service.SaveSearchRequest true "Saved search payload"
// @Success 201 {object} response.Envelope
// @Router /me/saved-searches [post]
func (h *SavedSearchHandler) Create(c *gin.Context) {
	claims, ok := requireStudent(c)
	if !ok {
		return
	}
	var req service.SaveSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid saved search payload"))
		return
	}
	searches, err := h.service.Save(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, searches)
}

// Delete godoc
// @Summary Delete a saved search by position
// @Tags SavedSearches
// @Produce json
// @Param index path int true "Zero-based position"
// @Success 200 {object} response.Envelope
// @Router /me/saved-searches/{index} [delete]
func (h *SavedSearchHandler) Delete(c *gin.Context) {
	claims, ok := requireStudent(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "index must be an integer"))
		return
	}
	searches, err := h.service.Delete(c.Request.Context(), claims.UserID, index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, searches, nil)
}
