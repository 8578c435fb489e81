package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/logger"
)

// SavedSearchStore persists a user's saved searches as a whole list.
type SavedSearchStore interface {
	Load(ctx context.Context, userID string) ([]models.SavedSearch, error)
	Save(ctx context.Context, userID string, searches []models.SavedSearch) error
}

// SaveSearchRequest is the payload for storing a saved search.
type SaveSearchRequest struct {
	Name    string              `json:"name" validate:"required,max=120"`
	Filters *models.FilterState `json:"filters" validate:"required"`
}

// SavedSearchService manages per-user saved searches.
type SavedSearchService struct {
	store     SavedSearchStore
	validator *validator.Validate
	limit     int
	logger    *zap.Logger
	now       func() time.Time
}

// NewSavedSearchService constructs a SavedSearchService. A non-positive limit
// disables the cap.
func NewSavedSearchService(store SavedSearchStore, validate *validator.Validate, limit int, logger *zap.Logger) *SavedSearchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SavedSearchService{store: store, validator: validate, limit: limit, logger: logger, now: time.Now}
}

// List returns the user's saved searches in insertion order.
func (s *SavedSearchService) List(ctx context.Context, userID string) ([]models.SavedSearch, error) {
	searches, err := s.store.Load(ctx, userID)
	if err != nil {
		logger.WithContext(ctx, s.logger).Warn("saved search load failed", zap.String("user_id", userID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load saved searches")
	}
	return searches, nil
}

// Save appends a saved search. Names are not deduplicated.
func (s *SavedSearchService) Save(ctx context.Context, userID string, req SaveSearchRequest) ([]models.SavedSearch, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name must not be blank").WithDetail("name", "blank")
	}

	searches, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.limit > 0 && len(searches) >= s.limit {
		return nil, appErrors.Clone(appErrors.ErrLimitReached, fmt.Sprintf("saved search limit of %d reached", s.limit))
	}

	updated := catalog.SaveSearch(searches, name, *req.Filters, s.now().UTC())
	if err := s.store.Save(ctx, userID, updated); err != nil {
		logger.WithContext(ctx, s.logger).Warn("saved search write failed", zap.String("user_id", userID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store saved search")
	}
	return updated, nil
}

// Delete removes the saved search at index. An out-of-range index leaves the
// list unchanged.
func (s *SavedSearchService) Delete(ctx context.Context, userID string, index int) ([]models.SavedSearch, error) {
	searches, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(searches) {
		return searches, nil
	}

	updated := catalog.DeleteSearch(searches, index)
	if err := s.store.Save(ctx, userID, updated); err != nil {
		logger.WithContext(ctx, s.logger).Warn("saved search write failed", zap.String("user_id", userID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete saved search")
	}
	return updated, nil
}

// validationError reports each failed struct rule as a field detail.
func validationError(err error) error {
	appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			appErr = appErr.WithDetail(strings.ToLower(fe.Field()), fe.Tag())
		}
	}
	return appErr
}
