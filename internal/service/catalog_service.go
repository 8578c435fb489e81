package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/journey"
	"github.com/noah-isme/course-portal-api/internal/models"
	appErrors "github.com/noah-isme/course-portal-api/pkg/errors"
	"github.com/noah-isme/course-portal-api/pkg/export"
	"github.com/noah-isme/course-portal-api/pkg/logger"
)

// CatalogCacheKey stores the published catalog snapshot.
const CatalogCacheKey = "catalog:courses"

// ExportFormat selects the catalog export renderer.
type ExportFormat string

// Supported export formats.
const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var courseExportColumns = []export.Column{
	{Key: "id", Title: "ID"},
	{Key: "title", Title: "Title", Weight: 3},
	{Key: "category", Title: "Category", Weight: 1.5},
	{Key: "difficulty", Title: "Difficulty", Weight: 1.2},
	{Key: "modes", Title: "Modes", Weight: 1.5},
	{Key: "price", Title: "Price", Align: "R"},
	{Key: "duration", Title: "Duration (weeks)", Weight: 1.3, Align: "R"},
	{Key: "rating", Title: "Rating", Weight: 0.8, Align: "R"},
	{Key: "enrollments", Title: "Enrollments", Align: "R"},
}

type courseReader interface {
	ListPublished(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// CatalogConfig tunes catalog behaviour.
type CatalogConfig struct {
	CacheTTL    time.Duration
	Presets     []models.FilterPreset
	ExportTitle string
}

// ExportResult is a rendered catalog export.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// CatalogService serves filtered views of the published course catalog.
type CatalogService struct {
	repo    courseReader
	cache   catalogCache
	metrics *MetricsService
	csv     csvRenderer
	pdf     pdfRenderer
	cfg     CatalogConfig
	logger  *zap.Logger
}

// NewCatalogService constructs a CatalogService. Presets default to the
// built-in set when none are configured.
func NewCatalogService(repo courseReader, cache catalogCache, metrics *MetricsService, cfg CatalogConfig, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = catalog.DefaultPresets()
	}
	if cfg.ExportTitle == "" {
		cfg.ExportTitle = "Course Catalog"
	}
	return &CatalogService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		cfg:     cfg,
		logger:  logger,
	}
}

// Courses returns the published catalog, served from cache when possible.
func (s *CatalogService) Courses(ctx context.Context) ([]models.Course, error) {
	if s.cache != nil {
		var cached []models.Course
		hit, err := s.cache.Get(ctx, CatalogCacheKey, &cached)
		if err != nil {
			logger.WithContext(ctx, s.logger).Warn("catalog cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	start := time.Now()
	courses, err := s.repo.ListPublished(ctx)
	s.metrics.ObserveDBQuery("courses_list_published", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course catalog")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, CatalogCacheKey, courses, s.cfg.CacheTTL); err != nil {
			logger.WithContext(ctx, s.logger).Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return courses, nil
}

// InvalidateCache drops the cached catalog so the next read goes to the
// database.
func (s *CatalogService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, "catalog:*"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate catalog cache")
	}
	return nil
}

// Search filters and sorts the catalog, then returns the requested page.
func (s *CatalogService) Search(ctx context.Context, filters models.FilterState, page, size int) ([]models.Course, *models.Pagination, error) {
	courses, err := s.Courses(ctx)
	if err != nil {
		return nil, nil, err
	}
	result, err := catalog.FilterAndSort(courses, filters)
	if err != nil {
		return nil, nil, translateCoreError(err, "failed to filter courses")
	}
	s.metrics.ObserveFilterResults(len(result))

	pagination := models.NewPagination(page, size, len(result))
	start, end := pagination.Bounds()
	return result[start:end], &pagination, nil
}

// Course loads a single course by id, bypassing the catalog snapshot.
func (s *CatalogService) Course(ctx context.Context, courseID string) (*models.Course, error) {
	start := time.Now()
	course, err := s.repo.FindByID(ctx, courseID)
	s.metrics.ObserveDBQuery("courses_find_by_id", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// PaymentOptions lists how the given course may be paid for.
func (s *CatalogService) PaymentOptions(ctx context.Context, courseID string) ([]journey.PaymentOption, error) {
	course, err := s.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return journey.PaymentOptions(*course), nil
}

// Presets returns the configured filter presets.
func (s *CatalogService) Presets() []models.FilterPreset {
	presets := make([]models.FilterPreset, len(s.cfg.Presets))
	copy(presets, s.cfg.Presets)
	return presets
}

// ApplyPreset returns the filter state of the named preset.
func (s *CatalogService) ApplyPreset(name string) (models.FilterState, error) {
	preset, ok := catalog.FindPreset(s.cfg.Presets, name)
	if !ok {
		return models.FilterState{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("preset %q not found", name))
	}
	return catalog.ApplyPreset(preset), nil
}

// Export renders every course matching filters in the requested format.
func (s *CatalogService) Export(ctx context.Context, filters models.FilterState, format ExportFormat) (*ExportResult, error) {
	courses, err := s.Courses(ctx)
	if err != nil {
		return nil, err
	}
	result, err := catalog.FilterAndSort(courses, filters)
	if err != nil {
		return nil, translateCoreError(err, "failed to filter courses")
	}
	dataset := buildCourseDataset(result)

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Filename: "courses.csv", ContentType: "text/csv", Content: content}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(dataset, s.cfg.ExportTitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Filename: "courses.pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildCourseDataset(courses []models.Course) export.Dataset {
	rows := make([]map[string]string, 0, len(courses))
	for _, course := range courses {
		modes := make([]string, 0, len(course.Modes))
		for _, m := range course.Modes {
			modes = append(modes, string(m))
		}
		rating := ""
		if course.AverageRating != nil {
			rating = strconv.FormatFloat(*course.AverageRating, 'f', 1, 64)
		}
		rows = append(rows, map[string]string{
			"id":          course.ID,
			"title":       course.Title,
			"category":    course.Category,
			"difficulty":  string(course.Difficulty),
			"modes":       strings.Join(modes, "/"),
			"price":       strconv.FormatFloat(course.Price, 'f', 2, 64),
			"duration":    strconv.Itoa(course.Duration),
			"rating":      rating,
			"enrollments": strconv.Itoa(course.EnrollmentCount),
		})
	}
	return export.Dataset{Columns: courseExportColumns, Rows: rows}
}

// translateCoreError maps malformed-record errors from the catalog and
// journey packages onto the API error set.
func translateCoreError(err error, message string) error {
	var invalid *models.InvalidInputError
	if errors.As(err, &invalid) {
		return appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, invalid.Error()).
			WithDetail(invalid.Field, invalid.Reason)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
