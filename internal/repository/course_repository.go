package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/course-portal-api/internal/models"
)

const courseColumns = `c.id, c.title, c.description, c.instructor_name, c.category, c.difficulty, c.modes,
        c.price, c.duration_weeks, c.average_rating, c.enrollment_count, c.created_at,
        c.enrollment_deadline, c.start_date, c.end_date,
        c.installment_enabled, c.installment_upfront, c.installment_count`

// courseRow mirrors the courses table; nullable columns are mapped onto the
// optional fields of models.Course.
type courseRow struct {
	ID                 string          `db:"id"`
	Title              string          `db:"title"`
	Description        sql.NullString  `db:"description"`
	InstructorName     sql.NullString  `db:"instructor_name"`
	Category           string          `db:"category"`
	Difficulty         string          `db:"difficulty"`
	Modes              pq.StringArray  `db:"modes"`
	Price              float64         `db:"price"`
	DurationWeeks      int             `db:"duration_weeks"`
	AverageRating      sql.NullFloat64 `db:"average_rating"`
	EnrollmentCount    int             `db:"enrollment_count"`
	CreatedAt          time.Time       `db:"created_at"`
	EnrollmentDeadline sql.NullTime    `db:"enrollment_deadline"`
	StartDate          sql.NullTime    `db:"start_date"`
	EndDate            sql.NullTime    `db:"end_date"`
	InstallmentEnabled bool            `db:"installment_enabled"`
	InstallmentUpfront sql.NullFloat64 `db:"installment_upfront"`
	InstallmentCount   sql.NullInt64   `db:"installment_count"`
}

func (r courseRow) toModel() models.Course {
	course := models.Course{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description.String,
		InstructorName:     r.InstructorName.String,
		Category:           r.Category,
		Difficulty:         models.Difficulty(r.Difficulty),
		Price:              r.Price,
		Duration:           r.DurationWeeks,
		EnrollmentCount:    r.EnrollmentCount,
		CreatedAt:          r.CreatedAt,
		InstallmentEnabled: r.InstallmentEnabled,
		EnrollmentDeadline: nullTimePtr(r.EnrollmentDeadline),
		StartDate:          nullTimePtr(r.StartDate),
		EndDate:            nullTimePtr(r.EndDate),
	}
	course.Modes = make([]models.DeliveryMode, 0, len(r.Modes))
	for _, m := range r.Modes {
		course.Modes = append(course.Modes, models.DeliveryMode(m))
	}
	if r.AverageRating.Valid {
		v := r.AverageRating.Float64
		course.AverageRating = &v
	}
	if r.InstallmentUpfront.Valid {
		course.InstallmentPlan = &models.InstallmentPlan{
			Upfront:      r.InstallmentUpfront.Float64,
			Installments: int(r.InstallmentCount.Int64),
		}
	}
	return course
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// CourseRepository reads the published course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListPublished returns every published course.
func (r *CourseRepository) ListPublished(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses c WHERE c.published = TRUE ORDER BY c.created_at DESC`, courseColumns)
	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list published courses: %w", err)
	}
	courses := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toModel())
	}
	return courses, nil
}

// FindByID returns a published course by its ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses c WHERE c.id = $1 AND c.published = TRUE`, courseColumns)
	var row courseRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	course := row.toModel()
	return &course, nil
}
