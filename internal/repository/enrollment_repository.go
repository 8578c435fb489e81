package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-portal-api/internal/models"
)

type enrollmentRow struct {
	EnrollmentID string    `db:"enrollment_id"`
	StudentID    string    `db:"student_id"`
	Progress     float64   `db:"progress"`
	EnrolledAt   time.Time `db:"enrolled_at"`
	courseRow
}

// EnrollmentRepository reads confirmed enrollments together with the course
// each one belongs to.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByStudent returns a student's enrollments ordered by enrollment date.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	query := fmt.Sprintf(`SELECT e.id AS enrollment_id, e.student_id, e.progress, e.enrolled_at, %s
        FROM enrollments e
        JOIN courses c ON c.id = e.course_id
        WHERE e.student_id = $1
        ORDER BY e.enrolled_at ASC`, courseColumns)
	var rows []enrollmentRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	enrollments := make([]models.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, models.Enrollment{
			ID:         row.EnrollmentID,
			StudentID:  row.StudentID,
			Course:     row.courseRow.toModel(),
			Progress:   row.Progress,
			EnrolledAt: row.EnrolledAt,
		})
	}
	return enrollments, nil
}
