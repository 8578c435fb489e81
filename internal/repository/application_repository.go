package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-portal-api/internal/models"
)

// ApplicationRepository reads course applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// ListByStudent returns a student's applications in submission order. The
// order matters: the journey resolver breaks status ties by position.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Application, error) {
	const query = `SELECT id, student_id, course_id, status, submitted_at, review_notes FROM applications WHERE student_id = $1 ORDER BY submitted_at ASC, id ASC`
	var applications []models.Application
	if err := r.db.SelectContext(ctx, &applications, query, studentID); err != nil {
		return nil, fmt.Errorf("list student applications: %w", err)
	}
	return applications, nil
}
