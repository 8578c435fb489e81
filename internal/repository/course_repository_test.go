package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-portal-api/internal/models"
)

var courseRowColumns = []string{
	"id", "title", "description", "instructor_name", "category", "difficulty", "modes",
	"price", "duration_weeks", "average_rating", "enrollment_count", "created_at",
	"enrollment_deadline", "start_date", "end_date",
	"installment_enabled", "installment_upfront", "installment_count",
}

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryListPublished(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(courseRowColumns).
		AddRow("c1", "UX Foundations", "Basics", "Ada Park", "Design", "Beginner", "{Online,Hybrid}",
			100.0, 4, 4.5, 120, created, nil, start, nil, true, 25.0, 3).
		AddRow("c2", "Go Services", nil, nil, "Engineering", "Advanced", "{}",
			450.0, 10, nil, 0, created, nil, nil, nil, false, nil, nil)
	mock.ExpectQuery(`FROM courses c WHERE c.published = TRUE`).WillReturnRows(rows)

	courses, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)

	first := courses[0]
	assert.Equal(t, []models.DeliveryMode{models.ModeOnline, models.ModeHybrid}, first.Modes)
	require.NotNil(t, first.AverageRating)
	assert.Equal(t, 4.5, *first.AverageRating)
	require.NotNil(t, first.StartDate)
	assert.True(t, start.Equal(*first.StartDate))
	assert.Nil(t, first.EndDate)
	require.NotNil(t, first.InstallmentPlan)
	assert.Equal(t, models.InstallmentPlan{Upfront: 25, Installments: 3}, *first.InstallmentPlan)

	second := courses[1]
	assert.Empty(t, second.Modes)
	assert.Nil(t, second.AverageRating)
	assert.Nil(t, second.InstallmentPlan)
	assert.Equal(t, "", second.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`WHERE c.id = \$1 AND c.published = TRUE`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(courseRowColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
