package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	enrolled := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	columns := append([]string{"enrollment_id", "student_id", "progress", "enrolled_at"}, courseRowColumns...)
	rows := sqlmock.NewRows(columns).
		AddRow("enr-1", "stu-1", 42.5, enrolled,
			"c1", "UX Foundations", "Basics", "Ada Park", "Design", "Beginner", "{Online}",
			100.0, 4, nil, 10, enrolled, nil, start, end, false, nil, nil)
	mock.ExpectQuery(`JOIN courses c ON c.id = e.course_id\s+WHERE e.student_id = \$1`).
		WithArgs("stu-1").
		WillReturnRows(rows)

	enrollments, err := repo.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "enr-1", enrollments[0].ID)
	assert.Equal(t, "c1", enrollments[0].Course.ID)
	assert.Equal(t, 42.5, enrollments[0].Progress)
	require.NotNil(t, enrollments[0].Course.EndDate)
	assert.True(t, end.Equal(*enrollments[0].Course.EndDate))
	require.NoError(t, mock.ExpectationsWereMet())
}
