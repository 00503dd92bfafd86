package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

func TestAttendanceRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	file := "2024/06/leave.pdf"
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance (course_id, student_id, checkin_time, status, leave_file)")).
		WithArgs("CS101", "6501", at, models.AttendanceStatusLeave, &file).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	rec := &models.Attendance{CourseID: "CS101", StudentID: "6501", CheckinTime: at, Status: models.AttendanceStatusLeave, LeaveFile: &file}
	require.NoError(t, repo.Create(context.Background(), rec))
	assert.Equal(t, int64(1), rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance WHERE 1=1 AND course_id = $1 AND student_id = $2 ORDER BY checkin_time DESC")).
		WithArgs("CS101", "6501").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "student_id", "checkin_time", "status", "leave_file"}).
			AddRow(1, "CS101", "6501", time.Now(), "present", nil))

	records, err := repo.List(context.Background(), models.AttendanceFilter{CourseID: "CS101", StudentID: "6501"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].LeaveFile)
	assert.NoError(t, mock.ExpectationsWereMet())
}
