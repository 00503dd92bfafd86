package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

func TestSubjectRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec("INSERT INTO subjects").
		WithArgs("CS101", "Programming", "Dr. A").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &models.Subject{CourseID: "CS101", CourseName: "Programming", TeacherName: "Dr. A"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryUpdateLeavesIDAlone(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE subjects SET course_name = $1, teacher_name = $2 WHERE course_id = $3")).
		WithArgs("Advanced Programming", "Dr. B", "CS101").
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "course_name", "teacher_name"}).AddRow("CS101", "Advanced Programming", "Dr. B"))

	updated, err := repo.Update(context.Background(), &models.Subject{CourseID: "CS101", CourseName: "Advanced Programming", TeacherName: "Dr. B"})
	require.NoError(t, err)
	assert.Equal(t, "CS101", updated.CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM subjects WHERE course_id = $1")).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "course_name", "teacher_name"}))

	_, err := repo.Delete(context.Background(), "NOPE")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
