package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "fullname", "std_class_id", "username", "major"}).
		AddRow(1, "Somchai", "6501", "somchai", "IT").
		AddRow(2, "Suda", "6502", "suda", "CS")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id, fullname, std_class_id, username, major FROM students ORDER BY student_id ASC")).
		WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "6502", students[1].StdClassID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE student_id = $1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateDefaultsMajor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO students (std_class_id, fullname, username, password, major)")).
		WithArgs("6501", "Somchai", "somchai", "secret1", "IT").
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(7))

	student := &models.Student{StdClassID: "6501", FullName: "Somchai", Username: "somchai", Password: "secret1"}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.Equal(t, int64(7), student.StudentID)
	assert.Equal(t, models.DefaultMajor, student.Major)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUsernameExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE username = $1")).
		WithArgs("somchai").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE std_class_id = $1")).
		WithArgs("6509").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.UsernameExists(context.Background(), "somchai")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.StdClassIDExists(context.Background(), "6509")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateNameMajorCoalesce(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	major := "CS"
	mock.ExpectQuery(regexp.QuoteMeta("SET fullname = COALESCE($1, fullname), major = COALESCE($2, major)")).
		WithArgs(nil, "CS", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"fullname", "major"}).AddRow("Somchai", "CS"))

	out, err := repo.UpdateNameMajor(context.Background(), 3, models.StudentPatch{Major: &major})
	require.NoError(t, err)
	assert.Equal(t, "Somchai", out.FullName)
	assert.Equal(t, "CS", out.Major)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteWithEnrollmentsCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE student_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM students WHERE student_id = $1 RETURNING student_id")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(5))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteWithEnrollments(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteWithEnrollmentsRollsBackWhenMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE student_id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM students WHERE student_id = $1 RETURNING student_id")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}))
	mock.ExpectRollback()

	err := repo.DeleteWithEnrollments(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteWithEnrollmentsRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE student_id = $1")).
		WithArgs(int64(5)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.DeleteWithEnrollments(context.Background(), 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
