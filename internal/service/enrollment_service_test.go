package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	rows      []models.Enrollment
	createErr error
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, r := range m.rows {
		if r.StudentID == enrollment.StudentID && r.CourseID == enrollment.CourseID {
			return &pq.Error{Code: "23505", Constraint: "enrollments_student_id_course_id_key"}
		}
	}
	enrollment.ID = int64(len(m.rows) + 1)
	enrollment.EnrolledAt = time.Now().UTC()
	m.rows = append(m.rows, *enrollment)
	return nil
}

func (m *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	out := make([]models.EnrollmentDetail, 0)
	for _, r := range m.rows {
		if r.StudentID == studentID {
			out = append(out, models.EnrollmentDetail{Enrollment: r})
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, studentID int64, courseID string) (bool, error) {
	for i, r := range m.rows {
		if r.StudentID == studentID && r.CourseID == courseID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestEnrollmentService() (*EnrollmentService, *mockEnrollmentRepo) {
	_, students := seededAccounts()
	repo := &mockEnrollmentRepo{}
	return NewEnrollmentService(repo, students, seededSubjects(), nil, nil), repo
}

func TestEnrollmentServiceEnroll(t *testing.T) {
	svc, repo := newTestEnrollmentService()

	enrollment, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 42, CourseID: "CS101"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), enrollment.ID)
	assert.Len(t, repo.rows, 1)

	_, err = svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 42, CourseID: "CS101"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestEnrollmentServiceEnrollMissingParties(t *testing.T) {
	svc, repo := newTestEnrollmentService()

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 1, CourseID: "CS101"})
	require.Error(t, err)
	assert.Equal(t, "student not found", appErrors.FromError(err).Message)

	_, err = svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 42, CourseID: "NOPE"})
	require.Error(t, err)
	assert.Equal(t, "subject not found", appErrors.FromError(err).Message)

	_, err = svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 0, CourseID: "CS101"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
	assert.Empty(t, repo.rows)
}

func TestEnrollmentServiceForeignKeyRace(t *testing.T) {
	svc, repo := newTestEnrollmentService()
	repo.createErr = &pq.Error{Code: "23503"}

	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 42, CourseID: "CS101"})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestEnrollmentServiceListAndUnenroll(t *testing.T) {
	svc, _ := newTestEnrollmentService()
	_, err := svc.Enroll(context.Background(), dto.EnrollRequest{StudentID: 42, CourseID: "CS101"})
	require.NoError(t, err)

	items, err := svc.ListByStudent(context.Background(), 42)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.ListByStudent(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	require.NoError(t, svc.Unenroll(context.Background(), 42, "CS101"))
	err = svc.Unenroll(context.Background(), 42, "CS101")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
