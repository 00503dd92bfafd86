package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type mockSubjectRepo struct {
	subjects  map[string]*models.Subject
	createErr error
	creates   int
}

func (m *mockSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, courseID string) (*models.Subject, error) {
	if s, ok := m.subjects[courseID]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) Exists(ctx context.Context, courseID string) (bool, error) {
	_, ok := m.subjects[courseID]
	return ok, nil
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	if m.subjects == nil {
		m.subjects = make(map[string]*models.Subject)
	}
	copy := *subject
	m.subjects[subject.CourseID] = &copy
	return nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if _, ok := m.subjects[subject.CourseID]; !ok {
		return nil, sql.ErrNoRows
	}
	copy := *subject
	m.subjects[subject.CourseID] = &copy
	return subject, nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, courseID string) (*models.Subject, error) {
	s, ok := m.subjects[courseID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(m.subjects, courseID)
	return s, nil
}

func seededSubjects() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: map[string]*models.Subject{
		"CS101": {CourseID: "CS101", CourseName: "Intro", TeacherName: "A B"},
	}}
}

func TestSubjectServiceCreate(t *testing.T) {
	repo := seededSubjects()
	svc := NewSubjectService(repo, nil, nil, "http://localhost:5173")

	subject, err := svc.Create(context.Background(), dto.CreateSubjectRequest{CourseID: "CS102", CourseName: "Data", TeacherName: "A B"})
	require.NoError(t, err)
	assert.Equal(t, "CS102", subject.CourseID)

	_, err = svc.Create(context.Background(), dto.CreateSubjectRequest{CourseID: "CS101", CourseName: "Again", TeacherName: "A B"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestSubjectServiceCreateValidation(t *testing.T) {
	repo := seededSubjects()
	svc := NewSubjectService(repo, nil, nil, "")

	_, err := svc.Create(context.Background(), dto.CreateSubjectRequest{CourseID: "  ", CourseName: "Data", TeacherName: "A B"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
	assert.Equal(t, 0, repo.creates)
}

func TestSubjectServiceCreateUniqueViolation(t *testing.T) {
	repo := seededSubjects()
	repo.createErr = &pq.Error{Code: "23505", Constraint: "subjects_pkey"}
	svc := NewSubjectService(repo, nil, nil, "")

	_, err := svc.Create(context.Background(), dto.CreateSubjectRequest{CourseID: "CS200", CourseName: "Race", TeacherName: "A B"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
}

func TestSubjectServiceUpdateKeepsID(t *testing.T) {
	repo := seededSubjects()
	svc := NewSubjectService(repo, nil, nil, "")

	updated, err := svc.Update(context.Background(), "CS101", dto.UpdateSubjectRequest{CourseName: "Intro II", TeacherName: "E F"})
	require.NoError(t, err)
	assert.Equal(t, "CS101", updated.CourseID)
	assert.Equal(t, "Intro II", repo.subjects["CS101"].CourseName)

	_, err = svc.Update(context.Background(), "NOPE", dto.UpdateSubjectRequest{CourseName: "x", TeacherName: "y"})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestSubjectServiceDelete(t *testing.T) {
	repo := seededSubjects()
	svc := NewSubjectService(repo, nil, nil, "")

	_, err := svc.Delete(context.Background(), "CS101")
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), "CS101")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestSubjectServiceCheckinQR(t *testing.T) {
	repo := seededSubjects()
	svc := NewSubjectService(repo, nil, nil, "http://localhost:5173/")

	assert.Equal(t, "http://localhost:5173/check-class?classId=CS101", svc.CheckinURL("CS101"))
	assert.Equal(t, "http://localhost:5173/check-class?classId=A+B%2F1", svc.CheckinURL("A B/1"))

	png, err := svc.CheckinQR(context.Background(), "CS101")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.CheckinQR(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
