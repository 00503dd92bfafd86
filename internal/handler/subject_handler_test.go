package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type fakeSubjectService struct {
	err        error
	lastID     string
	lastUpdate dto.UpdateSubjectRequest
}

func (f *fakeSubjectService) List(context.Context) ([]models.Subject, error) {
	return []models.Subject{{CourseID: "CS101"}}, f.err
}

func (f *fakeSubjectService) Get(_ context.Context, id string) (*models.Subject, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Subject{CourseID: id}, nil
}

func (f *fakeSubjectService) Create(_ context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Subject{CourseID: req.CourseID, CourseName: req.CourseName, TeacherName: req.TeacherName}, nil
}

func (f *fakeSubjectService) Update(_ context.Context, id string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	f.lastID = id
	f.lastUpdate = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Subject{CourseID: id, CourseName: req.CourseName, TeacherName: req.TeacherName}, nil
}

func (f *fakeSubjectService) Delete(_ context.Context, id string) (*models.Subject, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Subject{CourseID: id}, nil
}

func (f *fakeSubjectService) CheckinQR(_ context.Context, id string) ([]byte, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG"), nil
}

func TestSubjectHandlerCreate(t *testing.T) {
	handler := NewSubjectHandler(&fakeSubjectService{})

	c, rec := jsonContext(http.MethodPost, "/create-subject", map[string]string{
		"course_id": "CS101", "course_name": "Intro", "teacher_name": "A B",
	})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"subject created","data":{"course_id":"CS101","course_name":"Intro","teacher_name":"A B"}}`, rec.Body.String())
}

func TestSubjectHandlerCreateConflict(t *testing.T) {
	handler := NewSubjectHandler(&fakeSubjectService{err: appErrors.Clone(appErrors.ErrConflict, "course id already exists")})

	c, rec := jsonContext(http.MethodPost, "/create-subject", map[string]string{
		"course_id": "CS101", "course_name": "Intro", "teacher_name": "A B",
	})
	handler.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))
}

func TestSubjectHandlerUpdateUsesPathID(t *testing.T) {
	svc := &fakeSubjectService{}
	handler := NewSubjectHandler(svc)

	c, rec := jsonContext(http.MethodPut, "/update-subject/CS101", map[string]string{
		"course_id": "HACK", "course_name": "Intro II", "teacher_name": "E F",
	})
	withParams(c, "id", "CS101")
	handler.Update(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CS101", svc.lastID)
	assert.Contains(t, rec.Body.String(), `"course_id":"CS101"`)
}

func TestSubjectHandlerCheckinQR(t *testing.T) {
	handler := NewSubjectHandler(&fakeSubjectService{})

	c, rec := jsonContext(http.MethodGet, "/subjects/CS101/qr", nil)
	withParams(c, "id", "CS101")
	handler.CheckinQR(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
