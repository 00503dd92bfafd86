package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type fakeProfessorService struct {
	professors []models.Professor
	err        error
	lastReq    dto.UpdateProfessorRequest
}

func (f *fakeProfessorService) List(context.Context) ([]models.Professor, error) {
	return f.professors, f.err
}

func (f *fakeProfessorService) Get(_ context.Context, id int64) (*models.Professor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.professors[0], nil
}

func (f *fakeProfessorService) Update(_ context.Context, id int64, req dto.UpdateProfessorRequest) (*models.Professor, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Professor{ID: id, FullName: req.FullName, Tel: req.Tel, Username: req.Username, Password: req.Password}, nil
}

func (f *fakeProfessorService) Delete(_ context.Context, id int64) (*models.Professor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.professors[0], nil
}

func TestProfessorHandlerListHidesPasswords(t *testing.T) {
	handler := NewProfessorHandler(&fakeProfessorService{professors: []models.Professor{{ID: 7, Username: "prof1", Password: "secret1"}}})

	c, rec := jsonContext(http.MethodGet, "/get-all-professors", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret1")
	var body dto.ProfessorListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.NotEmpty(t, body.Message)
}

func TestProfessorHandlerUpdate(t *testing.T) {
	svc := &fakeProfessorService{}
	handler := NewProfessorHandler(svc)

	c, rec := jsonContext(http.MethodPut, "/update-professor/7", map[string]string{
		"fullname": "A B", "tel": "0812345678", "username": "prof1", "password": "secret1",
	})
	withParams(c, "id", "7")
	handler.Update(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A B", svc.lastReq.FullName)
	assert.NotContains(t, rec.Body.String(), "secret1")
}

func TestProfessorHandlerNotFound(t *testing.T) {
	handler := NewProfessorHandler(&fakeProfessorService{err: appErrors.Clone(appErrors.ErrNotFound, "professor not found")})

	c, rec := jsonContext(http.MethodDelete, "/delete-professor/9", nil)
	withParams(c, "id", "9")
	handler.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfessorHandlerHidesInternalCause(t *testing.T) {
	handler := NewProfessorHandler(&fakeProfessorService{err: appErrors.Internal(errors.New("pq: relation missing"), "failed to load professors")})

	c, rec := jsonContext(http.MethodGet, "/get-all-professors", nil)
	handler.List(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation missing")
	assert.Len(t, c.Errors, 1)
}
