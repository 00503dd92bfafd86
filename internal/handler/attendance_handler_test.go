package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type fakeAttendanceService struct {
	err        error
	lastReq    dto.CheckInRequest
	uploadName string
	uploadBody []byte
	lastFilter models.AttendanceFilter
	docPath    string
	export     *dto.AttendanceExport
}

func (f *fakeAttendanceService) CheckIn(_ context.Context, req dto.CheckInRequest, upload *dto.Upload) error {
	f.lastReq = req
	if upload != nil {
		f.uploadName = upload.Filename
		f.uploadBody, _ = io.ReadAll(upload.Content)
	}
	return f.err
}

func (f *fakeAttendanceService) List(_ context.Context, filter models.AttendanceFilter) ([]dto.AttendanceRecord, error) {
	f.lastFilter = filter
	return []dto.AttendanceRecord{{ID: 1, CourseID: filter.CourseID}}, f.err
}

func (f *fakeAttendanceService) OpenLeaveDoc(_ context.Context, id int64, token string) (*os.File, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	file, err := os.Open(f.docPath)
	return file, "application/pdf", err
}

func (f *fakeAttendanceService) Export(_ context.Context, courseID, format string) (*dto.AttendanceExport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.export, nil
}

func multipartContext(t *testing.T, fields map[string]string, fileName string, fileBody []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("leavDoc", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/check-class", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c, rec
}

func TestAttendanceHandlerCheckInWithDocument(t *testing.T) {
	svc := &fakeAttendanceService{}
	handler := NewAttendanceHandler(svc)

	c, rec := multipartContext(t, map[string]string{"status": "leave", "classId": "CS101", "stdId": "6501"}, "note.pdf", []byte("%PDF-1.4"))
	handler.CheckIn(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "CS101", svc.lastReq.ClassID)
	assert.Equal(t, "6501", svc.lastReq.StdID)
	assert.Equal(t, "note.pdf", svc.uploadName)
	assert.Equal(t, []byte("%PDF-1.4"), svc.uploadBody)
}

func TestAttendanceHandlerCheckInWithoutDocument(t *testing.T) {
	svc := &fakeAttendanceService{}
	handler := NewAttendanceHandler(svc)

	c, rec := multipartContext(t, map[string]string{"status": "present", "classId": "CS101", "stdId": "6501"}, "", nil)
	handler.CheckIn(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.uploadName)
}

func TestAttendanceHandlerCheckInFailure(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{err: appErrors.Internal(os.ErrPermission, "failed to record attendance")})

	c, rec := multipartContext(t, map[string]string{"status": "present", "classId": "CS101", "stdId": "6501"}, "", nil)
	handler.CheckIn(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to record attendance")
}

func TestAttendanceHandlerListPassesFilter(t *testing.T) {
	svc := &fakeAttendanceService{}
	handler := NewAttendanceHandler(svc)

	c, rec := jsonContext(http.MethodGet, "/attendance?classId=CS101&stdId=6501", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AttendanceFilter{CourseID: "CS101", StudentID: "6501"}, svc.lastFilter)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestAttendanceHandlerDownloadLeaveDoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 body"), 0o644))
	handler := NewAttendanceHandler(&fakeAttendanceService{docPath: path})

	c, rec := jsonContext(http.MethodGet, "/attendance/1/leave-doc?token=abc", nil)
	withParams(c, "id", "1")
	handler.DownloadLeaveDoc(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4 body", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "doc.pdf")

	handler = NewAttendanceHandler(&fakeAttendanceService{err: appErrors.Clone(appErrors.ErrForbidden, "download link expired")})
	c, rec = jsonContext(http.MethodGet, "/attendance/1/leave-doc?token=abc", nil)
	withParams(c, "id", "1")
	handler.DownloadLeaveDoc(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceHandlerExport(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{export: &dto.AttendanceExport{
		Filename: "attendance-CS101-20240304.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("a,b\n"),
	}})

	c, rec := jsonContext(http.MethodGet, "/attendance/export?classId=CS101", nil)
	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance-CS101-20240304.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}
