package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
	"github.com/noah-isme/class-attendance-api/pkg/response"
)

// leaveDocField is the multipart field name the check-in form uses for the leave document.
const leaveDocField = "leavDoc"

type attendanceService interface {
	CheckIn(ctx context.Context, req dto.CheckInRequest, upload *dto.Upload) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]dto.AttendanceRecord, error)
	OpenLeaveDoc(ctx context.Context, id int64, token string) (*os.File, string, error)
	Export(ctx context.Context, courseID, format string) (*dto.AttendanceExport, error)
}

// AttendanceHandler serves check-in, listing, leave documents and exports.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs an AttendanceHandler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// CheckIn godoc
// @Summary Record attendance
// @Tags Attendance
// @Accept multipart/form-data
// @Produce json
// @Param status formData string true "present, late, absent or leave"
// @Param classId formData string true "Course ID"
// @Param stdId formData string true "Student ID"
// @Param leavDoc formData file false "Leave document"
// @Success 200 {object} dto.OKResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /check-class [post]
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}

	var upload *dto.Upload
	header, err := c.FormFile(leaveDocField)
	switch {
	case err == nil:
		file, openErr := header.Open()
		if openErr != nil {
			response.Error(c, appErrors.Internal(openErr, "failed to read leave document"))
			return
		}
		defer file.Close()
		upload = &dto.Upload{Filename: header.Filename, Size: header.Size, Content: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.Error(c, invalidBody(err))
		return
	}

	if err := h.service.CheckIn(c.Request.Context(), req, upload); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.OKResponse{OK: true})
}

// List godoc
// @Summary List check-ins
// @Tags Attendance
// @Produce json
// @Param classId query string false "Course ID"
// @Param stdId query string false "Student ID"
// @Success 200 {object} dto.AttendanceListResponse
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context(), dto.AttendanceFilterFromQuery(c.Query("classId"), c.Query("stdId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.AttendanceListResponse{Total: len(records), Data: records})
}

// DownloadLeaveDoc godoc
// @Summary Download a leave document through a signed link
// @Tags Attendance
// @Produce octet-stream
// @Param id path int true "Attendance ID"
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /attendance/{id}/leave-doc [get]
func (h *AttendanceHandler) DownloadLeaveDoc(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	file, contentType, err := h.service.OpenLeaveDoc(c.Request.Context(), id, c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Internal(err, "failed to read leave document"))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", filepath.Base(file.Name())),
		"Cache-Control":       "private, no-store",
	})
}

// Export godoc
// @Summary Export a course's attendance sheet
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param classId query string true "Course ID"
// @Param format query string false "csv (default), pdf or xlsx"
// @Success 200 {file} binary
// @Failure 400 {object} response.ErrorBody
// @Router /attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	out, err := h.service.Export(c.Request.Context(), c.Query("classId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, out.ContentType, out.Body)
}
