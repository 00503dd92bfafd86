package dto

import (
	"io"
	"time"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

// CheckInRequest is the /check-class multipart form minus the file part.
type CheckInRequest struct {
	Status  string `form:"status" validate:"required,max=32"`
	ClassID string `form:"classId" validate:"required"`
	StdID   string `form:"stdId" validate:"required"`
}

// Upload is an optional leave document attached to a check-in.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// AttendanceRecord is an attendance row as served to clients. LeaveDocURL is a signed,
// expiring download link present only when a document was uploaded.
type AttendanceRecord struct {
	ID          int64      `json:"id"`
	CourseID    string     `json:"course_id"`
	StudentID   string     `json:"student_id"`
	CheckinTime time.Time  `json:"checkin_time"`
	Status      string     `json:"status"`
	HasLeaveDoc bool       `json:"has_leave_doc"`
	LeaveDocURL string     `json:"leave_doc_url,omitempty"`
	URLExpires  *time.Time `json:"leave_doc_expires_at,omitempty"`
}

type AttendanceListResponse struct {
	Total int                `json:"total"`
	Data  []AttendanceRecord `json:"data"`
}

// AttendanceExport is a rendered attendance sheet ready to stream.
type AttendanceExport struct {
	Filename    string
	ContentType string
	Body        []byte
}

// AttendanceFilterFromQuery maps listing query parameters onto a repository filter.
func AttendanceFilterFromQuery(classID, stdID string) models.AttendanceFilter {
	return models.AttendanceFilter{CourseID: classID, StudentID: stdID}
}
