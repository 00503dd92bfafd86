package models

import "time"

// AttendanceStatus is the value recorded by a check-in.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLeave   AttendanceStatus = "leave"
)

// Known reports whether s is one of the canonical statuses.
func (s AttendanceStatus) Known() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusAbsent, AttendanceStatusLeave:
		return true
	default:
		return false
	}
}

// Attendance is an append-only check-in row.
type Attendance struct {
	ID          int64            `db:"id" json:"id"`
	CourseID    string           `db:"course_id" json:"course_id"`
	StudentID   string           `db:"student_id" json:"student_id"`
	CheckinTime time.Time        `db:"checkin_time" json:"checkin_time"`
	Status      AttendanceStatus `db:"status" json:"status"`
	LeaveFile   *string          `db:"leave_file" json:"-"`
}

// AttendanceFilter narrows attendance listings. Empty fields are ignored.
type AttendanceFilter struct {
	CourseID  string
	StudentID string
}
