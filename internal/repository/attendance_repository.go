package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

const attendanceColumns = "id, course_id, student_id, checkin_time, status, leave_file"

// AttendanceRepository appends and reads check-in rows.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a check-in and fills its id.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	const query = `INSERT INTO attendance (course_id, student_id, checkin_time, status, leave_file)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, record.CourseID, record.StudentID, record.CheckinTime, record.Status, record.LeaveFile).Scan(&record.ID); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// List returns check-ins matching filter, newest first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.CourseID != "" {
		args = append(args, filter.CourseID)
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM attendance WHERE %s ORDER BY checkin_time DESC, id DESC", attendanceColumns, strings.Join(conditions, " AND "))

	records := make([]models.Attendance, 0)
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// FindByID fetches one check-in.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.Attendance, error) {
	var record models.Attendance
	if err := r.db.GetContext(ctx, &record, "SELECT "+attendanceColumns+" FROM attendance WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &record, nil
}
