package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

// EnrollmentRepository manages student-course links.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment and fills its id and timestamp.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (student_id, course_id) VALUES ($1, $2) RETURNING id, enrolled_at`
	if err := r.db.QueryRowxContext(ctx, query, enrollment.StudentID, enrollment.CourseID).Scan(&enrollment.ID, &enrollment.EnrolledAt); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// ListByStudent returns a student's enrollments with course details.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.id, e.student_id, e.course_id, e.enrolled_at, s.course_name, s.teacher_name
        FROM enrollments e
        JOIN subjects s ON s.course_id = e.course_id
        WHERE e.student_id = $1
        ORDER BY e.enrolled_at ASC`
	items := make([]models.EnrollmentDetail, 0)
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return items, nil
}

// Delete removes one enrollment and reports whether a row was affected.
func (r *EnrollmentRepository) Delete(ctx context.Context, studentID int64, courseID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return false, fmt.Errorf("delete enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete enrollment rows: %w", err)
	}
	return affected > 0, nil
}
