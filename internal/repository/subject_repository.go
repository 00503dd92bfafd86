package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

// SubjectRepository manages the subjects (courses) table.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects ordered by course id.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	subjects := make([]models.Subject, 0)
	if err := r.db.SelectContext(ctx, &subjects, `SELECT course_id, course_name, teacher_name FROM subjects ORDER BY course_id ASC`); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject by course id.
func (r *SubjectRepository) FindByID(ctx context.Context, courseID string) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, `SELECT course_id, course_name, teacher_name FROM subjects WHERE course_id = $1`, courseID); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Exists reports whether courseID is taken.
func (r *SubjectRepository) Exists(ctx context.Context, courseID string) (bool, error) {
	var one int
	if err := r.db.GetContext(ctx, &one, `SELECT 1 FROM subjects WHERE course_id = $1 LIMIT 1`, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check subject: %w", err)
	}
	return true, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO subjects (course_id, course_name, teacher_name) VALUES (:course_id, :course_name, :teacher_name)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update renames or reassigns a subject. The course id is never written.
// It returns sql.ErrNoRows when the subject does not exist.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	const query = `UPDATE subjects SET course_name = $1, teacher_name = $2 WHERE course_id = $3
        RETURNING course_id, course_name, teacher_name`
	var updated models.Subject
	if err := r.db.GetContext(ctx, &updated, query, subject.CourseName, subject.TeacherName, subject.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update subject: %w", err)
	}
	return &updated, nil
}

// Delete removes a subject and returns it, or sql.ErrNoRows.
func (r *SubjectRepository) Delete(ctx context.Context, courseID string) (*models.Subject, error) {
	var deleted models.Subject
	if err := r.db.GetContext(ctx, &deleted, `DELETE FROM subjects WHERE course_id = $1 RETURNING course_id, course_name, teacher_name`, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("delete subject: %w", err)
	}
	return &deleted, nil
}
