package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

const studentProfileColumns = "student_id, fullname, std_class_id, username, major"

// StudentRepository manages persistence for student accounts.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student profile ordered by id.
func (r *StudentRepository) List(ctx context.Context) ([]models.StudentProfile, error) {
	query := "SELECT " + studentProfileColumns + " FROM students ORDER BY student_id ASC"
	students := make([]models.StudentProfile, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID returns the password-free projection of a student.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	query := "SELECT " + studentProfileColumns + " FROM students WHERE student_id = $1 LIMIT 1"
	var student models.StudentProfile
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByUsername returns the full student row, password included, for credential checks.
func (r *StudentRepository) FindByUsername(ctx context.Context, username string) (*models.Student, error) {
	const query = `SELECT student_id, std_class_id, fullname, username, password, major FROM students WHERE username = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, username); err != nil {
		return nil, err
	}
	return &student, nil
}

// UsernameExists reports whether any student uses username.
func (r *StudentRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM students WHERE username = $1 LIMIT 1", username)
}

// StdClassIDExists reports whether the class/cohort code is already registered.
func (r *StudentRepository) StdClassIDExists(ctx context.Context, stdClassID string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM students WHERE std_class_id = $1 LIMIT 1", stdClassID)
}

// Create inserts a student and fills the generated key.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.Major == "" {
		student.Major = models.DefaultMajor
	}
	const query = `INSERT INTO students (std_class_id, fullname, username, password, major)
        VALUES ($1, $2, $3, $4, $5) RETURNING student_id`
	if err := r.db.QueryRowxContext(ctx, query, student.StdClassID, student.FullName, student.Username, student.Password, student.Major).Scan(&student.StudentID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// UpdateNameMajor applies a coalesce update and returns the resulting name and major.
// It returns sql.ErrNoRows when the student does not exist.
func (r *StudentRepository) UpdateNameMajor(ctx context.Context, id int64, patch models.StudentPatch) (*models.StudentNameMajor, error) {
	const query = `UPDATE students
        SET fullname = COALESCE($1, fullname), major = COALESCE($2, major)
        WHERE student_id = $3
        RETURNING fullname, major`
	var out models.StudentNameMajor
	if err := r.db.GetContext(ctx, &out, query, patch.FullName, patch.Major, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return &out, nil
}

// DeleteWithEnrollments removes a student's enrollments and the student row in one
// transaction. When the student row does not exist the enrollment delete is rolled back
// and sql.ErrNoRows is returned.
func (r *StudentRepository) DeleteWithEnrollments(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete student: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM enrollments WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("delete student enrollments: %w", err)
	}

	var deleted int64
	if err := tx.QueryRowxContext(ctx, `DELETE FROM students WHERE student_id = $1 RETURNING student_id`, id).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("delete student: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete student: %w", err)
	}
	committed = true
	return nil
}

func (r *StudentRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check student: %w", err)
	}
	return true, nil
}
