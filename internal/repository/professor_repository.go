package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/class-attendance-api/internal/models"
)

const professorColumns = "id, fullname, tel, username, password"

// ProfessorRepository manages persistence for professor accounts.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository constructs a ProfessorRepository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// List returns all professors ordered by id.
func (r *ProfessorRepository) List(ctx context.Context) ([]models.Professor, error) {
	professors := make([]models.Professor, 0)
	if err := r.db.SelectContext(ctx, &professors, "SELECT "+professorColumns+" FROM professors ORDER BY id ASC"); err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	return professors, nil
}

// FindByID fetches a professor by primary key.
func (r *ProfessorRepository) FindByID(ctx context.Context, id int64) (*models.Professor, error) {
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, "SELECT "+professorColumns+" FROM professors WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &professor, nil
}

// FindByUsername fetches a professor for credential checks.
func (r *ProfessorRepository) FindByUsername(ctx context.Context, username string) (*models.Professor, error) {
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, "SELECT "+professorColumns+" FROM professors WHERE username = $1 LIMIT 1", username); err != nil {
		return nil, err
	}
	return &professor, nil
}

// UsernameExists reports whether another professor uses username. excludeID skips the
// caller's own row on update; pass 0 on create.
func (r *ProfessorRepository) UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM professors WHERE username = $1"
	args := []interface{}{username}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var one int
	if err := r.db.GetContext(ctx, &one, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check professor username: %w", err)
	}
	return true, nil
}

// Create inserts a professor and fills the generated id.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	const query = `INSERT INTO professors (fullname, tel, username, password) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, professor.FullName, professor.Tel, professor.Username, professor.Password).Scan(&professor.ID); err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// Update replaces every mutable column. It returns sql.ErrNoRows when the id is unknown.
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) (*models.Professor, error) {
	const query = `UPDATE professors SET fullname = $1, tel = $2, username = $3, password = $4
        WHERE id = $5 RETURNING ` + professorColumns
	var updated models.Professor
	if err := r.db.GetContext(ctx, &updated, query, professor.FullName, professor.Tel, professor.Username, professor.Password, professor.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update professor: %w", err)
	}
	return &updated, nil
}

// Delete removes a professor and returns the deleted row, or sql.ErrNoRows.
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) (*models.Professor, error) {
	var deleted models.Professor
	if err := r.db.GetContext(ctx, &deleted, "DELETE FROM professors WHERE id = $1 RETURNING "+professorColumns, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("delete professor: %w", err)
	}
	return &deleted, nil
}
