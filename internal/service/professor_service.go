package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/pkg/database"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type professorRepository interface {
	List(ctx context.Context) ([]models.Professor, error)
	FindByID(ctx context.Context, id int64) (*models.Professor, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	Update(ctx context.Context, professor *models.Professor) (*models.Professor, error)
	Delete(ctx context.Context, id int64) (*models.Professor, error)
}

// ProfessorService handles professor management.
type ProfessorService struct {
	repo          professorRepository
	students      studentUsernameChecker
	validator     *validator.Validate
	logger        *zap.Logger
	hashPasswords bool
}

// NewProfessorService constructs the professor service.
func NewProfessorService(repo professorRepository, students studentUsernameChecker, validate *validator.Validate, logger *zap.Logger, hashPasswords bool) *ProfessorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfessorService{repo: repo, students: students, validator: newValidator(validate), logger: logger, hashPasswords: hashPasswords}
}

// List returns every professor.
func (s *ProfessorService) List(ctx context.Context) ([]models.Professor, error) {
	professors, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list professors failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load professors")
	}
	return professors, nil
}

// Get returns a single professor.
func (s *ProfessorService) Get(ctx context.Context, id int64) (*models.Professor, error) {
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		s.logger.Error("load professor failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load professor")
	}
	return professor, nil
}

// Update replaces all of a professor's columns. A changed username must stay unique
// across both account tables.
func (s *ProfessorService) Update(ctx context.Context, id int64, req dto.UpdateProfessorRequest) (*models.Professor, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Tel = strings.TrimSpace(req.Tel)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid professor payload")
	}
	if err := checkUsernameFree(ctx, s.students, s.repo, req.Username, id, s.logger); err != nil {
		return nil, err
	}

	password, err := storedPassword(req.Password, s.hashPasswords)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to update professor")
	}
	updated, err := s.repo.Update(ctx, &models.Professor{ID: id, FullName: req.FullName, Tel: req.Tel, Username: req.Username, Password: password})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		if _, ok := database.UniqueViolation(err); ok {
			return nil, appErrors.ErrUsernameTaken
		}
		s.logger.Error("update professor failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to update professor")
	}
	return updated, nil
}

// Delete removes a professor and returns the removed row.
func (s *ProfessorService) Delete(ctx context.Context, id int64) (*models.Professor, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		s.logger.Error("delete professor failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to delete professor")
	}
	return deleted, nil
}
