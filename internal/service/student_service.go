package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.StudentProfile, error)
	FindByID(ctx context.Context, id int64) (*models.StudentProfile, error)
	UpdateNameMajor(ctx context.Context, id int64, patch models.StudentPatch) (*models.StudentNameMajor, error)
	DeleteWithEnrollments(ctx context.Context, id int64) error
}

// StudentService handles student profile reads, partial updates and deletion.
type StudentService struct {
	repo   studentRepository
	logger *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, logger: logger}
}

// List returns every student profile.
func (s *StudentService) List(ctx context.Context) ([]models.StudentProfile, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load students")
	}
	return students, nil
}

// Get returns a student profile.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentProfile, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("load student failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load student")
	}
	return student, nil
}

// Update changes the full name and/or major. Blank or missing fields keep their stored value.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.StudentNameMajor, error) {
	patch := models.StudentPatch{FullName: nonBlank(req.FullName), Major: nonBlank(req.Major)}
	if patch.FullName == nil && patch.Major == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fullname or major is required")
	}
	out, err := s.repo.UpdateNameMajor(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("update student failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to update student")
	}
	return out, nil
}

// Delete removes a student together with their enrollments, atomically.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteWithEnrollments(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("delete student failed", zap.Error(err))
		return appErrors.Internal(err, "failed to delete student")
	}
	return nil
}

func nonBlank(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
