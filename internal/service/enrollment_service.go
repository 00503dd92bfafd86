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

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error)
	Delete(ctx context.Context, studentID int64, courseID string) (bool, error)
}

type enrollmentStudentLookup interface {
	FindByID(ctx context.Context, id int64) (*models.StudentProfile, error)
}

type enrollmentSubjectLookup interface {
	Exists(ctx context.Context, courseID string) (bool, error)
}

// EnrollmentService links students to courses.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  enrollmentStudentLookup
	subjects  enrollmentSubjectLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, students enrollmentStudentLookup, subjects enrollmentSubjectLookup, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, students: students, subjects: subjects, validator: newValidator(validate), logger: logger}
}

// Enroll links a student to a course.
func (s *EnrollmentService) Enroll(ctx context.Context, req dto.EnrollRequest) (*models.Enrollment, error) {
	req.CourseID = strings.TrimSpace(req.CourseID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if err := s.ensureStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}
	exists, err := s.subjects.Exists(ctx, req.CourseID)
	if err != nil {
		s.logger.Error("subject check failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to enroll student")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}

	enrollment := &models.Enrollment{StudentID: req.StudentID, CourseID: req.CourseID}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student already enrolled in this subject")
		}
		if database.ForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student or subject not found")
		}
		s.logger.Error("create enrollment failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to enroll student")
	}
	return enrollment, nil
}

// ListByStudent returns the courses a student is enrolled in.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list enrollments failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load enrollments")
	}
	return items, nil
}

// Unenroll removes a single enrollment.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID int64, courseID string) error {
	removed, err := s.repo.Delete(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error("delete enrollment failed", zap.Error(err))
		return appErrors.Internal(err, "failed to remove enrollment")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return nil
}

func (s *EnrollmentService) ensureStudent(ctx context.Context, studentID int64) error {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("student lookup failed", zap.Error(err))
		return appErrors.Internal(err, "failed to load student")
	}
	return nil
}
