package service

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/pkg/database"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

const checkinQRSize = 300

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, courseID string) (*models.Subject, error)
	Exists(ctx context.Context, courseID string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Delete(ctx context.Context, courseID string) (*models.Subject, error)
}

// SubjectService manages courses.
type SubjectService struct {
	repo          subjectRepository
	validator     *validator.Validate
	logger        *zap.Logger
	publicBaseURL string
}

// NewSubjectService constructs the subject service. publicBaseURL is the frontend origin
// encoded into check-in QR codes.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger, publicBaseURL string) *SubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: newValidator(validate), logger: logger, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// List returns all subjects.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list subjects failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load subjects")
	}
	return subjects, nil
}

// Get returns one subject.
func (s *SubjectService) Get(ctx context.Context, courseID string) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		s.logger.Error("load subject failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load subject")
	}
	return subject, nil
}

// Create adds a subject under a caller-chosen course id.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	req.CourseID = strings.TrimSpace(req.CourseID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}
	exists, err := s.repo.Exists(ctx, req.CourseID)
	if err != nil {
		s.logger.Error("subject check failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to create subject")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course id already exists")
	}
	subject := &models.Subject{CourseID: req.CourseID, CourseName: req.CourseName, TeacherName: req.TeacherName}
	if err := s.repo.Create(ctx, subject); err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, appErrors.Clone(appErrors.ErrConflict, "course id already exists")
		}
		s.logger.Error("create subject failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to create subject")
	}
	return subject, nil
}

// Update changes name and teacher. The course id is fixed at creation.
func (s *SubjectService) Update(ctx context.Context, courseID string, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}
	updated, err := s.repo.Update(ctx, &models.Subject{CourseID: courseID, CourseName: req.CourseName, TeacherName: req.TeacherName})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		s.logger.Error("update subject failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to update subject")
	}
	return updated, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, courseID string) (*models.Subject, error) {
	deleted, err := s.repo.Delete(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		s.logger.Error("delete subject failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to delete subject")
	}
	return deleted, nil
}

// CheckinURL is the frontend address a student opens to check in to courseID.
func (s *SubjectService) CheckinURL(courseID string) string {
	return s.publicBaseURL + "/check-class?classId=" + url.QueryEscape(courseID)
}

// CheckinQR renders a PNG QR code pointing at the course's check-in page.
func (s *SubjectService) CheckinQR(ctx context.Context, courseID string) ([]byte, error) {
	if _, err := s.Get(ctx, courseID); err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(s.CheckinURL(courseID), qrcode.Medium, checkinQRSize)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render qr code")
	}
	return png, nil
}
