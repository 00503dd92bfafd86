package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/pkg/database"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
)

type professorAccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Professor, error)
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
	Create(ctx context.Context, professor *models.Professor) error
}

type studentAccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Student, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	StdClassIDExists(ctx context.Context, stdClassID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
}

type tokenStore interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type loginRecorder interface {
	RecordLogin(outcome string)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	TokenSecret   string
	TokenExpiry   time.Duration
	Issuer        string
	HashPasswords bool
}

// AuthService resolves credentials to a role-tagged identity and registers new accounts.
type AuthService struct {
	professors professorAccountRepository
	students   studentAccountRepository
	tokens     tokenStore
	metrics    loginRecorder
	validator  *validator.Validate
	logger     *zap.Logger
	config     AuthConfig
	now        func() time.Time
}

// NewAuthService constructs an AuthService instance. tokens and metrics may be nil.
func NewAuthService(professors professorAccountRepository, students studentAccountRepository, tokens tokenStore, metrics loginRecorder, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	return &AuthService{
		professors: professors,
		students:   students,
		tokens:     tokens,
		metrics:    metrics,
		validator:  newValidator(validate),
		logger:     logger,
		config:     config,
		now:        time.Now,
	}
}

// Login checks the professor table first, then the student table. Unknown usernames and
// wrong passwords yield the same error.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.Identity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	identity, err := s.resolveProfessor(ctx, req)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		if identity, err = s.resolveStudent(ctx, req); err != nil {
			return nil, err
		}
	}
	if identity == nil {
		s.recordLogin("invalid")
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(identity)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to issue token")
	}
	identity.Token = token
	if identity.Role == models.RoleProfessor {
		s.recordLogin("professor")
	} else {
		s.recordLogin("student")
	}
	return identity, nil
}

func (s *AuthService) resolveProfessor(ctx context.Context, req dto.LoginRequest) (*models.Identity, error) {
	professor, err := s.professors.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("professor lookup failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to sign in")
	}
	if !passwordMatches(professor.Password, req.Password) {
		return nil, nil
	}
	return &models.Identity{
		Role:       models.RoleProfessor,
		ID:         professor.ID,
		Username:   professor.Username,
		FullName:   professor.FullName,
		SignInDate: s.now().UTC(),
	}, nil
}

func (s *AuthService) resolveStudent(ctx context.Context, req dto.LoginRequest) (*models.Identity, error) {
	student, err := s.students.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("student lookup failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to sign in")
	}
	if !passwordMatches(student.Password, req.Password) {
		return nil, nil
	}
	id := student.StudentID
	classID := student.StdClassID
	major := student.Major
	return &models.Identity{
		Role:       models.RoleStudent,
		ID:         id,
		StudentID:  &id,
		StdClassID: &classID,
		Username:   student.Username,
		FullName:   student.FullName,
		Major:      &major,
		SignInDate: s.now().UTC(),
	}, nil
}

// RegisterStudent creates a student account with major IT.
func (s *AuthService) RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) (*dto.RegisteredAccount, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.StudentID = strings.TrimSpace(req.StudentID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid registration payload")
	}
	if err := s.ensureUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}
	taken, err := s.students.StdClassIDExists(ctx, req.StudentID)
	if err != nil {
		s.logger.Error("student id check failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to register")
	}
	if taken {
		return nil, appErrors.ErrStudentIDTaken
	}

	password, err := storedPassword(req.Password, s.config.HashPasswords)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to register")
	}
	student := &models.Student{
		StdClassID: req.StudentID,
		FullName:   req.FullName,
		Username:   req.Username,
		Password:   password,
		Major:      models.DefaultMajor,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			if strings.Contains(constraint, "std_class_id") {
				return nil, appErrors.ErrStudentIDTaken
			}
			return nil, appErrors.ErrUsernameTaken
		}
		s.logger.Error("create student failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to register")
	}
	return &dto.RegisteredAccount{StudentID: student.StudentID, FullName: student.FullName, Username: student.Username}, nil
}

// RegisterProfessor creates a professor account.
func (s *AuthService) RegisterProfessor(ctx context.Context, req dto.RegisterProfessorRequest) (*dto.RegisteredAccount, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Tel = strings.TrimSpace(req.Tel)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid registration payload")
	}
	if err := s.ensureUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	password, err := storedPassword(req.Password, s.config.HashPasswords)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to register")
	}
	professor := &models.Professor{FullName: req.FullName, Tel: req.Tel, Username: req.Username, Password: password}
	if err := s.professors.Create(ctx, professor); err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return nil, appErrors.ErrUsernameTaken
		}
		s.logger.Error("create professor failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to register")
	}
	return &dto.RegisteredAccount{ID: professor.ID, FullName: professor.FullName, Username: professor.Username}, nil
}

// ensureUsernameFree checks both account tables.
func (s *AuthService) ensureUsernameFree(ctx context.Context, username string) error {
	return checkUsernameFree(ctx, s.students, s.professors, username, 0, s.logger)
}

type studentUsernameChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type professorUsernameChecker interface {
	UsernameExists(ctx context.Context, username string, excludeID int64) (bool, error)
}

// checkUsernameFree enforces username uniqueness across students and professors.
// excludeProfessorID lets a professor keep their own username on update.
func checkUsernameFree(ctx context.Context, students studentUsernameChecker, professors professorUsernameChecker, username string, excludeProfessorID int64, logger *zap.Logger) error {
	inStudents, err := students.UsernameExists(ctx, username)
	if err != nil {
		logger.Error("student username check failed", zap.Error(err))
		return appErrors.Internal(err, "failed to check username")
	}
	inProfessors, err := professors.UsernameExists(ctx, username, excludeProfessorID)
	if err != nil {
		logger.Error("professor username check failed", zap.Error(err))
		return appErrors.Internal(err, "failed to check username")
	}
	if inStudents || inProfessors {
		return appErrors.ErrUsernameTaken
	}
	return nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if s.tokens == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.tokens.RevokeToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("token revocation failed", zap.Error(err))
		return appErrors.Internal(err, "failed to sign out")
	}
	return nil
}

// ValidateToken parses and validates a bearer token, rejecting revoked ids. When the
// revocation store is unreachable the token is accepted and the failure logged.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	if s.tokens != nil {
		revoked, err := s.tokens.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("token revocation check failed", zap.Error(err))
		} else if revoked {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token has been revoked")
		}
	}
	return claims, nil
}

func (s *AuthService) issueToken(identity *models.Identity) (string, error) {
	issuedAt := s.now().UTC()
	subject := strconv.FormatInt(identity.ID, 10)
	claims := &models.JWTClaims{
		UserID:   subject,
		Role:     identity.Role,
		Username: identity.Username,
		FullName: identity.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.TokenSecret))
}

func (s *AuthService) recordLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordLogin(outcome)
	}
}
