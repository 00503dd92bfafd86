package service

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
	"github.com/noah-isme/class-attendance-api/pkg/export"
	"github.com/noah-isme/class-attendance-api/pkg/jobs"
	"github.com/noah-isme/class-attendance-api/pkg/storage"
)

// JobTypeUploadCleanup removes a leave document whose attendance row was never written.
const JobTypeUploadCleanup = "upload_cleanup"

const sniffLength = 512

var extensionsByMIME = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
}

type attendanceRepository interface {
	Create(ctx context.Context, record *models.Attendance) error
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.Attendance, error)
	FindByID(ctx context.Context, id int64) (*models.Attendance, error)
}

type fileStorage interface {
	SaveStream(name string, r io.Reader) (string, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
}

type urlSigner interface {
	Generate(resourceID, relPath string) (string, time.Time, error)
	Parse(token string) (string, string, error)
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type checkInRecorder interface {
	RecordCheckIn(status string, withDocument bool)
	RecordUploadCleanup(result string)
}

// AttendanceConfig bounds leave document uploads and names the download route.
type AttendanceConfig struct {
	MaxFileSize  int64
	AllowedMIMEs []string
	// DownloadBase is the path prefix the signed leave-document URL is built on, e.g. /api.
	DownloadBase string
}

// AttendanceService records check-ins and serves them back.
type AttendanceService struct {
	repo      attendanceRepository
	storage   fileStorage
	signer    urlSigner
	cleanup   jobEnqueuer
	metrics   checkInRecorder
	validator *validator.Validate
	logger    *zap.Logger
	cfg       AttendanceConfig
	allowed   map[string]struct{}
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service. cleanup and metrics may be nil.
func NewAttendanceService(repo attendanceRepository, store fileStorage, signer urlSigner, cleanup jobEnqueuer, metrics checkInRecorder, validate *validator.Validate, logger *zap.Logger, cfg AttendanceConfig) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 5 * 1024 * 1024
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"application/pdf", "image/png", "image/jpeg"}
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, m := range cfg.AllowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	cfg.DownloadBase = strings.TrimRight(cfg.DownloadBase, "/")
	return &AttendanceService{
		repo:      repo,
		storage:   store,
		signer:    signer,
		cleanup:   cleanup,
		metrics:   metrics,
		validator: newValidator(validate),
		logger:    logger,
		cfg:       cfg,
		allowed:   allowed,
		now:       time.Now,
	}
}

// CheckIn stores the optional leave document, then appends the attendance row. When the
// insert fails the stored document is removed again so no orphan is left behind.
func (s *AttendanceService) CheckIn(ctx context.Context, req dto.CheckInRequest, upload *dto.Upload) error {
	req.Status = strings.TrimSpace(req.Status)
	req.ClassID = strings.TrimSpace(req.ClassID)
	req.StdID = strings.TrimSpace(req.StdID)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid check-in payload")
	}
	status := models.AttendanceStatus(req.Status)
	if lowered := models.AttendanceStatus(strings.ToLower(req.Status)); lowered.Known() {
		status = lowered
	}

	var stored *string
	if upload != nil {
		name, err := s.storeUpload(upload)
		if err != nil {
			return err
		}
		stored = &name
	}

	record := &models.Attendance{
		CourseID:    req.ClassID,
		StudentID:   req.StdID,
		CheckinTime: s.now().UTC(),
		Status:      status,
		LeaveFile:   stored,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("create attendance failed", zap.Error(err), zap.String("course_id", req.ClassID), zap.String("student_id", req.StdID))
		if stored != nil {
			s.discardUpload(*stored)
		}
		return appErrors.Internal(err, "failed to record attendance")
	}
	if s.metrics != nil {
		s.metrics.RecordCheckIn(string(status), stored != nil)
	}
	return nil
}

func (s *AttendanceService) storeUpload(upload *dto.Upload) (string, error) {
	if upload.Size > s.cfg.MaxFileSize {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("leave document exceeds %d bytes", s.cfg.MaxFileSize))
	}
	reader := bufio.NewReaderSize(upload.Content, sniffLength)
	head, err := reader.Peek(sniffLength)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", appErrors.Internal(err, "failed to read leave document")
	}
	if len(head) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "leave document is empty")
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(http.DetectContentType(head), ";")[0]))
	if _, ok := s.allowed[contentType]; !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "unsupported leave document type "+contentType)
	}

	now := s.now().UTC()
	name := path.Join(now.Format("2006"), now.Format("01"), uuid.NewString()+uploadExtension(contentType, upload.Filename))
	limited := io.LimitReader(reader, s.cfg.MaxFileSize+1)
	counter := &countingReader{r: limited}
	stored, err := s.storage.SaveStream(name, counter)
	if err != nil {
		s.logger.Error("store leave document failed", zap.Error(err))
		return "", appErrors.Internal(err, "failed to store leave document")
	}
	if counter.n > s.cfg.MaxFileSize {
		s.discardUpload(stored)
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("leave document exceeds %d bytes", s.cfg.MaxFileSize))
	}
	return stored, nil
}

func (s *AttendanceService) discardUpload(name string) {
	err := s.storage.Delete(name)
	if err == nil {
		s.recordCleanup("deleted")
		return
	}
	if s.cleanup == nil {
		s.logger.Error("orphaned leave document", zap.String("file", name), zap.Error(err))
		s.recordCleanup("failed")
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: JobTypeUploadCleanup, Payload: name}
	if qerr := s.cleanup.Enqueue(job); qerr != nil {
		s.logger.Error("orphaned leave document", zap.String("file", name), zap.Error(err), zap.NamedError("enqueue_error", qerr))
		s.recordCleanup("failed")
		return
	}
	s.recordCleanup("queued")
}

func (s *AttendanceService) recordCleanup(result string) {
	if s.metrics != nil {
		s.metrics.RecordUploadCleanup(result)
	}
}

// UploadCleanupHandler deletes the stored file named by an upload_cleanup job.
func UploadCleanupHandler(store fileStorage) jobs.Handler {
	return func(_ context.Context, job jobs.Job) error {
		name, ok := job.Payload.(string)
		if !ok || name == "" {
			return nil
		}
		return store.Delete(name)
	}
}

// List returns check-ins matching filter, newest first, with signed links to leave documents.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) ([]dto.AttendanceRecord, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load attendance")
	}
	out := make([]dto.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		record := dto.AttendanceRecord{
			ID:          row.ID,
			CourseID:    row.CourseID,
			StudentID:   row.StudentID,
			CheckinTime: row.CheckinTime,
			Status:      string(row.Status),
			HasLeaveDoc: row.LeaveFile != nil && *row.LeaveFile != "",
		}
		if record.HasLeaveDoc && s.signer != nil {
			token, expires, err := s.signer.Generate(strconv.FormatInt(row.ID, 10), *row.LeaveFile)
			if err != nil {
				s.logger.Warn("sign leave document url failed", zap.Int64("attendance_id", row.ID), zap.Error(err))
			} else {
				record.LeaveDocURL = fmt.Sprintf("%s/attendance/%d/leave-doc?token=%s", s.cfg.DownloadBase, row.ID, url.QueryEscape(token))
				record.URLExpires = &expires
			}
		}
		out = append(out, record)
	}
	return out, nil
}

// OpenLeaveDoc checks token against attendance id and returns the stored document and its content type.
// The caller closes the file.
func (s *AttendanceService) OpenLeaveDoc(ctx context.Context, id int64, token string) (*os.File, string, error) {
	if s.signer == nil || token == "" {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "download token required")
	}
	resourceID, relPath, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, "", appErrors.Clone(appErrors.ErrForbidden, "download link expired")
		}
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}
	if resourceID != strconv.FormatInt(id, 10) {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		s.logger.Error("load attendance failed", zap.Error(err))
		return nil, "", appErrors.Internal(err, "failed to load attendance")
	}
	if record.LeaveFile == nil || *record.LeaveFile != relPath {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "leave document not found")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "leave document not found")
		}
		s.logger.Error("open leave document failed", zap.Error(err))
		return nil, "", appErrors.Internal(err, "failed to open leave document")
	}
	contentType := mime.TypeByExtension(filepath.Ext(relPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return file, contentType, nil
}

var exportHeaders = []string{"ID", "Course", "Student", "Check-in (UTC)", "Status", "Leave document"}

// Export renders the attendance sheet of a course in the requested format.
func (s *AttendanceService) Export(ctx context.Context, courseID, format string) (*dto.AttendanceExport, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classId is required")
	}
	f, err := export.ParseFormat(strings.ToLower(strings.TrimSpace(format)))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv, pdf or xlsx")
	}
	rows, err := s.repo.List(ctx, models.AttendanceFilter{CourseID: courseID})
	if err != nil {
		s.logger.Error("list attendance for export failed", zap.Error(err))
		return nil, appErrors.Internal(err, "failed to load attendance")
	}

	data := export.Dataset{Title: "Attendance " + courseID, Headers: exportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		leave := "no"
		if row.LeaveFile != nil && *row.LeaveFile != "" {
			leave = "yes"
		}
		data.Rows = append(data.Rows, map[string]string{
			"ID":             strconv.FormatInt(row.ID, 10),
			"Course":         row.CourseID,
			"Student":        row.StudentID,
			"Check-in (UTC)": row.CheckinTime.UTC().Format("2006-01-02 15:04:05"),
			"Status":         string(row.Status),
			"Leave document": leave,
		})
	}
	body, err := export.RendererFor(f).Render(data)
	if err != nil {
		s.logger.Error("render attendance export failed", zap.Error(err), zap.String("format", string(f)))
		return nil, appErrors.Internal(err, "failed to export attendance")
	}
	return &dto.AttendanceExport{
		Filename:    fmt.Sprintf("attendance-%s-%s.%s", sanitizeFilename(courseID), s.now().UTC().Format("20060102"), f),
		ContentType: f.ContentType(),
		Body:        body,
	}, nil
}

func uploadExtension(contentType, filename string) string {
	if ext, ok := extensionsByMIME[contentType]; ok {
		return ext
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 1 && len(ext) <= 6 {
		return ext
	}
	return ".bin"
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
