package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/class-attendance-api/api/swagger"
	"github.com/noah-isme/class-attendance-api/internal/handler"
	"github.com/noah-isme/class-attendance-api/internal/repository"
	"github.com/noah-isme/class-attendance-api/internal/router"
	"github.com/noah-isme/class-attendance-api/internal/service"
	"github.com/noah-isme/class-attendance-api/pkg/cache"
	"github.com/noah-isme/class-attendance-api/pkg/config"
	"github.com/noah-isme/class-attendance-api/pkg/database"
	"github.com/noah-isme/class-attendance-api/pkg/jobs"
	"github.com/noah-isme/class-attendance-api/pkg/logger"
	"github.com/noah-isme/class-attendance-api/pkg/storage"
)

// @title Class Attendance API
// @version 1.0.0
// @description Professors, students, subjects, enrollments and class check-ins.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWT.Secret == "dev_secret" || cfg.Uploads.SignedURLSecret == "dev_uploads_secret" {
			logr.Warn("running in production with development secrets")
		}
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := database.RunMigrations(db.DB, logr); err != nil {
			logr.Fatal("database migration failed", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if rdb, err = cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, token revocation and rate limiting disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Fatal("upload storage init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanupQueue := jobs.NewQueue("upload-cleanup", service.UploadCleanupHandler(uploads), jobs.QueueConfig{
		Workers:    1,
		MaxRetries: cfg.Uploads.CleanupRetries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	cleanupQueue.Start(ctx)
	defer cleanupQueue.Stop()

	validate := validator.New()
	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	redisStore := repository.NewRedisStore(rdb)
	professorRepo := repository.NewProfessorRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	authService := service.NewAuthService(professorRepo, studentRepo, redisStore, metrics, validate, logr, service.AuthConfig{
		TokenSecret:   cfg.JWT.Secret,
		TokenExpiry:   cfg.JWT.Expiration,
		Issuer:        cfg.JWT.Issuer,
		HashPasswords: cfg.Auth.PasswordHashing,
	})
	professorService := service.NewProfessorService(professorRepo, studentRepo, validate, logr, cfg.Auth.PasswordHashing)
	studentService := service.NewStudentService(studentRepo, logr)
	subjectService := service.NewSubjectService(subjectRepo, validate, logr, cfg.PublicBaseURL)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, subjectRepo, validate, logr)
	attendanceService := service.NewAttendanceService(
		attendanceRepo,
		uploads,
		storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL),
		cleanupQueue,
		metrics,
		validate,
		logr,
		service.AttendanceConfig{
			MaxFileSize:  cfg.Uploads.MaxFileSizeBytes,
			AllowedMIMEs: cfg.Uploads.AllowedMIMEs,
			DownloadBase: cfg.APIPrefix,
		},
	)

	engine := router.Setup(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		EnableMetrics:  cfg.Metrics.Enabled,
		EnforceAuth:    cfg.Auth.Enforce,
		AuthRateLimit:  cfg.RateLimit.AuthPerMinute,
	}, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Professor:  handler.NewProfessorHandler(professorService),
		Student:    handler.NewStudentHandler(studentService),
		Subject:    handler.NewSubjectHandler(subjectService),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Metrics:    handler.NewMetricsHandler(metrics, db),
	}, router.Deps{
		Tokens:  authService,
		Limiter: redisStore,
		Metrics: metrics,
		Logger:  logr,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.Bool("auth_enforced", cfg.Auth.Enforce))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped", zap.Int("pending_cleanup_jobs", cleanupQueue.Pending()))
}
