package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/class-attendance-api/internal/handler"
	"github.com/noah-isme/class-attendance-api/internal/middleware"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/internal/service"
	"github.com/noah-isme/class-attendance-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/class-attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/class-attendance-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Professor  *handler.ProfessorHandler
	Student    *handler.StudentHandler
	Subject    *handler.SubjectHandler
	Enrollment *handler.EnrollmentHandler
	Attendance *handler.AttendanceHandler
	Metrics    *handler.MetricsHandler
}

// Options carries the settings that shape the route table.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	EnableMetrics  bool
	// EnforceAuth puts management routes behind a professor token. Off by default because the
	// browser frontend sends no tokens.
	EnforceAuth bool
	// AuthRateLimit caps login and registration attempts per client IP per minute.
	AuthRateLimit int
}

// Deps are the shared components middleware needs.
type Deps struct {
	Tokens  middleware.TokenValidator
	Limiter middleware.RateLimiter
	Metrics *service.MetricsService
	Logger  *zap.Logger
}

// Setup builds the gin engine with global middleware and every route.
func Setup(opts Options, h Handlers, deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger, "/health", "/metrics"))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	if opts.EnableMetrics {
		r.GET("/metrics", h.Metrics.Prometheus)
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)

	authLimit := middleware.RateLimit(deps.Limiter, opts.AuthRateLimit, time.Minute, deps.Metrics, deps.Logger)
	api.POST("/login", authLimit, h.Auth.Login)
	api.POST("/create-std", authLimit, h.Auth.RegisterStudent)
	api.POST("/create-professor", authLimit, h.Auth.RegisterProfessor)

	authenticated := api.Group("")
	authenticated.Use(middleware.JWT(deps.Tokens))
	authenticated.POST("/logout", h.Auth.Logout)
	authenticated.GET("/me", h.Auth.Me)

	guard := newGuard(opts.EnforceAuth, deps.Tokens)
	professorOnly := guard.roles(models.RoleProfessor)
	professorOrSelf := guard.roles(models.RoleProfessor, middleware.RoleSelf)

	api.GET("/get-all-professors", append(professorOnly, h.Professor.List)...)
	api.GET("/get-professor/:id", append(professorOnly, h.Professor.Get)...)
	api.PUT("/update-professor/:id", append(professorOnly, h.Professor.Update)...)
	api.DELETE("/delete-professor/:id", append(professorOnly, h.Professor.Delete)...)

	api.GET("/students", append(professorOnly, h.Student.List)...)
	api.GET("/students/:id", append(professorOrSelf, h.Student.Get)...)
	api.PUT("/students/:id", append(professorOrSelf, h.Student.Update)...)
	api.DELETE("/students/:id", append(professorOnly, h.Student.Delete)...)
	api.GET("/students/:id/enrollments", append(professorOrSelf, h.Enrollment.ListByStudent)...)

	api.GET("/get-all-subjects", h.Subject.List)
	api.GET("/get-subject/:id", h.Subject.Get)
	api.GET("/subjects/:id/qr", h.Subject.CheckinQR)
	api.POST("/create-subject", append(professorOnly, h.Subject.Create)...)
	api.PUT("/update-subject/:id", append(professorOnly, h.Subject.Update)...)
	api.DELETE("/delete-subject/:id", append(professorOnly, h.Subject.Delete)...)

	api.POST("/enrollments", append(professorOnly, h.Enrollment.Enroll)...)
	api.DELETE("/enrollments/:studentId/:courseId", append(professorOnly, h.Enrollment.Unenroll)...)

	api.POST("/check-class", h.Attendance.CheckIn)
	api.GET("/attendance", append(professorOnly, h.Attendance.List)...)
	api.GET("/attendance/export", append(professorOnly, h.Attendance.Export)...)
	// the signed token in the query string authorises the download
	api.GET("/attendance/:id/leave-doc", h.Attendance.DownloadLeaveDoc)

	return r
}

type guard struct {
	enforce bool
	tokens  middleware.TokenValidator
}

func newGuard(enforce bool, tokens middleware.TokenValidator) guard {
	return guard{enforce: enforce, tokens: tokens}
}

// roles returns the middleware chain for a protected route, empty when enforcement is off.
func (g guard) roles(allowed ...models.Role) []gin.HandlerFunc {
	if !g.enforce {
		return nil
	}
	return []gin.HandlerFunc{middleware.JWT(g.tokens), middleware.RBAC(allowed...)}
}
