package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, req dto.EnrollRequest) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error)
	Unenroll(ctx context.Context, studentID int64, courseID string) error
}

// EnrollmentHandler links students to courses.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs an EnrollmentHandler.
func NewEnrollmentHandler(service enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Enroll godoc
// @Summary Enroll a student in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.EnrollRequest true "Enrollment"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	enrollment, err := h.service.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, dto.EnrollmentResponse{OK: true, Data: enrollment})
}

// ListByStudent godoc
// @Summary Courses a student is enrolled in
// @Tags Enrollments
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.EnrollmentListResponse
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id}/enrollments [get]
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListByStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.EnrollmentListResponse{Total: len(items), Data: items})
}

// Unenroll godoc
// @Summary Remove an enrollment
// @Tags Enrollments
// @Param studentId path int true "Student ID"
// @Param courseId path string true "Course ID"
// @Success 204
// @Failure 404 {object} response.ErrorBody
// @Router /enrollments/{studentId}/{courseId} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	studentID, err := int64Param(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Unenroll(c.Request.Context(), studentID, c.Param("courseId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
