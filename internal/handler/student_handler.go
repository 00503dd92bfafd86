package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context) ([]models.StudentProfile, error)
	Get(ctx context.Context, id int64) (*models.StudentProfile, error)
	Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.StudentNameMajor, error)
	Delete(ctx context.Context, id int64) error
}

// StudentHandler serves student profile routes.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {object} dto.StudentListResponse
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StudentListResponse{Total: len(students), Data: students})
}

// Get godoc
// @Summary Get a student profile
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StudentResponse{Data: student})
}

// Update godoc
// @Summary Update full name and/or major
// @Description Omitted or blank fields keep their stored value.
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.StudentUpdateResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StudentUpdateResponse{OK: true, Data: updated})
}

// Delete godoc
// @Summary Delete a student and their enrollments
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentDeleteResponse
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.StudentDeleteResponse{OK: true, Msg: "student deleted"})
}
