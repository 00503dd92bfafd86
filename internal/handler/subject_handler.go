package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context) ([]models.Subject, error)
	Get(ctx context.Context, courseID string) (*models.Subject, error)
	Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error)
	Update(ctx context.Context, courseID string, req dto.UpdateSubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, courseID string) (*models.Subject, error)
	CheckinQR(ctx context.Context, courseID string) ([]byte, error)
}

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	service subjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {object} dto.SubjectListResponse
// @Router /get-all-subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SubjectListResponse{Total: len(subjects), Data: subjects})
}

// Get godoc
// @Summary Get subject by course id
// @Tags Subjects
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} response.ErrorBody
// @Router /get-subject/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	subject, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SubjectResponse{Data: subject})
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} dto.SubjectResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /create-subject [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	subject, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, dto.SubjectResponse{Message: "subject created", Data: subject})
}

// Update godoc
// @Summary Update subject name and teacher
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body dto.UpdateSubjectRequest true "Subject payload"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} response.ErrorBody
// @Router /update-subject/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	subject, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SubjectResponse{Message: "subject updated", Data: subject})
}

// Delete godoc
// @Summary Delete subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.SubjectResponse
// @Failure 404 {object} response.ErrorBody
// @Router /delete-subject/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	subject, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SubjectResponse{Message: "subject deleted", Data: subject})
}

// CheckinQR godoc
// @Summary Check-in QR code for a course
// @Tags Subjects
// @Produce png
// @Param id path string true "Course ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorBody
// @Router /subjects/{id}/qr [get]
func (h *SubjectHandler) CheckinQR(c *gin.Context) {
	png, err := h.service.CheckinQR(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
