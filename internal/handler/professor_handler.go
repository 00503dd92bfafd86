package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	"github.com/noah-isme/class-attendance-api/pkg/response"
)

type professorService interface {
	List(ctx context.Context) ([]models.Professor, error)
	Get(ctx context.Context, id int64) (*models.Professor, error)
	Update(ctx context.Context, id int64, req dto.UpdateProfessorRequest) (*models.Professor, error)
	Delete(ctx context.Context, id int64) (*models.Professor, error)
}

// ProfessorHandler serves professor management routes.
type ProfessorHandler struct {
	service professorService
}

// NewProfessorHandler constructs a ProfessorHandler.
func NewProfessorHandler(service professorService) *ProfessorHandler {
	return &ProfessorHandler{service: service}
}

// List godoc
// @Summary List professors
// @Tags Professors
// @Produce json
// @Success 200 {object} dto.ProfessorListResponse
// @Router /get-all-professors [get]
func (h *ProfessorHandler) List(c *gin.Context) {
	professors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProfessorListResponse{Message: "professors retrieved", Total: len(professors), Data: professors})
}

// Get godoc
// @Summary Get professor by id
// @Tags Professors
// @Produce json
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.ProfessorResponse
// @Failure 404 {object} response.ErrorBody
// @Router /get-professor/{id} [get]
func (h *ProfessorHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	professor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProfessorResponse{Message: "professor retrieved", Data: professor})
}

// Update godoc
// @Summary Replace a professor's details
// @Tags Professors
// @Accept json
// @Produce json
// @Param id path int true "Professor ID"
// @Param payload body dto.UpdateProfessorRequest true "Professor"
// @Success 200 {object} dto.ProfessorResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /update-professor/{id} [put]
func (h *ProfessorHandler) Update(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	professor, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProfessorResponse{Message: "professor updated", Data: professor})
}

// Delete godoc
// @Summary Delete a professor
// @Tags Professors
// @Produce json
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.ProfessorResponse
// @Failure 404 {object} response.ErrorBody
// @Router /delete-professor/{id} [delete]
func (h *ProfessorHandler) Delete(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	professor, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProfessorResponse{Message: "professor deleted", Data: professor})
}
