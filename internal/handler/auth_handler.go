package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-attendance-api/internal/dto"
	"github.com/noah-isme/class-attendance-api/internal/models"
	appErrors "github.com/noah-isme/class-attendance-api/pkg/errors"
	"github.com/noah-isme/class-attendance-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*models.Identity, error)
	RegisterStudent(ctx context.Context, req dto.RegisterStudentRequest) (*dto.RegisteredAccount, error)
	RegisterProfessor(ctx context.Context, req dto.RegisterProfessorRequest) (*dto.RegisteredAccount, error)
	Logout(ctx context.Context, claims *models.JWTClaims) error
}

const registrationSuccessMessage = "registration successful"

// AuthHandler exposes login, registration and logout.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Sign in as a professor or a student
// @Description Professors are matched first. The identity is returned under data with a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	identity, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.LoginResponse{Data: identity})
}

// RegisterStudent godoc
// @Summary Register a student account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterStudentRequest true "Student"
// @Success 200 {object} dto.RegisterStudentResponse
// @Failure 400 {object} response.ErrorBody
// @Router /create-std [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	account, err := h.service.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RegisterStudentResponse{OK: true, Message: registrationSuccessMessage, Student: account})
}

// RegisterProfessor godoc
// @Summary Register a professor account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterProfessorRequest true "Professor"
// @Success 200 {object} dto.RegisterProfessorResponse
// @Failure 400 {object} response.ErrorBody
// @Router /create-professor [post]
func (h *AuthHandler) RegisterProfessor(c *gin.Context) {
	var req dto.RegisterProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidBody(err))
		return
	}
	account, err := h.service.RegisterProfessor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RegisterProfessorResponse{OK: true, Message: registrationSuccessMessage, Professor: account})
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.OKResponse
// @Failure 401 {object} response.ErrorBody
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.OKResponse{OK: true})
}

// Me godoc
// @Summary Claims of the presented token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} response.ErrorBody
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, dto.MeResponse{Data: claims})
}
