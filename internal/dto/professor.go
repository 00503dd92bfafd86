package dto

import "github.com/noah-isme/class-attendance-api/internal/models"

// UpdateProfessorRequest replaces every mutable professor column.
type UpdateProfessorRequest struct {
	FullName string `json:"fullname" validate:"required"`
	Tel      string `json:"tel" validate:"required,tel"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfessorListResponse is the {message, total, data} body of the professor listing.
type ProfessorListResponse struct {
	Message string             `json:"message"`
	Total   int                `json:"total"`
	Data    []models.Professor `json:"data"`
}

// ProfessorResponse is the {message, data} body of single-professor routes.
type ProfessorResponse struct {
	Message string            `json:"message"`
	Data    *models.Professor `json:"data"`
}
