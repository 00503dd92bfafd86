package dto

import "github.com/noah-isme/class-attendance-api/internal/models"

// UpdateStudentRequest is a coalesce update: absent fields keep their stored value.
type UpdateStudentRequest struct {
	FullName *string `json:"fullname"`
	Major    *string `json:"major"`
}

type StudentResponse struct {
	Data *models.StudentProfile `json:"data"`
}

type StudentListResponse struct {
	Total int                     `json:"total"`
	Data  []models.StudentProfile `json:"data"`
}

type StudentUpdateResponse struct {
	OK   bool                     `json:"ok"`
	Data *models.StudentNameMajor `json:"data"`
}

type StudentDeleteResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}
