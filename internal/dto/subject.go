package dto

import "github.com/noah-isme/class-attendance-api/internal/models"

// CreateSubjectRequest registers a course under a caller-chosen id.
type CreateSubjectRequest struct {
	CourseID    string `json:"course_id" validate:"required,max=64"`
	CourseName  string `json:"course_name" validate:"required"`
	TeacherName string `json:"teacher_name" validate:"required"`
}

// UpdateSubjectRequest never carries the course id; it comes from the path.
type UpdateSubjectRequest struct {
	CourseName  string `json:"course_name" validate:"required"`
	TeacherName string `json:"teacher_name" validate:"required"`
}

type SubjectListResponse struct {
	Total int              `json:"total"`
	Data  []models.Subject `json:"data"`
}

type SubjectResponse struct {
	Message string          `json:"message,omitempty"`
	Data    *models.Subject `json:"data"`
}
