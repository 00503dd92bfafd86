package dto

import "github.com/noah-isme/class-attendance-api/internal/models"

// EnrollRequest links a student to a course.
type EnrollRequest struct {
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	CourseID  string `json:"course_id" validate:"required"`
}

type EnrollmentResponse struct {
	OK   bool               `json:"ok"`
	Data *models.Enrollment `json:"data"`
}

type EnrollmentListResponse struct {
	Total int                       `json:"total"`
	Data  []models.EnrollmentDetail `json:"data"`
}
