package dto

import "github.com/noah-isme/class-attendance-api/internal/models"

// LoginRequest carries credentials for role resolution.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse wraps the identity under "data", as the frontend stores it.
type LoginResponse struct {
	Data *models.Identity `json:"data"`
}

// RegisterStudentRequest is the /create-std payload.
type RegisterStudentRequest struct {
	FullName  string `json:"fullName" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

// RegisterProfessorRequest is the /create-professor payload.
type RegisterProfessorRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Tel      string `json:"tel" validate:"required,tel"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisteredAccount is the public part of a freshly inserted account. ID is set for
// professors, StudentID for students.
type RegisteredAccount struct {
	ID        int64  `json:"id,omitempty"`
	StudentID int64  `json:"student_id,omitempty"`
	FullName  string `json:"fullname"`
	Username  string `json:"username"`
}

// RegisterStudentResponse mirrors the legacy {ok, message, student} body.
type RegisterStudentResponse struct {
	OK      bool               `json:"ok"`
	Message string             `json:"message"`
	Student *RegisteredAccount `json:"student"`
}

// RegisterProfessorResponse mirrors the legacy {ok, message, professor} body.
type RegisterProfessorResponse struct {
	OK        bool               `json:"ok"`
	Message   string             `json:"message"`
	Professor *RegisteredAccount `json:"professor"`
}

// OKResponse is the bare {ok} acknowledgement used by check-in and logout.
type OKResponse struct {
	OK bool `json:"ok"`
}

// MeResponse echoes the claims of the presented token.
type MeResponse struct {
	Data *models.JWTClaims `json:"data"`
}
