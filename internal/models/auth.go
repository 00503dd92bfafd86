package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role distinguishes the two account tables. The numeric codes are part of the wire format.
type Role int

const (
	RoleStudent   Role = 1
	RoleProfessor Role = 2
)

// Identity is the role-tagged account returned by a successful login.
type Identity struct {
	Role       Role      `json:"role"`
	ID         int64     `json:"id"`
	StudentID  *int64    `json:"student_id,omitempty"`
	StdClassID *string   `json:"std_class_id,omitempty"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullname"`
	Major      *string   `json:"major,omitempty"`
	SignInDate time.Time `json:"signInDate"`
	Token      string    `json:"token,omitempty"`
}

// JWTClaims represents the JWT payload issued at login.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
	jwt.RegisteredClaims
}
