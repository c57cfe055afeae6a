package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignUpRequest registers a new user and profile.
type SignUpRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	FullName  string   `json:"full_name" validate:"required"`
	Role      UserRole `json:"role" validate:"required,oneof=student supervisor admin"`
	FacultyID string   `json:"faculty_id" validate:"omitempty,uuid"`
	StudentID string   `json:"student_id"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse returns the issued token and the session it represents.
type SessionResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	Session     Session   `json:"session"`
}

// Session describes the signed-in user and the route their role lands on.
type Session struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	Profile  *Profile `json:"profile,omitempty"`
	HomePath string   `json:"home_path"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
