package models

import "time"

// UserRole represents the roles a profile can hold.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleSupervisor UserRole = "supervisor"
	RoleAdmin      UserRole = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// HomePath returns the dashboard route a role lands on after sign-in.
func (r UserRole) HomePath() string {
	switch r {
	case RoleStudent:
		return "/student/dashboard"
	case RoleSupervisor:
		return "/supervisor/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	}
	return "/"
}

// User holds sign-in credentials stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile carries the role and faculty of a user. Its ID equals the user ID.
type Profile struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Role      UserRole  `db:"role" json:"role"`
	FacultyID *string   `db:"faculty_id" json:"faculty_id,omitempty"`
	StudentID *string   `db:"student_id" json:"student_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
