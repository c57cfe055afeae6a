package models

import "time"

// ProjectStatus is the review state of a project.
type ProjectStatus string

const (
	ProjectStatusPending  ProjectStatus = "pending"
	ProjectStatusApproved ProjectStatus = "approved"
	ProjectStatusRejected ProjectStatus = "rejected"
	ProjectStatusRevision ProjectStatus = "revision"
)

// Valid reports whether the status is one of the four known values.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusApproved, ProjectStatusRejected, ProjectStatusRevision:
		return true
	}
	return false
}

// IsReviewOutcome reports whether a supervisor may move a pending project to s.
func (s ProjectStatus) IsReviewOutcome() bool {
	switch s {
	case ProjectStatusApproved, ProjectStatusRejected, ProjectStatusRevision:
		return true
	}
	return false
}

// Project is a student submission stored in the projects table.
type Project struct {
	ID          string        `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Status      ProjectStatus `db:"status" json:"status"`
	StudentID   string        `db:"student_id" json:"student_id"`
	FacultyID   *string       `db:"faculty_id" json:"faculty_id,omitempty"`
	CategoryID  string        `db:"category_id" json:"category_id"`
	GithubLink  *string       `db:"github_link" json:"github_link,omitempty"`
	DemoLink    *string       `db:"demo_link" json:"demo_link,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// ProjectDetail is a project joined with its lookup names and technology tags.
type ProjectDetail struct {
	Project
	CategoryName      *string  `db:"category_name" json:"category_name,omitempty"`
	FacultyName       *string  `db:"faculty_name" json:"faculty_name,omitempty"`
	StudentName       *string  `db:"student_name" json:"student_name,omitempty"`
	StudentIdentifier *string  `db:"student_identifier" json:"student_identifier,omitempty"`
	Technologies      []string `db:"-" json:"technologies"`
}

// ProjectFilter holds the equality predicates forwarded to project queries.
type ProjectFilter struct {
	Status     *ProjectStatus
	StudentID  string
	CategoryID string
	FacultyID  string
}

// ProjectTechnology is one row of the project/technology join table.
type ProjectTechnology struct {
	ProjectID    string `db:"project_id" json:"project_id"`
	TechnologyID string `db:"technology_id" json:"technology_id"`
}
