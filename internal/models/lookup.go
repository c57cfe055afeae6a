package models

// Faculty groups students and projects by academic unit.
type Faculty struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Category classifies a project.
type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Technology is a tag attached to projects.
type Technology struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
