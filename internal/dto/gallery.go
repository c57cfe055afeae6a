package dto

// GalleryQuery mirrors the public gallery filters.
type GalleryQuery struct {
	CategoryID string `form:"category_id"`
	FacultyID  string `form:"faculty_id"`
	Search     string `form:"search"`
}
