package models

import "time"

// ProjectStatusRow is the minimal projection used for dashboard tallies.
type ProjectStatusRow struct {
	Status    ProjectStatus `db:"status"`
	FacultyID *string       `db:"faculty_id"`
}

// TechnologyUsage counts how many projects carry a technology tag.
type TechnologyUsage struct {
	Name  string `db:"name" json:"name"`
	Count int    `db:"count" json:"value"`
}

// AnalyticsSystemMetrics represents system level analytics captured from instrumentation.
type AnalyticsSystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// ProjectTotals counts projects per status.
type ProjectTotals struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
	Revision int `json:"revision"`
}

// FacultyBreakdown is the per-faculty slice of the admin dashboard.
type FacultyBreakdown struct {
	FacultyID string `json:"faculty_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Approved  int    `json:"approved"`
}

// AdminAnalytics is the aggregate shown on the admin dashboard.
type AdminAnalytics struct {
	Totals       ProjectTotals      `json:"totals"`
	ApprovalRate int                `json:"approval_rate"`
	Faculties    []FacultyBreakdown `json:"faculties"`
	Technologies []TechnologyUsage  `json:"technologies"`
	GeneratedAt  time.Time          `json:"generated_at"`
}
