package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/innovators-hub-api/internal/models"
)

const projectDetailSelect = `SELECT p.id, p.title, p.description, p.status, p.student_id, p.faculty_id, p.category_id,
       p.github_link, p.demo_link, p.created_at, p.updated_at,
       c.name AS category_name, f.name AS faculty_name, pr.full_name AS student_name, pr.student_id AS student_identifier
	FROM projects p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN faculties f ON f.id = p.faculty_id
	LEFT JOIN profiles pr ON pr.id = p.student_id`

// ProjectRepository persists projects, their technology tags and review transitions.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository constructs the repository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts the project row and one join row per technology in a single transaction.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project, technologyIDs []string) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPending
	}
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create project: %w", err)
	}

	const query = `INSERT INTO projects
	(id, title, description, status, student_id, faculty_id, category_id, github_link, demo_link, created_at, updated_at)
	VALUES (:id, :title, :description, :status, :student_id, :faculty_id, :category_id, :github_link, :demo_link, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, project); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create project: %w", translateWriteError(err))
	}

	const joinQuery = `INSERT INTO project_technologies (project_id, technology_id) VALUES ($1, $2)`
	for _, techID := range technologyIDs {
		if _, err := tx.ExecContext(ctx, joinQuery, project.ID, techID); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("tag project technology: %w", translateWriteError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit project: %w", err)
	}
	return nil
}

// FindByID returns the bare project row.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	const query = `SELECT id, title, description, status, student_id, faculty_id, category_id, github_link, demo_link, created_at, updated_at
	FROM projects WHERE id = $1`
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

// GetDetail returns a project joined with lookup names and technology tags.
func (r *ProjectRepository) GetDetail(ctx context.Context, id string) (*models.ProjectDetail, error) {
	var detail models.ProjectDetail
	if err := r.db.GetContext(ctx, &detail, projectDetailSelect+" WHERE p.id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get project detail: %w", err)
	}
	tags, err := r.technologiesFor(ctx, []string{detail.ID})
	if err != nil {
		return nil, err
	}
	detail.Technologies = nonNilNames(tags[detail.ID])
	return &detail, nil
}

// List returns project details matching the filter, newest first.
func (r *ProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.ProjectDetail, error) {
	var builder strings.Builder
	builder.WriteString(projectDetailSelect)

	args := make([]interface{}, 0, 4)
	conditions := make([]string, 0, 4)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("p.student_id = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.FacultyID != "" {
		args = append(args, filter.FacultyID)
		conditions = append(conditions, fmt.Sprintf("p.faculty_id = $%d", len(args)))
	}
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY p.created_at DESC")

	details := make([]models.ProjectDetail, 0)
	if err := r.db.SelectContext(ctx, &details, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]string, len(details))
	for i := range details {
		ids[i] = details[i].ID
	}
	tags, err := r.technologiesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range details {
		details[i].Technologies = nonNilNames(tags[details[i].ID])
	}
	return details, nil
}

// TransitionStatus moves a pending project to status and appends the review row atomically.
// It returns sql.ErrNoRows when the project is no longer pending.
func (r *ProjectRepository) TransitionStatus(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review: %w", err)
	}

	query := fmt.Sprintf("UPDATE projects SET status = $1, updated_at = $2 WHERE id = $3 AND status = '%s'", models.ProjectStatusPending)
	result, err := tx.ExecContext(ctx, query, review.Status, now, review.ProjectID)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("update project status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("check project update rows: %w", err)
	}
	if rows == 0 {
		tx.Rollback() //nolint:errcheck
		return sql.ErrNoRows
	}

	const insert = `INSERT INTO reviews (id, project_id, reviewer_id, status, comment, created_at)
	VALUES (:id, :project_id, :reviewer_id, :status, :comment, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insert, review); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("insert review: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

// ResubmitParams carries the fields a student may change when resubmitting.
type ResubmitParams struct {
	ID          string
	StudentID   string
	Title       string
	Description string
	GithubLink  *string
	DemoLink    *string
}

// Resubmit returns a project in revision to pending. It returns sql.ErrNoRows when the
// project is not owned by the student or is not in revision.
func (r *ProjectRepository) Resubmit(ctx context.Context, params ResubmitParams) error {
	query := fmt.Sprintf(`UPDATE projects SET title = :title, description = :description, github_link = :github_link,
	demo_link = :demo_link, status = '%s', updated_at = :updated_at
	WHERE id = :id AND student_id = :student_id AND status = '%s'`, models.ProjectStatusPending, models.ProjectStatusRevision)
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":          params.ID,
		"student_id":  params.StudentID,
		"title":       params.Title,
		"description": params.Description,
		"github_link": params.GithubLink,
		"demo_link":   params.DemoLink,
		"updated_at":  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("resubmit project: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check resubmit rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type projectTechnologyName struct {
	ProjectID string `db:"project_id"`
	Name      string `db:"name"`
}

func (r *ProjectRepository) technologiesFor(ctx context.Context, projectIDs []string) (map[string][]string, error) {
	placeholders := make([]string, len(projectIDs))
	args := make([]interface{}, len(projectIDs))
	for i, id := range projectIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT pt.project_id, t.name
        FROM project_technologies pt
        JOIN technologies t ON t.id = pt.technology_id
        WHERE pt.project_id IN (%s) ORDER BY t.name`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch project technologies: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]string, len(projectIDs))
	for rows.Next() {
		var tag projectTechnologyName
		if err := rows.StructScan(&tag); err != nil {
			return nil, fmt.Errorf("scan project technology: %w", err)
		}
		result[tag.ProjectID] = append(result[tag.ProjectID], tag.Name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project technologies: %w", err)
	}
	return result, nil
}

func nonNilNames(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
