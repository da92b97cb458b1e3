package repositories

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, code, description, active)
		VALUES (?, ?, ?, ?, ?)
	`

	project.ID = uuid.New()

	_, err := r.db.Exec(query,
		project.ID.String(),
		project.Name,
		project.Code,
		project.Description,
		project.Active,
	)
	return err
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id string) (*models.Project, error) {
	query := selectProject + ` WHERE id = ?`
	return scanProject(r.db.QueryRow(query, id))
}

// GetActive retrieves active projects only (the employee dropdown)
func (r *ProjectRepository) GetActive() ([]*models.Project, error) {
	query := selectProject + ` WHERE active = 1 ORDER BY created_at DESC`
	return r.queryProjects(query)
}

// GetAll retrieves every project, including completed ones (admin views)
func (r *ProjectRepository) GetAll() ([]*models.Project, error) {
	query := selectProject + ` ORDER BY created_at DESC`
	return r.queryProjects(query)
}

// Update updates a project
func (r *ProjectRepository) Update(project *models.Project) error {
	query := `
		UPDATE projects
		SET name = ?, code = ?, description = ?, active = ?,
		    completed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		project.Name,
		project.Code,
		project.Description,
		project.Active,
		project.CompletedAt,
		project.ID.String(),
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a project permanently
func (r *ProjectRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

const selectProject = `
	SELECT id, name, code, description, active, completed_at, created_at, updated_at
	FROM projects
`

func (r *ProjectRepository) queryProjects(query string, args ...interface{}) ([]*models.Project, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func scanProject(row rowScanner) (*models.Project, error) {
	project := &models.Project{}
	var id string
	err := row.Scan(
		&id,
		&project.Name,
		&project.Code,
		&project.Description,
		&project.Active,
		&project.CompletedAt,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	return project, nil
}
