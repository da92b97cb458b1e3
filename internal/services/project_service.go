package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/repositories"
)

type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	now         func() time.Time
}

func NewProjectService(projectRepo *repositories.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

type ProjectInput struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// CreateProject creates a new project, active by default
func (s *ProjectService) CreateProject(input ProjectInput) (*models.Project, error) {
	project := &models.Project{
		Name:        strings.TrimSpace(input.Name),
		Code:        strings.TrimSpace(input.Code),
		Description: input.Description,
		Active:      true,
	}
	if input.Active != nil {
		project.Active = *input.Active
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, &models.StorageError{Op: "create project", Err: err}
	}

	return project, nil
}

// BulkProjectFailure records why one bulk entry was rejected.
type BulkProjectFailure struct {
	Entry  ProjectInput `json:"entry"`
	Reason string       `json:"reason"`
}

// BulkProjectResult holds per-entry outcomes of a bulk create.
type BulkProjectResult struct {
	Created []*models.Project    `json:"created"`
	Failed  []BulkProjectFailure `json:"failed"`
}

// CreateProjectsBulk creates each project independently; invalid entries are
// reported without aborting the rest.
func (s *ProjectService) CreateProjectsBulk(entries []ProjectInput) *BulkProjectResult {
	result := &BulkProjectResult{
		Created: []*models.Project{},
		Failed:  []BulkProjectFailure{},
	}

	for _, entry := range entries {
		project, err := s.CreateProject(entry)
		if err != nil {
			result.Failed = append(result.Failed, BulkProjectFailure{Entry: entry, Reason: err.Error()})
			continue
		}
		result.Created = append(result.Created, project)
	}

	return result
}

// GetActiveProjects retrieves active projects (the employee dropdown)
func (s *ProjectService) GetActiveProjects() ([]*models.Project, error) {
	projects, err := s.projectRepo.GetActive()
	if err != nil {
		return nil, &models.StorageError{Op: "list projects", Err: err}
	}
	return projects, nil
}

// GetAllProjects retrieves every project (admin management view)
func (s *ProjectService) GetAllProjects() ([]*models.Project, error) {
	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return nil, &models.StorageError{Op: "list projects", Err: err}
	}
	return projects, nil
}

// GetProjectByID retrieves a project by ID
func (s *ProjectService) GetProjectByID(id string) (*models.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &models.ValidationError{Field: "id", Message: "Invalid project ID format"}
	}

	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "project"}
		}
		return nil, &models.StorageError{Op: "get project", Err: err}
	}
	return project, nil
}

// UpdateProject updates a project. Marking a project inactive stamps its
// completion time once.
func (s *ProjectService) UpdateProject(id string, input ProjectInput) (*models.Project, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}

	project.Name = strings.TrimSpace(input.Name)
	project.Code = strings.TrimSpace(input.Code)
	project.Description = input.Description
	if input.Active != nil {
		project.Active = *input.Active
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	if !project.Active && project.CompletedAt == nil {
		completed := s.now()
		project.CompletedAt = &completed
	}

	if err := s.projectRepo.Update(project); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "project"}
		}
		return nil, &models.StorageError{Op: "update project", Err: err}
	}

	return project, nil
}

// DeleteProject removes a project permanently
func (s *ProjectService) DeleteProject(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &models.ValidationError{Field: "id", Message: "Invalid project ID format"}
	}

	if err := s.projectRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NotFoundError{Resource: "project"}
		}
		return &models.StorageError{Op: "delete project", Err: err}
	}

	return nil
}
