package services

import (
	"strings"

	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/repositories"
)

type TaskTypeService struct {
	taskTypeRepo *repositories.TaskTypeRepository
}

func NewTaskTypeService(taskTypeRepo *repositories.TaskTypeRepository) *TaskTypeService {
	return &TaskTypeService{
		taskTypeRepo: taskTypeRepo,
	}
}

// CreateTaskType creates a new task type
func (s *TaskTypeService) CreateTaskType(name string) (*models.TaskType, error) {
	taskType := &models.TaskType{
		Name: strings.TrimSpace(name),
	}

	if err := taskType.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskTypeRepo.Create(taskType); err != nil {
		return nil, &models.StorageError{Op: "create task type", Err: err}
	}

	return taskType, nil
}

// ListTaskTypes retrieves all task types
func (s *TaskTypeService) ListTaskTypes() ([]*models.TaskType, error) {
	taskTypes, err := s.taskTypeRepo.GetAll()
	if err != nil {
		return nil, &models.StorageError{Op: "list task types", Err: err}
	}
	return taskTypes, nil
}
