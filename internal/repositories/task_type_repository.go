package repositories

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
)

type TaskTypeRepository struct {
	db *sql.DB
}

func NewTaskTypeRepository(db *sql.DB) *TaskTypeRepository {
	return &TaskTypeRepository{
		db: db,
	}
}

// Create creates a new task type
func (r *TaskTypeRepository) Create(taskType *models.TaskType) error {
	query := `
		INSERT INTO task_types (id, name)
		VALUES (?, ?)
	`

	taskType.ID = uuid.New()

	_, err := r.db.Exec(query,
		taskType.ID.String(),
		taskType.Name,
	)
	return err
}

// GetByID retrieves a task type by ID
func (r *TaskTypeRepository) GetByID(id string) (*models.TaskType, error) {
	query := `SELECT id, name, created_at FROM task_types WHERE id = ?`
	return scanTaskType(r.db.QueryRow(query, id))
}

// GetAll retrieves all task types ordered by name
func (r *TaskTypeRepository) GetAll() ([]*models.TaskType, error) {
	query := `SELECT id, name, created_at FROM task_types ORDER BY name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taskTypes []*models.TaskType
	for rows.Next() {
		taskType, err := scanTaskType(rows)
		if err != nil {
			return nil, err
		}
		taskTypes = append(taskTypes, taskType)
	}

	return taskTypes, rows.Err()
}

func scanTaskType(row rowScanner) (*models.TaskType, error) {
	taskType := &models.TaskType{}
	var id string
	err := row.Scan(
		&id,
		&taskType.Name,
		&taskType.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	taskType.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	return taskType, nil
}
