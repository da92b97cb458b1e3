package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskType is a static dropdown entry (development, testing, meetings, ...)
// that weekly logs reference for categorization.
type TaskType struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *TaskType) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Message: "Task type name is required"}
	}
	return nil
}
