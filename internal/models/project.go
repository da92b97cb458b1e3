package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Active      bool       `json:"active"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrProjectNameRequired
	}
	return nil
}

// Common errors
var (
	ErrProjectNameRequired = &ValidationError{Field: "name", Message: "Project name is required"}
)
