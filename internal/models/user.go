package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type User struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	EmployeeID      string     `json:"employee_id"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Role            string     `json:"role"`
	ResetCode       *string    `json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) Validate() error {
	if u.Name == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if u.EmployeeID == "" {
		return &ValidationError{Field: "employee_id", Message: "Employee ID is required"}
	}
	if u.Email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if u.Role != RoleEmployee && u.Role != RoleManager {
		return &ValidationError{Field: "role", Message: "Role must be employee or manager"}
	}
	return nil
}

// IsManager reports whether the user can access admin-facing views.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
