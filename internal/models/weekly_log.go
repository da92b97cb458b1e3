package models

import (
	"time"

	"github.com/google/uuid"
)

// Weekly log statuses.
const (
	// StatusTodo is the default for newly created logs. (The upstream data
	// entry screens always submit an explicit status; todo is what they
	// send for an untouched row.)
	StatusTodo       = "todo"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

// ValidStatus reports whether s is one of the known weekly log statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// MaxDayHours is the upper bound for a single day entry.
const MaxDayHours = 24

// DayHours is the hour breakdown of one week, Monday through Sunday.
type DayHours struct {
	Mon float64 `json:"mon"`
	Tue float64 `json:"tue"`
	Wed float64 `json:"wed"`
	Thu float64 `json:"thu"`
	Fri float64 `json:"fri"`
	Sat float64 `json:"sat"`
	Sun float64 `json:"sun"`
}

// Total returns the summed hours for the week.
func (d DayHours) Total() float64 {
	return d.Mon + d.Tue + d.Wed + d.Thu + d.Fri + d.Sat + d.Sun
}

// Validate checks every day value is within [0, MaxDayHours].
func (d DayHours) Validate() error {
	days := map[string]float64{
		"mon": d.Mon, "tue": d.Tue, "wed": d.Wed, "thu": d.Thu,
		"fri": d.Fri, "sat": d.Sat, "sun": d.Sun,
	}
	for name, hours := range days {
		if hours < 0 || hours > MaxDayHours {
			return &ValidationError{Field: "days." + name, Message: "Day hours must be between 0 and 24"}
		}
	}
	return nil
}

// WeeklyLog is one employee's hours for one project and task type in one
// ISO week. At most one live record exists per
// (UserID, ProjectID, TaskTypeID, WeekNumber, ISOYear) tuple.
type WeeklyLog struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ProjectID  uuid.UUID `json:"project_id"`
	TaskTypeID uuid.UUID `json:"task_type_id"`
	WeekNumber int       `json:"week_number"`
	ISOYear    int       `json:"iso_year"`
	Status     string    `json:"status"`
	Days       DayHours  `json:"days"`

	// Denormalized from the owning user at write time so read-side views
	// render without a join.
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`

	// Display names joined in by list queries; empty elsewhere.
	ProjectName  string `json:"project_name,omitempty"`
	TaskTypeName string `json:"task_type_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
