package models

import (
	"time"

	"github.com/google/uuid"
)

// Week is the canonical record for one ISO calendar week. Exactly one row
// exists per (WeekNumber, ISOYear) pair; rows are created lazily on first
// reference and never mutated or deleted.
type Week struct {
	ID         uuid.UUID `json:"id"`
	WeekNumber int       `json:"week_number"`
	ISOYear    int       `json:"iso_year"`
	StartDate  time.Time `json:"start_date"` // Monday 00:00 UTC
	EndDate    time.Time `json:"end_date"`   // Sunday 23:59:59.999 UTC
	CreatedAt  time.Time `json:"created_at"`
}
