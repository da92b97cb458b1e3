package models

import "fmt"

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError reports that an operation conflicts with the current state
// of a referenced entity, e.g. writing against an inactive project.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ForbiddenError reports that the caller lacks rights to the target entity.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// LockedError reports a write against a week other than the current one.
// Weeks outside the current ISO week are read-only.
type LockedError struct {
	WeekNumber int
	ISOYear    int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("week %d of %d is locked (read-only)", e.WeekNumber, e.ISOYear)
}

// StorageError wraps a failure of the underlying persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
