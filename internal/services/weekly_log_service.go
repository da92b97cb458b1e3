package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/repositories"
	"github.com/hourglass/timesheet/pkg/isoweek"
	"github.com/hourglass/timesheet/pkg/logger"
)

// WeeklyLogService coordinates weekly log writes: it validates input,
// resolves the target week, applies the lock policy, and performs the
// atomic five-tuple upsert.
type WeeklyLogService struct {
	logRepo      *repositories.WeeklyLogRepository
	weekService  *WeekService
	userRepo     *repositories.UserRepository
	projectRepo  *repositories.ProjectRepository
	taskTypeRepo *repositories.TaskTypeRepository
	now          func() time.Time
}

func NewWeeklyLogService(
	logRepo *repositories.WeeklyLogRepository,
	weekService *WeekService,
	userRepo *repositories.UserRepository,
	projectRepo *repositories.ProjectRepository,
	taskTypeRepo *repositories.TaskTypeRepository,
) *WeeklyLogService {
	return &WeeklyLogService{
		logRepo:      logRepo,
		weekService:  weekService,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		taskTypeRepo: taskTypeRepo,
		now:          time.Now,
	}
}

// UpsertLogInput is one batch entry of day-hour values for a
// (user, project, task type, week, year) tuple. Days and Status are
// optional; defaults are applied centrally in Upsert.
type UpsertLogInput struct {
	UserID     string           `json:"user_id"`
	ProjectID  string           `json:"project_id"`
	TaskTypeID string           `json:"task_type_id"`
	WeekNumber int              `json:"week_number"`
	ISOYear    int              `json:"iso_year"`
	Days       *models.DayHours `json:"days"`
	Status     string           `json:"status"`
}

// isEditable implements the lock policy: a week is writable iff it is the
// ISO week containing now. Strict equality; past and future weeks are both
// read-only, with no grace period.
func (s *WeeklyLogService) isEditable(weekNumber, isoYear int, now time.Time) bool {
	curWeek, curYear := isoweek.Of(now)
	return weekNumber == curWeek && isoYear == curYear
}

// Upsert validates the entry, gates it on the lock policy, and performs the
// atomic create-or-update for its tuple. A second call for the same tuple
// overwrites hours and status (last write wins). The override capability
// bypasses the lock; no HTTP route grants it.
func (s *WeeklyLogService) Upsert(input UpsertLogInput, override bool) (*models.WeeklyLog, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, &models.ValidationError{Field: "user_id", Message: "User ID is required"}
	}
	projectID, err := uuid.Parse(input.ProjectID)
	if err != nil {
		return nil, &models.ValidationError{Field: "project_id", Message: "Project ID is required"}
	}
	taskTypeID, err := uuid.Parse(input.TaskTypeID)
	if err != nil {
		return nil, &models.ValidationError{Field: "task_type_id", Message: "Task type ID is required"}
	}
	if input.ISOYear < 1 {
		return nil, &models.ValidationError{Field: "iso_year", Message: "ISO year is required"}
	}
	if input.WeekNumber < 1 || input.WeekNumber > 53 {
		return nil, &models.ValidationError{Field: "week_number", Message: "Week number must be between 1 and 53"}
	}

	// Central defaults: absent days mean an all-zero week, absent status
	// means todo.
	days := models.DayHours{}
	if input.Days != nil {
		days = *input.Days
	}
	if err := days.Validate(); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !models.ValidStatus(status) {
		return nil, &models.ValidationError{Field: "status", Message: "Status must be todo, inprogress or done"}
	}

	user, err := s.userRepo.GetByID(userID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "user"}
		}
		return nil, &models.StorageError{Op: "get user", Err: err}
	}

	project, err := s.projectRepo.GetByID(projectID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "project"}
		}
		return nil, &models.StorageError{Op: "get project", Err: err}
	}
	if !project.Active {
		return nil, &models.ConflictError{Message: "Project is not active"}
	}

	if _, err := s.taskTypeRepo.GetByID(taskTypeID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &models.NotFoundError{Resource: "task type"}
		}
		return nil, &models.StorageError{Op: "get task type", Err: err}
	}

	if !override && !s.isEditable(input.WeekNumber, input.ISOYear, s.now()) {
		return nil, &models.LockedError{WeekNumber: input.WeekNumber, ISOYear: input.ISOYear}
	}

	// Make sure the canonical week record exists before hanging logs off it.
	if _, err := s.weekService.ResolveWeek(input.WeekNumber, input.ISOYear); err != nil {
		return nil, err
	}

	log := &models.WeeklyLog{
		UserID:       userID,
		ProjectID:    projectID,
		TaskTypeID:   taskTypeID,
		WeekNumber:   input.WeekNumber,
		ISOYear:      input.ISOYear,
		Status:       status,
		Days:         days,
		EmployeeID:   user.EmployeeID,
		EmployeeName: user.Name,
	}

	// The upsert is idempotent, so one retry on a transient failure
	// (SQLITE_BUSY, a lost duplicate-key race) is safe.
	if err := s.logRepo.Upsert(log); err != nil {
		logger.WithError(err).Warn("weekly log upsert failed, retrying once")
		if err = s.logRepo.Upsert(log); err != nil {
			return nil, &models.StorageError{Op: "upsert weekly log", Err: err}
		}
	}

	stored, err := s.logRepo.FindByTuple(
		userID.String(), projectID.String(), taskTypeID.String(),
		input.WeekNumber, input.ISOYear,
	)
	if err != nil {
		return nil, &models.StorageError{Op: "read back weekly log", Err: err}
	}

	return stored, nil
}

// BulkUpsertFailure records why one batch entry was rejected.
type BulkUpsertFailure struct {
	Entry  UpsertLogInput `json:"entry"`
	Reason string         `json:"reason"`
}

// BulkUpsertResult is the outcome of a batch: per-entry successes and
// failures, never an all-or-nothing rollback.
type BulkUpsertResult struct {
	Succeeded []*models.WeeklyLog `json:"succeeded"`
	Failed    []BulkUpsertFailure `json:"failed"`
}

// UpsertBulk processes each entry independently; one entry's failure never
// aborts its siblings.
func (s *WeeklyLogService) UpsertBulk(entries []UpsertLogInput) *BulkUpsertResult {
	result := &BulkUpsertResult{
		Succeeded: []*models.WeeklyLog{},
		Failed:    []BulkUpsertFailure{},
	}

	for _, entry := range entries {
		log, err := s.Upsert(entry, false)
		if err != nil {
			result.Failed = append(result.Failed, BulkUpsertFailure{Entry: entry, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, log)
	}

	return result
}

// LogsForUser returns all logs for a user, optionally narrowed by ISO year
// and week number.
func (s *WeeklyLogService) LogsForUser(userID string, isoYear, weekNumber *int) ([]*models.WeeklyLog, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, &models.ValidationError{Field: "user_id", Message: "User ID is required"}
	}

	logs, err := s.logRepo.FindByUser(userID, isoYear, weekNumber)
	if err != nil {
		return nil, &models.StorageError{Op: "list weekly logs", Err: err}
	}
	return logs, nil
}

// CurrentWeekLogs returns the user's logs for the ISO week containing now.
func (s *WeeklyLogService) CurrentWeekLogs(userID string) ([]*models.WeeklyLog, error) {
	weekNumber, isoYear := isoweek.Of(s.now())
	return s.LogsForUser(userID, &isoYear, &weekNumber)
}

// AllLogs returns logs across every user (admin view), optionally narrowed
// by ISO year and week number.
func (s *WeeklyLogService) AllLogs(isoYear, weekNumber *int) ([]*models.WeeklyLog, error) {
	logs, err := s.logRepo.FindAll(isoYear, weekNumber)
	if err != nil {
		return nil, &models.StorageError{Op: "list weekly logs", Err: err}
	}
	return logs, nil
}

// Delete removes a log. Employees may only delete their own logs and only
// while the owning week is still editable; managers may delete any log.
func (s *WeeklyLogService) Delete(logID, callerID string, callerIsManager bool) error {
	log, err := s.logRepo.GetByID(logID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NotFoundError{Resource: "weekly log"}
		}
		return &models.StorageError{Op: "get weekly log", Err: err}
	}

	if !callerIsManager {
		if log.UserID.String() != callerID {
			return &models.ForbiddenError{Message: "Log belongs to another user"}
		}
		if !s.isEditable(log.WeekNumber, log.ISOYear, s.now()) {
			return &models.LockedError{WeekNumber: log.WeekNumber, ISOYear: log.ISOYear}
		}
	}

	if err := s.logRepo.DeleteByID(logID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.NotFoundError{Resource: "weekly log"}
		}
		return &models.StorageError{Op: "delete weekly log", Err: err}
	}

	return nil
}
