package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logTestEnv struct {
	*testEnv
	user     *models.User
	project  *models.Project
	taskType *models.TaskType
}

func newLogTestEnv(t *testing.T) *logTestEnv {
	t.Helper()
	env := newTestEnv(t)
	return &logTestEnv{
		testEnv:  env,
		user:     env.seedUser(t, "Jane Smith", "EMP-001", "jane@example.com"),
		project:  env.seedProject(t, "Apollo", true),
		taskType: env.seedTaskType(t, "Development"),
	}
}

func (e *logTestEnv) input(weekNumber, isoYear int, days *models.DayHours) UpsertLogInput {
	return UpsertLogInput{
		UserID:     e.user.ID.String(),
		ProjectID:  e.project.ID.String(),
		TaskTypeID: e.taskType.ID.String(),
		WeekNumber: weekNumber,
		ISOYear:    isoYear,
		Days:       days,
	}
}

func TestUpsertCurrentWeekSucceeds(t *testing.T) {
	env := newLogTestEnv(t)

	log, err := env.logService.Upsert(env.input(40, 2025, &models.DayHours{Mon: 8, Tue: 6.5}), false)
	require.NoError(t, err)

	assert.Equal(t, 8.0, log.Days.Mon)
	assert.Equal(t, 6.5, log.Days.Tue)
	assert.Equal(t, 14.5, log.Days.Total())

	// Defaults and denormalized employee fields.
	assert.Equal(t, models.StatusTodo, log.Status)
	assert.Equal(t, "EMP-001", log.EmployeeID)
	assert.Equal(t, "Jane Smith", log.EmployeeName)
}

func TestUpsertLockEnforcement(t *testing.T) {
	env := newLogTestEnv(t)

	// The clock is pinned to week 40 of 2025. Past and future weeks are
	// locked; only strict equality passes.
	testCases := []struct {
		name       string
		weekNumber int
		isoYear    int
		locked     bool
	}{
		{"previous week", 39, 2025, true},
		{"current week", 40, 2025, false},
		{"next week", 41, 2025, true},
		{"same week number, previous year", 40, 2024, true},
		{"same week number, next year", 40, 2026, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.logService.Upsert(env.input(tc.weekNumber, tc.isoYear, nil), false)
			if tc.locked {
				var lockedErr *models.LockedError
				require.ErrorAs(t, err, &lockedErr)
				assert.Equal(t, tc.weekNumber, lockedErr.WeekNumber)
				assert.Equal(t, tc.isoYear, lockedErr.ISOYear)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpsertOverrideBypassesLock(t *testing.T) {
	env := newLogTestEnv(t)

	log, err := env.logService.Upsert(env.input(39, 2025, &models.DayHours{Fri: 3}), true)
	require.NoError(t, err)
	assert.Equal(t, 39, log.WeekNumber)
}

func TestUpsertLastWriteWins(t *testing.T) {
	env := newLogTestEnv(t)

	first, err := env.logService.Upsert(env.input(40, 2025, &models.DayHours{Mon: 8}), false)
	require.NoError(t, err)

	in := env.input(40, 2025, &models.DayHours{Mon: 2, Wed: 7})
	in.Status = models.StatusInProgress
	second, err := env.logService.Upsert(in, false)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2.0, second.Days.Mon)
	assert.Equal(t, 7.0, second.Days.Wed)
	assert.Equal(t, models.StatusInProgress, second.Status)

	logs, err := env.logService.LogsForUser(env.user.ID.String(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestUpsertValidation(t *testing.T) {
	env := newLogTestEnv(t)

	testCases := []struct {
		name   string
		mutate func(*UpsertLogInput)
		field  string
	}{
		{"missing user id", func(in *UpsertLogInput) { in.UserID = "" }, "user_id"},
		{"malformed project id", func(in *UpsertLogInput) { in.ProjectID = "not-a-uuid" }, "project_id"},
		{"missing task type id", func(in *UpsertLogInput) { in.TaskTypeID = "" }, "task_type_id"},
		{"zero week number", func(in *UpsertLogInput) { in.WeekNumber = 0 }, "week_number"},
		{"week number 54", func(in *UpsertLogInput) { in.WeekNumber = 54 }, "week_number"},
		{"missing iso year", func(in *UpsertLogInput) { in.ISOYear = 0 }, "iso_year"},
		{"negative hours", func(in *UpsertLogInput) { in.Days = &models.DayHours{Mon: -1} }, "days.mon"},
		{"hours above 24", func(in *UpsertLogInput) { in.Days = &models.DayHours{Tue: 25} }, "days.tue"},
		{"unknown status", func(in *UpsertLogInput) { in.Status = "blocked" }, "status"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := env.input(40, 2025, nil)
			tc.mutate(&in)

			_, err := env.logService.Upsert(in, false)
			var validationErr *models.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}

	// The boundary values 0 and 24 are both legal.
	log, err := env.logService.Upsert(env.input(40, 2025, &models.DayHours{Mon: 0, Tue: 24}), false)
	require.NoError(t, err)
	assert.Equal(t, 24.0, log.Days.Tue)
}

func TestUpsertUnknownReferences(t *testing.T) {
	env := newLogTestEnv(t)

	in := env.input(40, 2025, nil)
	in.UserID = uuid.NewString()
	_, err := env.logService.Upsert(in, false)
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user", notFound.Resource)

	in = env.input(40, 2025, nil)
	in.ProjectID = uuid.NewString()
	_, err = env.logService.Upsert(in, false)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "project", notFound.Resource)

	in = env.input(40, 2025, nil)
	in.TaskTypeID = uuid.NewString()
	_, err = env.logService.Upsert(in, false)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "task type", notFound.Resource)
}

func TestUpsertInactiveProject(t *testing.T) {
	env := newLogTestEnv(t)
	dormant := env.seedProject(t, "Mothballed", false)

	in := env.input(40, 2025, nil)
	in.ProjectID = dormant.ID.String()

	_, err := env.logService.Upsert(in, false)
	var conflictErr *models.ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestUpsertBulkPartialFailure(t *testing.T) {
	env := newLogTestEnv(t)
	other := env.seedTaskType(t, "Review")

	bad := env.input(40, 2025, nil)
	bad.UserID = uuid.NewString()

	second := env.input(40, 2025, &models.DayHours{Thu: 4})
	second.TaskTypeID = other.ID.String()

	result := env.logService.UpsertBulk([]UpsertLogInput{
		env.input(40, 2025, &models.DayHours{Mon: 8}),
		bad,
		second,
	})

	assert.Len(t, result.Succeeded, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, bad.UserID, result.Failed[0].Entry.UserID)
	assert.NotEmpty(t, result.Failed[0].Reason)
}

func TestCurrentWeekLogs(t *testing.T) {
	env := newLogTestEnv(t)

	_, err := env.logService.Upsert(env.input(40, 2025, &models.DayHours{Mon: 8}), false)
	require.NoError(t, err)
	_, err = env.logService.Upsert(env.input(39, 2025, &models.DayHours{Fri: 2}), true)
	require.NoError(t, err)

	logs, err := env.logService.CurrentWeekLogs(env.user.ID.String())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 40, logs[0].WeekNumber)
}

func TestDeleteOwnershipAndLock(t *testing.T) {
	env := newLogTestEnv(t)
	other := env.seedUser(t, "Raj Patel", "EMP-002", "raj@example.com")

	current, err := env.logService.Upsert(env.input(40, 2025, &models.DayHours{Mon: 8}), false)
	require.NoError(t, err)
	past, err := env.logService.Upsert(env.input(39, 2025, &models.DayHours{Fri: 2}), true)
	require.NoError(t, err)

	// Another employee cannot touch it.
	var forbiddenErr *models.ForbiddenError
	err = env.logService.Delete(current.ID.String(), other.ID.String(), false)
	require.ErrorAs(t, err, &forbiddenErr)

	// The owner cannot delete a locked week.
	var lockedErr *models.LockedError
	err = env.logService.Delete(past.ID.String(), env.user.ID.String(), false)
	require.ErrorAs(t, err, &lockedErr)

	// The owner can delete the current week.
	require.NoError(t, env.logService.Delete(current.ID.String(), env.user.ID.String(), false))

	// A manager can delete anything, locked or not.
	require.NoError(t, env.logService.Delete(past.ID.String(), other.ID.String(), true))

	var notFound *models.NotFoundError
	err = env.logService.Delete(past.ID.String(), env.user.ID.String(), true)
	require.ErrorAs(t, err, &notFound)
}

func TestUpsertCreatesWeekRecord(t *testing.T) {
	env := newLogTestEnv(t)

	_, err := env.logService.Upsert(env.input(40, 2025, nil), false)
	require.NoError(t, err)

	week, err := env.weekService.ResolveWeek(40, 2025)
	require.NoError(t, err)
	assert.Equal(t, 40, week.WeekNumber)
	assert.Equal(t, 2025, week.ISOYear)
}
