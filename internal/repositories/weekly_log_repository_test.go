package repositories

import (
	"database/sql"
	"testing"

	"github.com/hourglass/timesheet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logFixtures struct {
	db       *sql.DB
	logRepo  *WeeklyLogRepository
	user     *models.User
	project  *models.Project
	taskType *models.TaskType
}

func newLogFixtures(t *testing.T) *logFixtures {
	t.Helper()
	db := newTestDB(t)

	user := &models.User{
		Name:         "Jane Smith",
		EmployeeID:   "EMP-001",
		Email:        "jane@example.com",
		PasswordHash: "x",
		Role:         models.RoleEmployee,
	}
	require.NoError(t, NewUserRepository(db).Create(user))

	project := &models.Project{Name: "Apollo", Active: true}
	require.NoError(t, NewProjectRepository(db).Create(project))

	taskType := &models.TaskType{Name: "Development"}
	require.NoError(t, NewTaskTypeRepository(db).Create(taskType))

	return &logFixtures{
		db:       db,
		logRepo:  NewWeeklyLogRepository(db),
		user:     user,
		project:  project,
		taskType: taskType,
	}
}

func (f *logFixtures) newLog(weekNumber, isoYear int, days models.DayHours) *models.WeeklyLog {
	return &models.WeeklyLog{
		UserID:       f.user.ID,
		ProjectID:    f.project.ID,
		TaskTypeID:   f.taskType.ID,
		WeekNumber:   weekNumber,
		ISOYear:      isoYear,
		Status:       models.StatusTodo,
		Days:         days,
		EmployeeID:   f.user.EmployeeID,
		EmployeeName: f.user.Name,
	}
}

func TestWeeklyLogUpsertIsUniquePerTuple(t *testing.T) {
	f := newLogFixtures(t)

	require.NoError(t, f.logRepo.Upsert(f.newLog(40, 2025, models.DayHours{Mon: 8})))

	first, err := f.logRepo.FindByTuple(f.user.ID.String(), f.project.ID.String(), f.taskType.ID.String(), 40, 2025)
	require.NoError(t, err)
	assert.Equal(t, 8.0, first.Days.Mon)

	// Second upsert for the same tuple overwrites, it does not duplicate.
	second := f.newLog(40, 2025, models.DayHours{Mon: 4, Tue: 6})
	second.Status = models.StatusDone
	require.NoError(t, f.logRepo.Upsert(second))

	stored, err := f.logRepo.FindByTuple(f.user.ID.String(), f.project.ID.String(), f.taskType.ID.String(), 40, 2025)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID, "row identity survives the overwrite")
	assert.Equal(t, 4.0, stored.Days.Mon)
	assert.Equal(t, 6.0, stored.Days.Tue)
	assert.Equal(t, models.StatusDone, stored.Status)

	logs, err := f.logRepo.FindByUser(f.user.ID.String(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestWeeklyLogFindByUserFilters(t *testing.T) {
	f := newLogFixtures(t)

	require.NoError(t, f.logRepo.Upsert(f.newLog(39, 2025, models.DayHours{Fri: 2})))
	require.NoError(t, f.logRepo.Upsert(f.newLog(40, 2025, models.DayHours{Mon: 8})))
	require.NoError(t, f.logRepo.Upsert(f.newLog(2, 2026, models.DayHours{Wed: 5})))

	all, err := f.logRepo.FindByUser(f.user.ID.String(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	year := 2025
	byYear, err := f.logRepo.FindByUser(f.user.ID.String(), &year, nil)
	require.NoError(t, err)
	assert.Len(t, byYear, 2)

	week := 40
	byWeek, err := f.logRepo.FindByUser(f.user.ID.String(), &year, &week)
	require.NoError(t, err)
	require.Len(t, byWeek, 1)
	assert.Equal(t, 40, byWeek[0].WeekNumber)

	// Display names are joined in.
	assert.Equal(t, "Apollo", byWeek[0].ProjectName)
	assert.Equal(t, "Development", byWeek[0].TaskTypeName)
	assert.Equal(t, "Jane Smith", byWeek[0].EmployeeName)
}

func TestWeeklyLogFindAll(t *testing.T) {
	f := newLogFixtures(t)

	require.NoError(t, f.logRepo.Upsert(f.newLog(40, 2025, models.DayHours{Mon: 8})))

	week := 40
	year := 2025
	logs, err := f.logRepo.FindAll(&year, &week)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "EMP-001", logs[0].EmployeeID)
}

func TestWeeklyLogDelete(t *testing.T) {
	f := newLogFixtures(t)

	require.NoError(t, f.logRepo.Upsert(f.newLog(40, 2025, models.DayHours{Mon: 8})))

	stored, err := f.logRepo.FindByTuple(f.user.ID.String(), f.project.ID.String(), f.taskType.ID.String(), 40, 2025)
	require.NoError(t, err)

	require.NoError(t, f.logRepo.DeleteByID(stored.ID.String()))

	_, err = f.logRepo.GetByID(stored.ID.String())
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Deleting a missing row reports no-rows.
	assert.ErrorIs(t, f.logRepo.DeleteByID(stored.ID.String()), sql.ErrNoRows)
}
