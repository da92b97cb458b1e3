package services

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/repositories"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// Wednesday, October 1st 2025, ISO week 40 of 2025.
var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

// newTestDB opens an in-memory database with the production schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory
	// database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

type testEnv struct {
	db           *sql.DB
	userRepo     *repositories.UserRepository
	projectRepo  *repositories.ProjectRepository
	taskTypeRepo *repositories.TaskTypeRepository
	weekService  *WeekService
	logService   *WeeklyLogService
}

// newTestEnv wires the service stack against an in-memory database with the
// clock pinned to testNow.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskTypeRepo := repositories.NewTaskTypeRepository(db)

	weekService := NewWeekService(repositories.NewWeekRepository(db))
	weekService.now = func() time.Time { return testNow }

	logService := NewWeeklyLogService(
		repositories.NewWeeklyLogRepository(db),
		weekService,
		userRepo,
		projectRepo,
		taskTypeRepo,
	)
	logService.now = func() time.Time { return testNow }

	return &testEnv{
		db:           db,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		taskTypeRepo: taskTypeRepo,
		weekService:  weekService,
		logService:   logService,
	}
}

func (e *testEnv) seedUser(t *testing.T, name, employeeID, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		EmployeeID:   employeeID,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleEmployee,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) seedProject(t *testing.T, name string, active bool) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Active: active}
	require.NoError(t, e.projectRepo.Create(project))
	return project
}

func (e *testEnv) seedTaskType(t *testing.T, name string) *models.TaskType {
	t.Helper()
	taskType := &models.TaskType{Name: name}
	require.NoError(t, e.taskTypeRepo.Create(taskType))
	return taskType
}
