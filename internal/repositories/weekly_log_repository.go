package repositories

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
)

type WeeklyLogRepository struct {
	db *sql.DB
}

func NewWeeklyLogRepository(db *sql.DB) *WeeklyLogRepository {
	return &WeeklyLogRepository{
		db: db,
	}
}

// Upsert inserts the log, or overwrites hours/status/denormalized fields if
// a row already exists for the (user, project, task type, week, year) tuple.
// The whole operation is a single atomic statement; concurrent upserts for
// the same tuple resolve to last-write-wins with no merge of day values.
func (r *WeeklyLogRepository) Upsert(log *models.WeeklyLog) error {
	query := `
		INSERT INTO weekly_logs (
			id, user_id, project_id, task_type_id, week_number, iso_year,
			status, mon, tue, wed, thu, fri, sat, sun, employee_id, employee_name
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, project_id, task_type_id, week_number, iso_year)
		DO UPDATE SET
			status = excluded.status,
			mon = excluded.mon,
			tue = excluded.tue,
			wed = excluded.wed,
			thu = excluded.thu,
			fri = excluded.fri,
			sat = excluded.sat,
			sun = excluded.sun,
			employee_id = excluded.employee_id,
			employee_name = excluded.employee_name,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query,
		uuid.New().String(),
		log.UserID.String(),
		log.ProjectID.String(),
		log.TaskTypeID.String(),
		log.WeekNumber,
		log.ISOYear,
		log.Status,
		log.Days.Mon,
		log.Days.Tue,
		log.Days.Wed,
		log.Days.Thu,
		log.Days.Fri,
		log.Days.Sat,
		log.Days.Sun,
		log.EmployeeID,
		log.EmployeeName,
	)
	return err
}

// FindByTuple retrieves the single log for the unique five-field tuple
func (r *WeeklyLogRepository) FindByTuple(userID, projectID, taskTypeID string, weekNumber, isoYear int) (*models.WeeklyLog, error) {
	query := selectWithNames + `
		WHERE l.user_id = ? AND l.project_id = ? AND l.task_type_id = ?
		  AND l.week_number = ? AND l.iso_year = ?
	`

	return scanWeeklyLog(r.db.QueryRow(query, userID, projectID, taskTypeID, weekNumber, isoYear))
}

// FindByUser retrieves all logs for a user, optionally narrowed by ISO year
// and week number, enriched with project and task type display names
func (r *WeeklyLogRepository) FindByUser(userID string, isoYear, weekNumber *int) ([]*models.WeeklyLog, error) {
	query := selectWithNames + ` WHERE l.user_id = ?`
	args := []interface{}{userID}

	if isoYear != nil {
		query += ` AND l.iso_year = ?`
		args = append(args, *isoYear)
	}
	if weekNumber != nil {
		query += ` AND l.week_number = ?`
		args = append(args, *weekNumber)
	}
	query += ` ORDER BY l.iso_year, l.week_number, l.created_at`

	return r.queryLogs(query, args...)
}

// FindAll retrieves logs across all users (admin view), optionally narrowed
// by ISO year and week number
func (r *WeeklyLogRepository) FindAll(isoYear, weekNumber *int) ([]*models.WeeklyLog, error) {
	query := selectWithNames + ` WHERE 1 = 1`
	var args []interface{}

	if isoYear != nil {
		query += ` AND l.iso_year = ?`
		args = append(args, *isoYear)
	}
	if weekNumber != nil {
		query += ` AND l.week_number = ?`
		args = append(args, *weekNumber)
	}
	query += ` ORDER BY l.employee_name, l.iso_year, l.week_number`

	return r.queryLogs(query, args...)
}

// GetByID retrieves a single log by its identifier
func (r *WeeklyLogRepository) GetByID(id string) (*models.WeeklyLog, error) {
	query := selectWithNames + ` WHERE l.id = ?`
	return scanWeeklyLog(r.db.QueryRow(query, id))
}

// DeleteByID removes a log permanently
func (r *WeeklyLogRepository) DeleteByID(id string) error {
	result, err := r.db.Exec(`DELETE FROM weekly_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

const selectWithNames = `
	SELECT l.id, l.user_id, l.project_id, l.task_type_id, l.week_number, l.iso_year,
	       l.status, l.mon, l.tue, l.wed, l.thu, l.fri, l.sat, l.sun,
	       l.employee_id, l.employee_name, p.name, t.name, l.created_at, l.updated_at
	FROM weekly_logs l
	JOIN projects p ON p.id = l.project_id
	JOIN task_types t ON t.id = l.task_type_id
`

func (r *WeeklyLogRepository) queryLogs(query string, args ...interface{}) ([]*models.WeeklyLog, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.WeeklyLog
	for rows.Next() {
		log, err := scanWeeklyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func scanWeeklyLog(row rowScanner) (*models.WeeklyLog, error) {
	log := &models.WeeklyLog{}
	var id, userID, projectID, taskTypeID string
	err := row.Scan(
		&id,
		&userID,
		&projectID,
		&taskTypeID,
		&log.WeekNumber,
		&log.ISOYear,
		&log.Status,
		&log.Days.Mon,
		&log.Days.Tue,
		&log.Days.Wed,
		&log.Days.Thu,
		&log.Days.Fri,
		&log.Days.Sat,
		&log.Days.Sun,
		&log.EmployeeID,
		&log.EmployeeName,
		&log.ProjectName,
		&log.TaskTypeName,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if log.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if log.UserID, err = uuid.Parse(userID); err != nil {
		return nil, err
	}
	if log.ProjectID, err = uuid.Parse(projectID); err != nil {
		return nil, err
	}
	if log.TaskTypeID, err = uuid.Parse(taskTypeID); err != nil {
		return nil, err
	}

	return log, nil
}
