package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/hourglass/timesheet/internal/models"
)

type WeekRepository struct {
	db *sql.DB
}

func NewWeekRepository(db *sql.DB) *WeekRepository {
	return &WeekRepository{
		db: db,
	}
}

// InsertIfAbsent creates the week row if no row exists for its
// (week_number, iso_year) pair. The insert is a single atomic statement, so
// two concurrent calls for a never-before-seen week cannot both create a
// row; the loser is silently ignored by the unique index.
func (r *WeekRepository) InsertIfAbsent(week *models.Week) error {
	query := `
		INSERT OR IGNORE INTO weeks (id, week_number, iso_year, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)
	`

	week.ID = uuid.New()

	_, err := r.db.Exec(query,
		week.ID.String(),
		week.WeekNumber,
		week.ISOYear,
		week.StartDate,
		week.EndDate,
	)
	return err
}

// GetByNumberYear retrieves the canonical week row for (weekNumber, isoYear)
func (r *WeekRepository) GetByNumberYear(weekNumber, isoYear int) (*models.Week, error) {
	query := `
		SELECT id, week_number, iso_year, start_date, end_date, created_at
		FROM weeks
		WHERE week_number = ? AND iso_year = ?
	`

	return r.scanWeek(r.db.QueryRow(query, weekNumber, isoYear))
}

// GetOverlapping retrieves all weeks whose span intersects [start, end],
// ordered chronologically
func (r *WeekRepository) GetOverlapping(start, end time.Time) ([]*models.Week, error) {
	query := `
		SELECT id, week_number, iso_year, start_date, end_date, created_at
		FROM weeks
		WHERE start_date <= ? AND end_date >= ?
		ORDER BY iso_year, week_number
	`

	rows, err := r.db.Query(query, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weeks []*models.Week
	for rows.Next() {
		week, err := r.scanWeek(rows)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, week)
	}

	return weeks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *WeekRepository) scanWeek(row rowScanner) (*models.Week, error) {
	week := &models.Week{}
	var id string
	err := row.Scan(
		&id,
		&week.WeekNumber,
		&week.ISOYear,
		&week.StartDate,
		&week.EndDate,
		&week.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	week.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	return week, nil
}
