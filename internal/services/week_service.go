package services

import (
	"time"

	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/repositories"
	"github.com/hourglass/timesheet/pkg/isoweek"
)

// WeekService is the registry of canonical week records. Week rows are
// created lazily on first reference through an atomic insert-if-absent, so
// concurrent first lookups of the same week cannot produce duplicates.
type WeekService struct {
	weekRepo *repositories.WeekRepository
	now      func() time.Time
}

func NewWeekService(weekRepo *repositories.WeekRepository) *WeekService {
	return &WeekService{
		weekRepo: weekRepo,
		now:      time.Now,
	}
}

// ResolveWeek returns the canonical week record for (weekNumber, isoYear),
// creating it if this is the first reference. Idempotent.
func (s *WeekService) ResolveWeek(weekNumber, isoYear int) (*models.Week, error) {
	if isoYear < 1 {
		return nil, &models.ValidationError{Field: "iso_year", Message: "ISO year is required"}
	}
	if weekNumber < 1 || weekNumber > isoweek.WeeksInYear(isoYear) {
		return nil, &models.ValidationError{Field: "week_number", Message: "Week number is out of range for the given ISO year"}
	}

	week := &models.Week{
		WeekNumber: weekNumber,
		ISOYear:    isoYear,
		StartDate:  isoweek.MondayOf(weekNumber, isoYear),
		EndDate:    isoweek.SundayEndOf(weekNumber, isoYear),
	}

	if err := s.weekRepo.InsertIfAbsent(week); err != nil {
		return nil, &models.StorageError{Op: "insert week", Err: err}
	}

	resolved, err := s.weekRepo.GetByNumberYear(weekNumber, isoYear)
	if err != nil {
		return nil, &models.StorageError{Op: "get week", Err: err}
	}

	return resolved, nil
}

// ResolveWeekForDate resolves the week containing the given instant.
func (s *WeekService) ResolveWeekForDate(t time.Time) (*models.Week, error) {
	weekNumber, isoYear := isoweek.Of(t)
	return s.ResolveWeek(weekNumber, isoYear)
}

// CurrentWeek resolves the week containing the present moment.
func (s *WeekService) CurrentWeek() (*models.Week, error) {
	return s.ResolveWeekForDate(s.now())
}

// WeeksInRange returns every week overlapping [start, end], resolving each
// one first so the listing is complete even for never-referenced weeks.
func (s *WeekService) WeeksInRange(start, end time.Time) ([]*models.Week, error) {
	if end.Before(start) {
		return nil, &models.ValidationError{Field: "end", Message: "End date must not precede start date"}
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		if _, err := s.ResolveWeekForDate(d); err != nil {
			return nil, err
		}
	}
	// The loop steps by whole weeks; the final partial step can miss the
	// week containing end.
	if _, err := s.ResolveWeekForDate(end); err != nil {
		return nil, err
	}

	weeks, err := s.weekRepo.GetOverlapping(start, end)
	if err != nil {
		return nil, &models.StorageError{Op: "list weeks", Err: err}
	}
	return weeks, nil
}

// WeeksForCurrentMonth returns the weeks overlapping the calendar month
// containing the present moment.
func (s *WeekService) WeeksForCurrentMonth() ([]*models.Week, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)
	return s.WeeksInRange(monthStart, monthEnd)
}

// GenerateWeeksForYear pre-creates every week record of an ISO year and
// returns how many weeks the year has. Safe to re-run.
func (s *WeekService) GenerateWeeksForYear(isoYear int) (int, error) {
	total := isoweek.WeeksInYear(isoYear)
	for w := 1; w <= total; w++ {
		if _, err := s.ResolveWeek(w, isoYear); err != nil {
			return 0, err
		}
	}
	return total, nil
}
