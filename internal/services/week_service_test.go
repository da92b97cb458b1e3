package services

import (
	"testing"
	"time"

	"github.com/hourglass/timesheet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWeekIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.weekService.ResolveWeek(40, 2025)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC), first.StartDate.UTC())
	assert.Equal(t, time.Date(2025, 10, 5, 23, 59, 59, 999000000, time.UTC), first.EndDate.UTC())

	second, err := env.weekService.ResolveWeek(40, 2025)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestResolveWeekYearBoundary(t *testing.T) {
	env := newTestEnv(t)

	// Week 1 of 2025 starts on Monday December 30th 2024.
	week, err := env.weekService.ResolveWeek(1, 2025)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), week.StartDate.UTC())
	assert.Equal(t, 2025, week.ISOYear)
}

func TestResolveWeekRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)

	var validationErr *models.ValidationError

	_, err := env.weekService.ResolveWeek(0, 2025)
	require.ErrorAs(t, err, &validationErr)

	// 2025 has 52 ISO weeks, so 53 is out of range...
	_, err = env.weekService.ResolveWeek(53, 2025)
	require.ErrorAs(t, err, &validationErr)

	// ...while 2026 has 53.
	_, err = env.weekService.ResolveWeek(53, 2026)
	assert.NoError(t, err)

	_, err = env.weekService.ResolveWeek(1, 0)
	require.ErrorAs(t, err, &validationErr)
}

func TestResolveWeekForDate(t *testing.T) {
	env := newTestEnv(t)

	// A Friday in the first days of 2021 still belongs to week 53 of 2020.
	week, err := env.weekService.ResolveWeekForDate(time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 53, week.WeekNumber)
	assert.Equal(t, 2020, week.ISOYear)
}

func TestCurrentWeek(t *testing.T) {
	env := newTestEnv(t)

	week, err := env.weekService.CurrentWeek()
	require.NoError(t, err)
	assert.Equal(t, 40, week.WeekNumber)
	assert.Equal(t, 2025, week.ISOYear)
}

func TestWeeksInRange(t *testing.T) {
	env := newTestEnv(t)

	// September 2025 touches weeks 36 through 40, including weeks never
	// referenced before.
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)

	weeks, err := env.weekService.WeeksInRange(start, end)
	require.NoError(t, err)
	require.Len(t, weeks, 5)
	assert.Equal(t, 36, weeks[0].WeekNumber)
	assert.Equal(t, 40, weeks[4].WeekNumber)

	var validationErr *models.ValidationError
	_, err = env.weekService.WeeksInRange(end, start)
	require.ErrorAs(t, err, &validationErr)
}

func TestWeeksForCurrentMonth(t *testing.T) {
	env := newTestEnv(t)

	// October 2025 runs Wednesday Oct 1 through Friday Oct 31 and touches
	// weeks 40 through 44.
	weeks, err := env.weekService.WeeksForCurrentMonth()
	require.NoError(t, err)
	require.Len(t, weeks, 5)
	assert.Equal(t, 40, weeks[0].WeekNumber)
	assert.Equal(t, 44, weeks[4].WeekNumber)
}

func TestGenerateWeeksForYear(t *testing.T) {
	env := newTestEnv(t)

	count, err := env.weekService.GenerateWeeksForYear(2025)
	require.NoError(t, err)
	assert.Equal(t, 52, count)

	// Re-running is a no-op.
	count, err = env.weekService.GenerateWeeksForYear(2025)
	require.NoError(t, err)
	assert.Equal(t, 52, count)

	week, err := env.weekService.ResolveWeek(52, 2025)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC), week.StartDate.UTC())
}
