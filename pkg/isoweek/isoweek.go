// Package isoweek implements ISO-8601 week arithmetic.
//
// An ISO week runs Monday through Sunday and is numbered 1-53, where week 1
// is the week containing the first Thursday of the year. A date in late
// December can belong to week 1 of the following ISO year, and a date in
// early January can belong to week 52/53 of the previous one.
package isoweek

import "time"

// Of returns the ISO-8601 week number and ISO year for t. The computation
// uses the UTC calendar date of t, so the result does not depend on the
// local timezone of the caller.
func Of(t time.Time) (weekNumber, isoYear int) {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	// Shift to the Thursday of this week (Monday=1 .. Sunday=7).
	dayNum := int(day.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	thursday := day.AddDate(0, 0, 4-dayNum)

	// Week number is the ordinal of that Thursday's seven-day slot.
	return (thursday.YearDay() + 6) / 7, thursday.Year()
}

// MondayOf returns the Monday 00:00 UTC that starts the given ISO week.
func MondayOf(weekNumber, isoYear int) time.Time {
	// January 4th always falls inside ISO week 1.
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	dayNum := int(jan4.Weekday())
	if dayNum == 0 {
		dayNum = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-dayNum)
	return week1Monday.AddDate(0, 0, (weekNumber-1)*7)
}

// SundayEndOf returns the last instant (Sunday 23:59:59.999 UTC) of the
// given ISO week.
func SundayEndOf(weekNumber, isoYear int) time.Time {
	return MondayOf(weekNumber, isoYear).AddDate(0, 0, 7).Add(-time.Millisecond)
}

// WeeksInYear returns the number of ISO weeks (52 or 53) in isoYear.
func WeeksInYear(isoYear int) int {
	// December 28th always falls in the last ISO week of its year.
	w, _ := Of(time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC))
	return w
}
