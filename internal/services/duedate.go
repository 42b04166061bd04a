package services

import "time"

// NextDueDate advances a due date by one billing cycle, preserving the
// day-of-month. December wraps into January of the next year. When the day
// does not exist in the target month (Jan 31 -> Feb), it clamps to the last
// valid day, so Jan 31 2024 rolls to Feb 29 2024 and Jan 31 2025 to Feb 28
// 2025. Dates are treated as pure calendar dates in UTC.
func NextDueDate(d time.Time) time.Time {
	year, month, day := d.Date()

	month++
	if month > time.December {
		month = time.January
		year++
	}

	if last := daysInMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOnly strips the time-of-day component, normalizing to midnight UTC.
// Every calendar-date column goes through this so equality comparisons in
// SQL behave the same on Postgres and the sqlite test databases.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the following month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
