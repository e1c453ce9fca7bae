package engine

import (
	"time"

	"github.com/nhle/tasktrack/internal/model"
)

// NextDueDate computes the due date of the next occurrence from the
// current due date and recurrence pattern. It is pure and returns nil
// when either input is absent.
//
// Daily adds one day, weekly adds seven. Monthly moves to the next
// calendar month (December wraps to January of the next year) and
// clamps the day to the last valid day of the target month, so
// Jan 31 yields Feb 28 (or Feb 29 in leap years).
func NextDueDate(due *time.Time, rec model.Recurrence) *time.Time {
	if due == nil || rec == model.RecurrenceNone {
		return nil
	}
	d := model.DateOnly(*due)

	var next time.Time
	switch rec {
	case model.RecurrenceDaily:
		next = d.AddDate(0, 0, 1)
	case model.RecurrenceWeekly:
		next = d.AddDate(0, 0, 7)
	case model.RecurrenceMonthly:
		year, month, day := d.Date()
		month++
		if month > time.December {
			month = time.January
			year++
		}
		if last := lastDayOfMonth(year, month); day > last {
			day = last
		}
		next = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	default:
		return nil
	}
	return &next
}

// lastDayOfMonth returns the number of days in the given month; the
// zeroth day of the following month normalizes to it.
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
