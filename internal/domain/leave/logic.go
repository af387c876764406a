package leave

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date before start date")

// CalculateDays returns the inclusive whole-day count between start and end.
// Time-of-day is ignored; a range starting and ending on the same date is one day.
func CalculateDays(start, end time.Time) (int, error) {
	startDay := NormalizeDate(start)
	endDay := NormalizeDate(end)
	if endDay.Before(startDay) {
		return 0, ErrInvalidRange
	}
	return int(endDay.Sub(startDay).Hours()/24) + 1, nil
}

// NormalizeDate strips time-of-day, mapping an instant to midnight UTC of its
// civil date. All date comparisons in this package go through it.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// coversDay reports whether day falls within [start, end], date-only and inclusive.
func coversDay(day, start, end time.Time) bool {
	d := NormalizeDate(day)
	return !d.Before(NormalizeDate(start)) && !d.After(NormalizeDate(end))
}

func typesByID(types []LeaveType) map[string]LeaveType {
	byID := make(map[string]LeaveType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}
	return byID
}
