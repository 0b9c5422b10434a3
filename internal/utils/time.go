package utils

import (
	"context"
	"time"
)

// CalendarDateLayout is the ISO calendar date used for event start and end dates.
const CalendarDateLayout = "2006-01-02"

// ParseCalendarDate parses "YYYY-MM-DD" as midnight UTC.
func ParseCalendarDate(value string) (time.Time, error) {
	return time.ParseInLocation(CalendarDateLayout, value, time.UTC)
}

// Today truncates now to its UTC calendar date.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Sleep waits for d or until ctx is done. A non-positive d returns immediately.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
