package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used in query parameters.
const DateLayout = "2006-01-02"

// DefaultWindow is the span of the default date range.
const DefaultWindow = 30 * 24 * time.Hour

type DateRange struct {
	Start time.Time
	End   time.Time
}

// LastDays returns the window of the given length that ends on now's date.
func LastDays(now time.Time, window time.Duration) DateRange {
	end := truncateDay(now)
	return DateRange{Start: end.Add(-window), End: end}
}

// ParseDateRange parses two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	r := DateRange{Start: s, End: e}
	return r, r.Validate()
}

func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return errors.New("date range requires both start and end")
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("start date %s is after end date %s", r.StartDate(), r.EndDate())
	}
	return nil
}

func (r DateRange) StartDate() string { return r.Start.Format(DateLayout) }

func (r DateRange) EndDate() string { return r.End.Format(DateLayout) }

func (r DateRange) Equal(o DateRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

func (r DateRange) String() string {
	return r.StartDate() + " to " + r.EndDate()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
