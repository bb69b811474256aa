package model

import (
	"fmt"
	"time"
)

// Day truncates t to UTC midnight. All engine dates are whole days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a closed interval of days. Both Start and End are part of
// the range.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a normalized range and rejects end-before-start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := Day(start), Day(end)
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("%w: %s to %s", ErrInvalidDateRange, s.Format(DateLayout), e.Format(DateLayout))
	}
	return DateRange{Start: s, End: e}, nil
}

// Days returns the inclusive day count of the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Overlaps reports whether two inclusive ranges share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !o.Start.After(r.End)
}

// Contains reports whether d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// DateLayout is the wire format for dates in flat files and APIs.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Day(t), nil
}
