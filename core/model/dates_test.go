package model

import (
	"errors"
	"testing"
	"time"
)

func d(day int) time.Time {
	return time.Date(2026, time.September, day, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end int) DateRange {
	t.Helper()
	r, err := NewDateRange(d(start), d(end))
	if err != nil {
		t.Fatalf("NewDateRange(%d, %d): %v", start, end, err)
	}
	return r
}

func TestNewDateRangeRejectsInverted(t *testing.T) {
	if _, err := NewDateRange(d(12), d(10)); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestDaysInclusive(t *testing.T) {
	cases := []struct {
		start, end, want int
	}{
		{10, 10, 1},
		{10, 12, 3},
		{1, 30, 30},
	}
	for _, c := range cases {
		if got := mustRange(t, c.start, c.end).Days(); got != c.want {
			t.Errorf("Days(%d..%d) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, 10, 15)
	cases := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", mustRange(t, 10, 15), true},
		{"contained", mustRange(t, 11, 12), true},
		{"shared end day", mustRange(t, 15, 20), true},
		{"shared start day", mustRange(t, 5, 10), true},
		{"before", mustRange(t, 1, 9), false},
		{"after", mustRange(t, 16, 20), false},
	}
	for _, c := range cases {
		if got := base.Overlaps(c.other); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
		if got := c.other.Overlaps(base); got != c.want {
			t.Errorf("%s: Overlaps not symmetric", c.name)
		}
	}
}

func TestContains(t *testing.T) {
	r := mustRange(t, 10, 12)
	if !r.Contains(d(10)) || !r.Contains(d(12)) {
		t.Error("range should contain its own bounds")
	}
	if r.Contains(d(9)) || r.Contains(d(13)) {
		t.Error("range should not contain days outside it")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-09-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(d(10)) {
		t.Errorf("ParseDate = %v, want %v", got, d(10))
	}
	if _, err := ParseDate("10/09/2026"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}
