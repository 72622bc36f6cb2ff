package analytics

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = errors.New("period end is before start")

// Period is an inclusive, day-aligned date window.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod aligns start to the beginning of its day and end to the last
// instant of its day, each in its own location.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: startOfDay(start), End: endOfDay(end)}
	if p.End.Before(p.Start) {
		return Period{}, fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return p, nil
}

// MonthToDate returns the period from the first of now's month through now's day.
func MonthToDate(now time.Time) Period {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{Start: first, End: endOfDay(now)}
}

// Contains reports whether t falls within the period. The zero time is
// never contained.
func (p Period) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(p.Start) && !t.After(p.End)
}

// ContainsPtr is Contains for optional timestamps.
func (p Period) ContainsPtr(t *time.Time) bool {
	return t != nil && p.Contains(*t)
}

func (p Period) String() string {
	return p.Start.Format(time.DateOnly) + ".." + p.End.Format(time.DateOnly)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
