package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ukydev/workshop-analytics/internal/models"
)

// ErrUnknownJobType is returned when a job type filter names no known type.
var ErrUnknownJobType = errors.New("unknown job type")

// ParseQuery builds a query from textual inputs as accepted by the API and
// CLI. Dates are YYYY-MM-DD in now's location; a missing start defaults to
// the first of now's month and a missing end to now's day. types is a
// comma separated list of job types.
func ParseQuery(start, end, technician, types string, now time.Time) (Query, error) {
	period := MonthToDate(now)

	from, to := period.Start, period.End
	if s := strings.TrimSpace(start); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, now.Location())
		if err != nil {
			return Query{}, fmt.Errorf("%w: start %q", ErrInvalidPeriod, s)
		}
		from = t
	}
	if s := strings.TrimSpace(end); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, now.Location())
		if err != nil {
			return Query{}, fmt.Errorf("%w: end %q", ErrInvalidPeriod, s)
		}
		to = t
	}

	period, err := NewPeriod(from, to)
	if err != nil {
		return Query{}, err
	}

	jobTypes, err := ParseJobTypes(types)
	if err != nil {
		return Query{}, err
	}

	return NewQuery(period).
		WithTechnician(technician).
		WithJobTypes(jobTypes...).
		WithAsOf(now), nil
}

// ParseJobTypes splits a comma separated list, ignoring blanks.
func ParseJobTypes(list string) ([]models.JobType, error) {
	var out []models.JobType
	for _, raw := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		jt := models.JobType(name)
		if !models.IsValidJobType(jt) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownJobType, name)
		}
		out = append(out, jt)
	}
	return out, nil
}
