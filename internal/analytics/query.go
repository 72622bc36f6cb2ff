package analytics

import (
	"strings"
	"time"

	"github.com/ukydev/workshop-analytics/internal/models"
)

// AllTechnicians disables the technician filter.
const AllTechnicians = "all"

// Query is the period and filter a report is computed for. It is a value:
// the With* helpers return modified copies.
type Query struct {
	Period       Period
	TechnicianID string
	JobTypes     []models.JobType

	// AsOf stands in for a job's creation time when the record has none.
	// Zero means the current time.
	AsOf time.Time
}

// NewQuery builds an unfiltered query over period, anchored at the current time.
func NewQuery(period Period) Query {
	return Query{Period: period, AsOf: time.Now()}
}

// WithTechnician narrows the query to one technician. Empty or "all" clears it.
func (q Query) WithTechnician(id string) Query {
	q.TechnicianID = strings.TrimSpace(id)
	return q
}

// WithJobTypes narrows the query to the given job types. None clears it.
func (q Query) WithJobTypes(types ...models.JobType) Query {
	q.JobTypes = append([]models.JobType(nil), types...)
	return q
}

// WithAsOf overrides the fallback creation time.
func (q Query) WithAsOf(t time.Time) Query {
	q.AsOf = t
	return q
}

// resolved returns q with a zero AsOf replaced by the current time.
func (q Query) resolved() Query {
	if q.AsOf.IsZero() {
		q.AsOf = time.Now()
	}
	return q
}

// FiltersTechnician reports whether a technician filter is active.
func (q Query) FiltersTechnician() bool {
	return q.TechnicianID != "" && q.TechnicianID != AllTechnicians
}

// FiltersAssignment reports whether any technician or job type filter is active.
func (q Query) FiltersAssignment() bool {
	return q.FiltersTechnician() || len(q.JobTypes) > 0
}

// Matches reports whether job falls in the period by creation date and
// passes the technician and job type filters.
func (q Query) Matches(job *models.Job) bool {
	return q.Period.Contains(job.CreatedOr(q.resolved().AsOf)) && q.MatchesAssignment(job)
}

// MatchesAssignment applies only the technician and job type filters.
func (q Query) MatchesAssignment(job *models.Job) bool {
	return q.matchesTechnician(job) && q.matchesType(job)
}

func (q Query) matchesTechnician(job *models.Job) bool {
	if !q.FiltersTechnician() {
		return true
	}
	return job.IsAssignedTo(q.TechnicianID)
}

func (q Query) matchesType(job *models.Job) bool {
	if len(q.JobTypes) == 0 {
		return true
	}
	for _, t := range q.JobTypes {
		if t == job.Type {
			return true
		}
	}
	return false
}
