package analytics

import (
	"sort"

	"github.com/ukydev/workshop-analytics/internal/models"
)

// TechnicianStanding is one row of the leaderboard.
type TechnicianStanding struct {
	TechnicianID   string  `json:"technician_id"`
	Name           string  `json:"name"`
	TotalAssigned  int     `json:"total_assigned"`
	CompletedJobs  int     `json:"completed_jobs"`
	Revenue        float64 `json:"revenue"`
	CompletionRate float64 `json:"completion_rate"`
}

// leaderboard ranks every known technician, plus any only seen on job
// assignments, by revenue share. Membership spans the whole job book: the
// period only decides which completions and payments count.
func (e *Engine) leaderboard(q Query) []TechnicianStanding {
	var order []string
	standings := make(map[string]*TechnicianStanding)
	register := func(id, name string) {
		if id == "" {
			return
		}
		if _, ok := standings[id]; ok {
			return
		}
		standings[id] = &TechnicianStanding{TechnicianID: id, Name: name}
		order = append(order, id)
	}

	for i := range e.snap.Technicians {
		tech := &e.snap.Technicians[i]
		register(tech.ID, tech.DisplayName())
	}
	for i := range e.snap.Jobs {
		for _, id := range e.snap.Jobs[i].Technicians() {
			register(id, models.PlaceholderTechnicianName(id))
		}
	}

	for i := range e.snap.Jobs {
		job := &e.snap.Jobs[i]
		if !q.MatchesAssignment(job) {
			continue
		}
		share, techs := e.ledger.Share(job, q.Period)
		completed := completedIn(job, q)
		for _, id := range techs {
			s := standings[id]
			s.TotalAssigned++
			if completed {
				s.CompletedJobs++
			}
			s.Revenue += share
		}
	}

	out := make([]TechnicianStanding, 0, len(order))
	for _, id := range order {
		s := standings[id]
		if s.TotalAssigned > 0 {
			s.CompletionRate = float64(s.CompletedJobs) / float64(s.TotalAssigned) * 100
		}
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

// completedIn reports whether the job was completed within the period,
// falling back to the creation date when no completion date was recorded.
func completedIn(job *models.Job, q Query) bool {
	if !job.IsCompleted() {
		return false
	}
	if job.CompletedAt != nil {
		return q.Period.Contains(*job.CompletedAt)
	}
	return q.Period.Contains(job.CreatedOr(q.AsOf))
}
