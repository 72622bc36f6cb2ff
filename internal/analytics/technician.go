package analytics

import (
	"time"

	"github.com/ukydev/workshop-analytics/internal/models"
)

// TechnicianReport is the drill-down for a single technician.
type TechnicianReport struct {
	TechnicianID string          `json:"technician_id"`
	Name         string          `json:"name"`
	Period       Period          `json:"period"`
	Revenue      float64         `json:"revenue"`
	ActiveJobs   int             `json:"active_jobs"`
	TotalJobs    int             `json:"total_jobs"`
	Jobs         []TechnicianJob `json:"jobs"`
}

// TechnicianJob is a job included in a drill-down with the technician's share.
type TechnicianJob struct {
	JobID       string           `json:"job_id"`
	Type        models.JobType   `json:"type"`
	Status      models.JobStatus `json:"status"`
	Issues      []string         `json:"issues"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Share       float64          `json:"share"`
}

// ComputeTechnicianReport builds the drill-down for technicianID. Only the
// query's period and AsOf are used; its technician and job type filters do
// not apply here.
//
// A job is included when the technician is assigned and the job was
// created, completed or paid within the period. This is wider than the
// creation-date rule of Query.Matches.
func (e *Engine) ComputeTechnicianReport(technicianID string, q Query) *TechnicianReport {
	q = q.resolved()
	p := q.Period
	r := &TechnicianReport{
		TechnicianID: technicianID,
		Name:         e.technicianName(technicianID),
		Period:       p,
		Jobs:         []TechnicianJob{},
	}
	if technicianID == "" {
		return r
	}

	var undated []*models.Job
	for i := range e.snap.Jobs {
		job := &e.snap.Jobs[i]
		if !job.IsAssignedTo(technicianID) {
			continue
		}
		created := job.CreatedOr(q.AsOf)
		if !p.Contains(created) && !p.ContainsPtr(job.CompletedAt) && !e.ledger.HasPaymentIn(job.ID, p) {
			continue
		}

		share, _ := e.ledger.Share(job, p)
		r.Revenue += share
		r.Jobs = append(r.Jobs, TechnicianJob{
			JobID:       job.ID,
			Type:        job.Type,
			Status:      job.Status,
			Issues:      job.IssueLabels(),
			CreatedAt:   created,
			CompletedAt: job.CompletedAt,
			Share:       share,
		})

		if !job.IsCompleted() {
			r.ActiveJobs++
			continue
		}
		if p.ContainsPtr(job.CompletedAt) {
			r.TotalJobs++
		} else if job.CompletedAt == nil && p.Contains(created) {
			undated = append(undated, job)
		}
	}
	// Completions missing a date only count when none were dated in-period.
	if r.TotalJobs == 0 {
		r.TotalJobs = len(undated)
	}

	return r
}

func (e *Engine) technicianName(id string) string {
	for i := range e.snap.Technicians {
		if e.snap.Technicians[i].ID == id {
			return e.snap.Technicians[i].DisplayName()
		}
	}
	return models.PlaceholderTechnicianName(id)
}
