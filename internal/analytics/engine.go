package analytics

import (
	"strings"
	"time"

	"github.com/ukydev/workshop-analytics/internal/models"
)

// Snapshot is the full, unfiltered record set of one workshop.
type Snapshot struct {
	Jobs        []models.Job
	Invoices    []models.Invoice
	Inventory   []models.InventoryItem
	Vehicles    []models.Vehicle
	Technicians []models.User
}

// Report is the workshop dashboard for one query.
type Report struct {
	Period       Period           `json:"period"`
	TechnicianID string           `json:"technician_id,omitempty"`
	JobTypes     []models.JobType `json:"job_types,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`

	TotalRevenue       float64                  `json:"total_revenue"`
	Leaderboard        []TechnicianStanding     `json:"leaderboard"`
	TopIssuesByVolume  []Ranked                 `json:"top_issues_by_volume"`
	TopIssuesByRevenue []Ranked                 `json:"top_issues_by_revenue"`
	TopBrands          []Ranked                 `json:"top_brands"`
	TopPartsByQuantity []Ranked                 `json:"top_parts_by_quantity"`
	TopPartsByRevenue  []Ranked                 `json:"top_parts_by_revenue"`
	InventoryValue     float64                  `json:"inventory_value"`
	LowStockItems      int                      `json:"low_stock_items"`
	FilteredJobs       int                      `json:"filtered_jobs"`
	JobsByStatus       map[models.JobStatus]int `json:"jobs_by_status"`
	CompletedCount     int                      `json:"completed_count"`
	TargetPercentage   float64                  `json:"target_percentage"`
}

// Engine computes reports over a snapshot. It never mutates the snapshot,
// so one Engine may serve concurrent report requests.
type Engine struct {
	snap     Snapshot
	ledger   *Ledger
	jobs     map[string]*models.Job
	vehicles map[string]*models.Vehicle
}

// NewEngine indexes the snapshot for reporting.
func NewEngine(snap Snapshot) *Engine {
	e := &Engine{
		snap:     snap,
		ledger:   NewLedger(snap.Invoices),
		jobs:     make(map[string]*models.Job, len(snap.Jobs)),
		vehicles: make(map[string]*models.Vehicle, len(snap.Vehicles)),
	}
	for i := range snap.Jobs {
		if _, dup := e.jobs[snap.Jobs[i].ID]; !dup {
			e.jobs[snap.Jobs[i].ID] = &snap.Jobs[i]
		}
	}
	for i := range snap.Vehicles {
		if _, dup := e.vehicles[snap.Vehicles[i].ID]; !dup {
			e.vehicles[snap.Vehicles[i].ID] = &snap.Vehicles[i]
		}
	}
	return e
}

// ComputeReport builds the workshop report for q.
func (e *Engine) ComputeReport(q Query) *Report {
	q = q.resolved()
	filtered := e.filterJobs(q)

	r := &Report{
		Period:       q.Period,
		TechnicianID: q.TechnicianID,
		JobTypes:     q.JobTypes,
		GeneratedAt:  q.AsOf,
		FilteredJobs: len(filtered),
		JobsByStatus: make(map[models.JobStatus]int),
	}

	r.TotalRevenue = e.totalRevenue(q)
	r.Leaderboard = e.leaderboard(q)
	r.TopIssuesByVolume = issuesByVolume(filtered)
	r.TopIssuesByRevenue = e.issuesByRevenue(q.Period)
	r.TopBrands = e.brands(filtered)
	r.TopPartsByQuantity, r.TopPartsByRevenue = e.parts(q)
	r.InventoryValue, r.LowStockItems = e.inventory()

	for _, job := range filtered {
		r.JobsByStatus[job.Status]++
		if job.IsCompleted() {
			r.CompletedCount++
		}
	}
	// Progress is measured against the whole book of jobs, not the filtered subset.
	if total := len(e.snap.Jobs); total > 0 {
		r.TargetPercentage = float64(r.CompletedCount) / float64(total) * 100
	}

	return r
}

func (e *Engine) filterJobs(q Query) []*models.Job {
	var out []*models.Job
	for i := range e.snap.Jobs {
		if q.Matches(&e.snap.Jobs[i]) {
			out = append(out, &e.snap.Jobs[i])
		}
	}
	return out
}

// invoiceCounts decides whether an invoice's payments belong to the query.
// Unlinked invoices always count; linked ones follow their job's
// technician and type. A link to a job that is not in the snapshot counts
// only when no such filter is active.
func (e *Engine) invoiceCounts(inv *models.Invoice, q Query) bool {
	if inv.JobID == "" {
		return true
	}
	job, ok := e.jobs[inv.JobID]
	if !ok {
		return !q.FiltersAssignment()
	}
	return q.MatchesAssignment(job)
}

// totalRevenue adds payments one at a time in record order.
func (e *Engine) totalRevenue(q Query) float64 {
	var total float64
	for i := range e.snap.Invoices {
		inv := &e.snap.Invoices[i]
		if !HasPaymentsIn(inv, q.Period) || !e.invoiceCounts(inv, q) {
			continue
		}
		total = addPaymentsIn(total, inv, q.Period)
	}
	return total
}

func issuesByVolume(jobs []*models.Job) []Ranked {
	t := newTally()
	for _, job := range jobs {
		for _, label := range job.IssueLabels() {
			t.add(label, label, 1, 0)
		}
	}
	return top(t.list(), TopN, byCount)
}

// issuesByRevenue scans every job regardless of technician or type filter,
// unlike issuesByVolume.
func (e *Engine) issuesByRevenue(p Period) []Ranked {
	t := newTally()
	for i := range e.snap.Jobs {
		job := &e.snap.Jobs[i]
		revenue := e.ledger.RevenueInPeriod(job.ID, p)
		if revenue == 0 {
			continue
		}
		for _, label := range job.IssueLabels() {
			t.add(label, label, 1, revenue)
		}
	}
	return top(t.list(), TopN, byRevenue)
}

func (e *Engine) brands(jobs []*models.Job) []Ranked {
	t := newTally()
	for _, job := range jobs {
		v, ok := e.vehicles[job.VehicleID]
		if !ok {
			continue
		}
		brand := strings.TrimSpace(v.Make)
		if brand == "" {
			continue
		}
		t.add(strings.ToUpper(brand), brand, 1, 0)
	}
	return top(t.list(), TopN, byCount)
}

func (e *Engine) parts(q Query) (byQty, byRev []Ranked) {
	t := newTally()
	for i := range e.snap.Invoices {
		inv := &e.snap.Invoices[i]
		if !HasPaymentsIn(inv, q.Period) || !e.invoiceCounts(inv, q) {
			continue
		}
		for _, item := range inv.Items {
			name := strings.TrimSpace(item.Description)
			if name == "" || item.IsLabour() {
				continue
			}
			t.add(strings.ToUpper(name), name, item.Quantity, item.LineTotal())
		}
	}
	entries := t.list()
	return top(entries, TopN, byCount), top(entries, TopN, byRevenue)
}

// inventory values current stock; it is a snapshot and ignores the period.
func (e *Engine) inventory() (float64, int) {
	var value float64
	var low int
	for i := range e.snap.Inventory {
		item := &e.snap.Inventory[i]
		value += item.StockValue()
		if item.IsLowStock() {
			low++
		}
	}
	return value, low
}
