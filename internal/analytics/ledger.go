package analytics

import "github.com/ukydev/workshop-analytics/internal/models"

// Ledger answers revenue-in-period questions. Revenue is cash collected:
// payments are placed in time by their own date, never by the invoice's or
// the job's.
type Ledger struct {
	invoices []models.Invoice
	byJob    map[string][]*models.Invoice
}

// NewLedger indexes invoices by linked job id. Unlinked invoices are kept
// for whole-book scans but are never attributed to a job.
func NewLedger(invoices []models.Invoice) *Ledger {
	l := &Ledger{
		invoices: invoices,
		byJob:    make(map[string][]*models.Invoice),
	}
	for i := range invoices {
		inv := &invoices[i]
		if inv.JobID == "" {
			continue
		}
		l.byJob[inv.JobID] = append(l.byJob[inv.JobID], inv)
	}
	return l
}

// Invoices returns the invoices linked to jobID.
func (l *Ledger) Invoices(jobID string) []*models.Invoice {
	return l.byJob[jobID]
}

// PaymentsIn sums the invoice's payments dated within p.
func PaymentsIn(inv *models.Invoice, p Period) float64 {
	return addPaymentsIn(0, inv, p)
}

// addPaymentsIn adds the invoice's in-period payments to total one at a
// time, in record order.
func addPaymentsIn(total float64, inv *models.Invoice, p Period) float64 {
	for _, pay := range inv.PaymentHistory {
		if p.Contains(pay.Date) {
			total += pay.Amount
		}
	}
	return total
}

// HasPaymentsIn reports whether any of the invoice's payments is dated within p.
func HasPaymentsIn(inv *models.Invoice, p Period) bool {
	for _, pay := range inv.PaymentHistory {
		if p.Contains(pay.Date) {
			return true
		}
	}
	return false
}

// RevenueInPeriod sums in-period payments across every invoice linked to jobID.
func (l *Ledger) RevenueInPeriod(jobID string, p Period) float64 {
	var sum float64
	for _, inv := range l.byJob[jobID] {
		sum += PaymentsIn(inv, p)
	}
	return sum
}

// HasPaymentIn reports whether any invoice linked to jobID took a payment within p.
func (l *Ledger) HasPaymentIn(jobID string, p Period) bool {
	for _, inv := range l.byJob[jobID] {
		if HasPaymentsIn(inv, p) {
			return true
		}
	}
	return false
}

// Share splits the job's period revenue evenly across its effective
// technician set and returns the per-technician amount with the set. An
// unassigned job divides by one and attributes to nobody.
func (l *Ledger) Share(job *models.Job, p Period) (float64, []string) {
	techs := job.Technicians()
	revenue := l.RevenueInPeriod(job.ID, p)
	n := len(techs)
	if n == 0 {
		n = 1
	}
	return revenue / float64(n), techs
}
