package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/ukydev/workshop-analytics/internal/analytics"
	"github.com/ukydev/workshop-analytics/internal/models"
)

func testGenerator() *generator {
	return &generator{
		rng:        rand.New(rand.NewSource(42)),
		workshopID: "ws-test",
		now:        time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC),
		days:       60,
	}
}

func TestGenerate_Shape(t *testing.T) {
	ds := testGenerator().Generate(50)

	if len(ds.Jobs) != 50 {
		t.Fatalf("Expected 50 jobs, got %d", len(ds.Jobs))
	}
	if len(ds.Technicians) < 3 || len(ds.Technicians) > len(technicianNames) {
		t.Errorf("Unexpected technician count: %d", len(ds.Technicians))
	}
	if len(ds.Inventory) != len(parts) {
		t.Errorf("Expected %d inventory items, got %d", len(parts), len(ds.Inventory))
	}

	vehicles := make(map[string]bool)
	for _, v := range ds.Vehicles {
		vehicles[v.ID] = true
		if _, ok := makes[v.Make]; !ok {
			t.Errorf("Unknown make %q", v.Make)
		}
	}
	for _, u := range ds.Technicians {
		if !u.IsTechnician() {
			t.Errorf("Seeded user %s is not a technician", u.Name)
		}
	}

	earliest := time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC).AddDate(0, 0, -60)
	for _, job := range ds.Jobs {
		if job.WorkshopID != "ws-test" {
			t.Errorf("Job %s has workshop %q", job.ID, job.WorkshopID)
		}
		if !vehicles[job.VehicleID] {
			t.Errorf("Job %s references unknown vehicle", job.ID)
		}
		if !models.IsValidJobType(job.Type) {
			t.Errorf("Job %s has invalid type %q", job.ID, job.Type)
		}
		if job.CreatedAt.Before(earliest) {
			t.Errorf("Job %s created before the seeded window: %v", job.ID, job.CreatedAt)
		}
		if job.IsCompleted() && job.CompletedAt == nil {
			t.Errorf("Completed job %s has no completion date", job.ID)
		}
		if techs := job.Technicians(); len(techs) > 1 && techs[0] == techs[1] {
			t.Errorf("Job %s has a duplicated technician", job.ID)
		}
	}
}

func TestGenerate_InvoicesNeverOverpaid(t *testing.T) {
	gen := testGenerator()
	ds := gen.Generate(80)

	jobs := make(map[string]models.Job)
	for _, job := range ds.Jobs {
		jobs[job.ID] = job
	}

	for _, inv := range ds.Invoices {
		job, ok := jobs[inv.JobID]
		if !ok {
			t.Fatalf("Invoice %s references unknown job", inv.ID)
		}
		if inv.Balance() < -0.01 {
			t.Errorf("Invoice %s overpaid: total %.2f paid %.2f", inv.ID, inv.Total, inv.AmountPaid())
		}
		if len(inv.PaymentHistory) > 0 && job.CompletedAt == nil {
			t.Errorf("Invoice %s is paid but job %s is not completed", inv.ID, job.ID)
		}
		for _, p := range inv.PaymentHistory {
			if p.Date.Before(*job.CompletedAt) || p.Date.After(gen.now) {
				t.Errorf("Payment on %s dated %v outside completion..now", inv.ID, p.Date)
			}
		}
	}
}

func TestGenerate_FeedsEngine(t *testing.T) {
	gen := testGenerator()
	ds := gen.Generate(120)

	engine := analytics.NewEngine(analytics.Snapshot{
		Jobs:        ds.Jobs,
		Invoices:    ds.Invoices,
		Inventory:   ds.Inventory,
		Vehicles:    ds.Vehicles,
		Technicians: ds.Technicians,
	})
	period, err := analytics.NewPeriod(gen.now.AddDate(0, 0, -60), gen.now)
	if err != nil {
		t.Fatal(err)
	}
	report := engine.ComputeReport(analytics.NewQuery(period).WithAsOf(gen.now))

	if report.TotalRevenue <= 0 {
		t.Errorf("Expected revenue from seeded payments, got %.2f", report.TotalRevenue)
	}
	if len(report.Leaderboard) == 0 {
		t.Error("Expected seeded technicians on the leaderboard")
	}
	if report.InventoryValue <= 0 {
		t.Error("Expected a positive inventory value")
	}
}

type fakeWriter struct {
	calls    []string
	invoices []models.Invoice
	payments int
	failOn   string
}

func (f *fakeWriter) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return errors.New("write failed")
	}
	return nil
}

func (f *fakeWriter) DropWorkshop(ctx context.Context, workshopID string) (int64, error) {
	return 3, f.record("drop")
}
func (f *fakeWriter) InsertUser(ctx context.Context, user models.User) error { return f.record("user") }
func (f *fakeWriter) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	return f.record("vehicle")
}
func (f *fakeWriter) InsertInventoryItem(ctx context.Context, item models.InventoryItem) error {
	return f.record("inventory")
}
func (f *fakeWriter) InsertJob(ctx context.Context, job models.Job) error { return f.record("job") }
func (f *fakeWriter) InsertInvoice(ctx context.Context, invoice models.Invoice) error {
	f.invoices = append(f.invoices, invoice)
	return f.record("invoice")
}
func (f *fakeWriter) AppendPayment(ctx context.Context, invoiceID string, payment models.Payment) error {
	f.payments++
	return f.record("payment")
}

func TestWrite(t *testing.T) {
	ds := testGenerator().Generate(30)
	want := 0
	for _, inv := range ds.Invoices {
		want += len(inv.PaymentHistory)
	}

	w := &fakeWriter{}
	if err := write(context.Background(), w, "ws-test", ds); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if w.calls[0] != "drop" {
		t.Errorf("Expected the workshop to be cleared first, got %s", w.calls[0])
	}
	if w.payments != want {
		t.Errorf("Expected %d appended payments, got %d", want, w.payments)
	}
	for _, inv := range w.invoices {
		if len(inv.PaymentHistory) != 0 {
			t.Errorf("Invoice %s inserted with payments", inv.ID)
		}
	}

	failing := &fakeWriter{failOn: "job"}
	if err := write(context.Background(), failing, "ws-test", ds); err == nil {
		t.Error("Expected job insert failure to abort seeding")
	}
	for _, call := range failing.calls {
		if call == "invoice" {
			t.Fatal("Invoices written after a failed job insert")
		}
	}
}

func TestEnvInt(t *testing.T) {
	os.Setenv("SEED_TEST_INT", "25")
	defer os.Unsetenv("SEED_TEST_INT")
	if got := envInt("SEED_TEST_INT", 10); got != 25 {
		t.Errorf("Expected 25, got %d", got)
	}

	os.Setenv("SEED_TEST_INT", "zero")
	if got := envInt("SEED_TEST_INT", 10); got != 10 {
		t.Errorf("Expected fallback 10, got %d", got)
	}

	os.Setenv("SEED_TEST_INT", "0")
	if got := envInt("SEED_TEST_INT", 10); got != 10 {
		t.Errorf("Expected fallback 10 for non-positive value, got %d", got)
	}
}
