package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/workshop-analytics/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrMissingWorkshop is returned when a report is requested without a workshop id.
var ErrMissingWorkshop = errors.New("workshop id is required")

// RecordStore lists a workshop's full, unfiltered collections.
type RecordStore interface {
	ListJobs(ctx context.Context, workshopID string) ([]models.Job, error)
	ListInvoices(ctx context.Context, workshopID string) ([]models.Invoice, error)
	ListInventoryItems(ctx context.Context, workshopID string) ([]models.InventoryItem, error)
	ListVehicles(ctx context.Context, workshopID string) ([]models.Vehicle, error)
	ListTechnicians(ctx context.Context, workshopID string) ([]models.User, error)
}

// Publisher receives every computed workshop report.
type Publisher interface {
	PublishReport(ctx context.Context, workshopID string, report *Report) error
}

// Service loads workshop snapshots from a RecordStore and runs the engine over them.
type Service struct {
	store     RecordStore
	publisher Publisher
	log       logrus.FieldLogger
}

// NewService creates a report service. publisher may be nil.
func NewService(store RecordStore, publisher Publisher, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{store: store, publisher: publisher, log: logger}
}

// LoadSnapshot fetches all five collections concurrently. Any failure
// aborts the load; a partial snapshot is never returned.
func (s *Service) LoadSnapshot(ctx context.Context, workshopID string) (Snapshot, error) {
	if workshopID == "" {
		return Snapshot{}, ErrMissingWorkshop
	}

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Jobs, err = s.store.ListJobs(gctx, workshopID)
		return wrapLoad("jobs", err)
	})
	g.Go(func() (err error) {
		snap.Invoices, err = s.store.ListInvoices(gctx, workshopID)
		return wrapLoad("invoices", err)
	})
	g.Go(func() (err error) {
		snap.Inventory, err = s.store.ListInventoryItems(gctx, workshopID)
		return wrapLoad("inventory", err)
	})
	g.Go(func() (err error) {
		snap.Vehicles, err = s.store.ListVehicles(gctx, workshopID)
		return wrapLoad("vehicles", err)
	})
	g.Go(func() (err error) {
		snap.Technicians, err = s.store.ListTechnicians(gctx, workshopID)
		return wrapLoad("technicians", err)
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func wrapLoad(collection string, err error) error {
	if err != nil {
		return fmt.Errorf("loading %s: %w", collection, err)
	}
	return nil
}

// ComputeReport loads the workshop and computes its report for q.
func (s *Service) ComputeReport(ctx context.Context, workshopID string, q Query) (*Report, error) {
	started := time.Now()
	snap, err := s.LoadSnapshot(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	report := NewEngine(snap).ComputeReport(q)

	s.log.WithFields(logrus.Fields{
		"workshop_id":   workshopID,
		"period":        q.Period.String(),
		"technician_id": q.TechnicianID,
		"jobs":          len(snap.Jobs),
		"invoices":      len(snap.Invoices),
		"total_revenue": report.TotalRevenue,
		"elapsed":       time.Since(started),
	}).Info("Computed workshop report")

	if s.publisher != nil {
		if err := s.publisher.PublishReport(ctx, workshopID, report); err != nil {
			s.log.WithError(err).WithField("workshop_id", workshopID).Warn("Failed to publish report summary")
		}
	}
	return report, nil
}

// ComputeTechnicianReport loads the workshop and computes one technician's drill-down.
func (s *Service) ComputeTechnicianReport(ctx context.Context, workshopID, technicianID string, q Query) (*TechnicianReport, error) {
	snap, err := s.LoadSnapshot(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	report := NewEngine(snap).ComputeTechnicianReport(technicianID, q)

	s.log.WithFields(logrus.Fields{
		"workshop_id":   workshopID,
		"technician_id": technicianID,
		"period":        q.Period.String(),
		"jobs":          len(report.Jobs),
		"revenue":       report.Revenue,
	}).Info("Computed technician report")
	return report, nil
}
