package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/workshop-analytics/internal/config"
	"github.com/ukydev/workshop-analytics/internal/db"
	"github.com/ukydev/workshop-analytics/internal/models"
)

// recordWriter is the subset of db.Store the seeder writes through.
type recordWriter interface {
	DropWorkshop(ctx context.Context, workshopID string) (int64, error)
	InsertUser(ctx context.Context, user models.User) error
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) error
	InsertInventoryItem(ctx context.Context, item models.InventoryItem) error
	InsertJob(ctx context.Context, job models.Job) error
	InsertInvoice(ctx context.Context, invoice models.Invoice) error
	AppendPayment(ctx context.Context, invoiceID string, payment models.Payment) error
}

func envInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
		log.WithField(key, val).Warn("Ignoring invalid value")
	}
	return fallback
}

// write replaces the workshop's records with ds. Invoices are inserted
// unpaid and their payments appended afterwards, as the workshop app does.
func write(ctx context.Context, w recordWriter, workshopID string, ds Dataset) error {
	deleted, err := w.DropWorkshop(ctx, workshopID)
	if err != nil {
		return fmt.Errorf("clearing workshop: %w", err)
	}
	if deleted > 0 {
		log.WithFields(log.Fields{"workshop_id": workshopID, "deleted": deleted}).Info("Cleared existing records")
	}

	for _, u := range ds.Technicians {
		if err := w.InsertUser(ctx, u); err != nil {
			return fmt.Errorf("inserting technician %s: %w", u.Name, err)
		}
	}
	for _, v := range ds.Vehicles {
		if err := w.InsertVehicle(ctx, v); err != nil {
			return fmt.Errorf("inserting vehicle: %w", err)
		}
	}
	for _, item := range ds.Inventory {
		if err := w.InsertInventoryItem(ctx, item); err != nil {
			return fmt.Errorf("inserting inventory item %s: %w", item.Name, err)
		}
	}
	for _, job := range ds.Jobs {
		if err := w.InsertJob(ctx, job); err != nil {
			return fmt.Errorf("inserting job: %w", err)
		}
	}

	payments := 0
	for _, inv := range ds.Invoices {
		history := inv.PaymentHistory
		inv.PaymentHistory = nil
		if err := w.InsertInvoice(ctx, inv); err != nil {
			return fmt.Errorf("inserting invoice: %w", err)
		}
		for _, p := range history {
			if err := w.AppendPayment(ctx, inv.ID, p); err != nil {
				return fmt.Errorf("recording payment on %s: %w", inv.ID, err)
			}
			payments++
		}
	}

	log.WithFields(log.Fields{
		"workshop_id": workshopID,
		"technicians": len(ds.Technicians),
		"vehicles":    len(ds.Vehicles),
		"inventory":   len(ds.Inventory),
		"jobs":        len(ds.Jobs),
		"invoices":    len(ds.Invoices),
		"payments":    payments,
	}).Info("Seeded workshop")
	return nil
}

func main() {
	cfg := config.Load()
	cfg.ConfigureLogging()

	workshopID := os.Getenv("SEED_WORKSHOP")
	if workshopID == "" {
		workshopID = "demo-workshop"
	}
	jobCount := envInt("SEED_JOBS", 200)
	days := envInt("SEED_DAYS", 90)

	log.WithFields(log.Fields{
		"workshop_id": workshopID,
		"jobs":        jobCount,
		"days":        days,
	}).Info("Generating workshop data")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	store := db.NewStore(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Warn("Failed to ensure indexes")
	}

	gen := &generator{
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		workshopID: workshopID,
		now:        time.Now(),
		days:       days,
	}
	if err := write(ctx, store, workshopID, gen.Generate(jobCount)); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}
