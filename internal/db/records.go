package db

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/workshop-analytics/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	if coll == nil {
		return ErrNilCollection
	}
	_, err := coll.InsertOne(ctx, doc)
	return err
}

// InsertJob inserts a job record into the collection.
func (s *Store) InsertJob(ctx context.Context, job models.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	return insertOne(ctx, s.Jobs, job)
}

// InsertInvoice inserts an invoice record into the collection.
func (s *Store) InsertInvoice(ctx context.Context, invoice models.Invoice) error {
	now := time.Now()
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = now
	}
	invoice.UpdatedAt = now
	invoice.Status = invoice.EffectiveStatus()
	if invoice.PaymentHistory == nil {
		invoice.PaymentHistory = []models.Payment{}
	}
	return insertOne(ctx, s.Invoices, invoice)
}

// AppendPayment records a payment against an invoice. Payment history is
// append-only.
func (s *Store) AppendPayment(ctx context.Context, invoiceID string, payment models.Payment) error {
	if s.Invoices == nil {
		return ErrNilCollection
	}
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}
	result, err := s.Invoices.UpdateOne(ctx,
		bson.M{"_id": invoiceID},
		bson.M{
			"$push": bson.M{"payment_history": payment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("invoice %s not found", invoiceID)
	}
	return nil
}

// InsertInventoryItem inserts a stock item into the collection.
func (s *Store) InsertInventoryItem(ctx context.Context, item models.InventoryItem) error {
	item.UpdatedAt = time.Now()
	return insertOne(ctx, s.Inventory, item)
}

// InsertVehicle inserts a vehicle record into the collection.
func (s *Store) InsertVehicle(ctx context.Context, vehicle models.Vehicle) error {
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now()
	}
	return insertOne(ctx, s.Vehicles, vehicle)
}

// InsertUser inserts a staff member into the collection.
func (s *Store) InsertUser(ctx context.Context, user models.User) error {
	if !models.IsValidRole(user.Role) {
		return fmt.Errorf("invalid role %q", user.Role)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	user.IsActive = true
	return insertOne(ctx, s.Users, user)
}

// DropWorkshop deletes every record belonging to the workshop.
func (s *Store) DropWorkshop(ctx context.Context, workshopID string) (int64, error) {
	var deleted int64
	for _, coll := range s.collections() {
		if coll == nil {
			return deleted, ErrNilCollection
		}
		result, err := coll.DeleteMany(ctx, workshopFilter(workshopID))
		if err != nil {
			return deleted, fmt.Errorf("clearing %s: %w", coll.Name(), err)
		}
		deleted += result.DeletedCount
	}
	return deleted, nil
}
