package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/workshop-analytics/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the workshop record store.
const (
	JobsCollection      = "jobs"
	InvoicesCollection  = "invoices"
	InventoryCollection = "inventory"
	VehiclesCollection  = "vehicles"
	UsersCollection     = "users"
)

// ErrNilCollection is returned when the store was built without a backing collection.
var ErrNilCollection = errors.New("mongo collection is nil")

// ConnectMongo connects to MongoDB at uri and verifies the connection.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store is the workshop record store. Every read is scoped to one workshop
// and returns that workshop's full collection.
type Store struct {
	Jobs      *mongo.Collection
	Invoices  *mongo.Collection
	Inventory *mongo.Collection
	Vehicles  *mongo.Collection
	Users     *mongo.Collection
}

// NewStore binds a Store to the standard collections of database.
func NewStore(database *mongo.Database) *Store {
	return &Store{
		Jobs:      database.Collection(JobsCollection),
		Invoices:  database.Collection(InvoicesCollection),
		Inventory: database.Collection(InventoryCollection),
		Vehicles:  database.Collection(VehiclesCollection),
		Users:     database.Collection(UsersCollection),
	}
}

func (s *Store) collections() []*mongo.Collection {
	return []*mongo.Collection{s.Jobs, s.Invoices, s.Inventory, s.Vehicles, s.Users}
}

// EnsureIndexes creates the workshop_id index every listing relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, coll := range s.collections() {
		if coll == nil {
			return ErrNilCollection
		}
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "workshop_id", Value: 1}}})
		if err != nil {
			return fmt.Errorf("indexing %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func workshopFilter(workshopID string) bson.M {
	return bson.M{"workshop_id": workshopID}
}

// findAll decodes every document matching filter. A workshop with no
// documents yields an empty, non-nil slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	if coll == nil {
		return nil, ErrNilCollection
	}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListJobs returns every job of the workshop.
func (s *Store) ListJobs(ctx context.Context, workshopID string) ([]models.Job, error) {
	return findAll[models.Job](ctx, s.Jobs, workshopFilter(workshopID))
}

// ListInvoices returns every invoice of the workshop, linked or not.
func (s *Store) ListInvoices(ctx context.Context, workshopID string) ([]models.Invoice, error) {
	return findAll[models.Invoice](ctx, s.Invoices, workshopFilter(workshopID))
}

// ListInventoryItems returns every stocked item of the workshop.
func (s *Store) ListInventoryItems(ctx context.Context, workshopID string) ([]models.InventoryItem, error) {
	return findAll[models.InventoryItem](ctx, s.Inventory, workshopFilter(workshopID))
}

// ListVehicles returns every vehicle seen by the workshop.
func (s *Store) ListVehicles(ctx context.Context, workshopID string) ([]models.Vehicle, error) {
	return findAll[models.Vehicle](ctx, s.Vehicles, workshopFilter(workshopID))
}

// ListTechnicians returns the workshop's users with the technician role.
func (s *Store) ListTechnicians(ctx context.Context, workshopID string) ([]models.User, error) {
	filter := workshopFilter(workshopID)
	filter["role"] = models.RoleTechnician
	return findAll[models.User](ctx, s.Users, filter)
}
