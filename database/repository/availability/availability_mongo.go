package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meetbook/database"
	"meetbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no template matches the given id (and host,
// for owner-scoped operations).
var ErrNotFound = errors.New("availability template not found")

// MongoAvailabilityRepo implements Repository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() Repository {
	return &MongoAvailabilityRepo{
		coll: database.DB().Collection("availability"),
	}
}

// Create inserts a new availability template document.
func (repo *MongoAvailabilityRepo) Create(tpl *models.AvailabilityTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, tpl)
	if err != nil {
		return fmt.Errorf("error creating availability template: %w", err)
	}
	return nil
}

// GetByID retrieves a template by its id.
func (repo *MongoAvailabilityRepo) GetByID(id string) (*models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var tpl models.AvailabilityTemplate
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tpl); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching availability template %s: %w", id, err)
	}
	return &tpl, nil
}

// GetByHost retrieves all templates owned by a host.
func (repo *MongoAvailabilityRepo) GetByHost(hostID string) ([]models.AvailabilityTemplate, error) {
	return repo.find(bson.M{"host_id": hostID})
}

// ListAll retrieves every template, for guests browsing hosts' availability.
func (repo *MongoAvailabilityRepo) ListAll() ([]models.AvailabilityTemplate, error) {
	return repo.find(bson.M{})
}

func (repo *MongoAvailabilityRepo) find(filter bson.M) ([]models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability templates: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []models.AvailabilityTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("error decoding availability templates: %w", err)
	}
	return templates, nil
}

// Update replaces an existing template, matching on id and owning host.
func (repo *MongoAvailabilityRepo) Update(id, hostID string, tpl *models.AvailabilityTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "host_id": hostID}
	update := bson.M{"$set": bson.M{
		"weekly":        tpl.Weekly,
		"buffer_before": tpl.BufferBefore,
		"buffer_after":  tpl.BufferAfter,
		"durations":     tpl.Durations,
		"max_per_day":   tpl.MaxPerDay,
		"blocked_dates": tpl.BlockedDates,
		"timezone":      tpl.Timezone,
		"updated_at":    time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating availability template %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a template, matching on id and owning host. Existing
// bookings keep their snapshotted buffers and are unaffected.
func (repo *MongoAvailabilityRepo) Delete(id, hostID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id, "host_id": hostID})
	if err != nil {
		return fmt.Errorf("error deleting availability template %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
