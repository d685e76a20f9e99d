package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on (host_id, start) restricted to active statuses
// is the storage-level backstop for the no-overlap invariant: even if two
// creates for the same slot race past the in-process serialization, only one
// insert can land.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "host_id", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_host_start").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{"pending", "confirmed"}},
				}),
		},
		{
			Keys:    bson.D{{Key: "host_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("host_status_start_idx"),
		},
		{
			Keys: bson.D{{Key: "meeting_room_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_meeting_room").
				SetPartialFilterExpression(bson.M{
					"meeting_room_id": bson.M{"$type": "string"},
				}),
		},
		{
			Keys:    bson.D{{Key: "created_by_principal_id", Value: 1}},
			Options: options.Index().SetName("creator_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
