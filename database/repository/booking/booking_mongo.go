package bookingRepo

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

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// MongoBookingRepo implements Repository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() Repository {
	return &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its id.
func (repo *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	return repo.findOne(bson.M{"id": id})
}

// GetByMeetingRoom retrieves the booking owning a meeting room token.
func (repo *MongoBookingRepo) GetByMeetingRoom(roomID string) (*models.Booking, error) {
	return repo.findOne(bson.M{"meeting_room_id": roomID})
}

func (repo *MongoBookingRepo) findOne(filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := repo.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return &b, nil
}

// Update replaces the mutable fields of an existing booking document.
func (repo *MongoBookingRepo) Update(id string, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":     b.Status,
		"notes":      b.Notes,
		"updated_at": time.Now().UTC(),
	}
	// Cleared access fields are removed outright. Leaving an empty-string
	// meeting_room_id in place would collide on the partial unique room index.
	unset := bson.M{}
	if b.MeetingRoomID != "" {
		set["meeting_room_id"] = b.MeetingRoomID
	} else {
		unset["meeting_room_id"] = ""
	}
	if b.AccessStart != nil && b.AccessEnd != nil {
		set["access_start"] = b.AccessStart
		set["access_end"] = b.AccessEnd
	} else {
		unset["access_start"] = ""
		unset["access_end"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetReminderSent flips the reminder flag for the given target.
func (repo *MongoBookingRepo) SetReminderSent(id, target string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	field := "reminder_sent_to_guest"
	if target == models.ReminderTargetHost {
		field = "reminder_sent_to_host"
	}
	update := bson.M{"$set": bson.M{field: true, "updated_at": time.Now().UTC()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error setting reminder flag on booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
