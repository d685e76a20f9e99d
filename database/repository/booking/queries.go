package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"meetbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func activeStatusFilter() bson.M {
	return bson.M{"$in": models.ActiveStatuses}
}

// HasActiveOverlap reports whether any pending or confirmed booking for the
// host overlaps the half-open interval [start, end).
func (repo *MongoBookingRepo) HasActiveOverlap(hostID string, start, end time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"host_id": hostID,
		"status":  activeStatusFilter(),
		"start":   bson.M{"$lt": end},
		"end":     bson.M{"$gt": start},
	}
	count, err := repo.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// CountActiveBetween counts active bookings for the host starting in [from, to).
func (repo *MongoBookingRepo) CountActiveBetween(hostID string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"host_id": hostID,
		"status":  activeStatusFilter(),
		"start":   bson.M{"$gte": from, "$lt": to},
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings between %s and %s: %w", from, to, err)
	}
	return count, nil
}

// ListByHost retrieves all bookings for a host, soonest first.
func (repo *MongoBookingRepo) ListByHost(hostID string) ([]models.Booking, error) {
	return repo.find(bson.M{"host_id": hostID}, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
}

// ListByCreator retrieves all bookings created by a principal, soonest first.
func (repo *MongoBookingRepo) ListByCreator(principalID string) ([]models.Booking, error) {
	return repo.find(
		bson.M{"created_by_principal_id": principalID},
		options.Find().SetSort(bson.D{{Key: "start", Value: 1}}),
	)
}

// RecentByHost retrieves the most recently created bookings for a host.
func (repo *MongoBookingRepo) RecentByHost(hostID string, limit int64) ([]models.Booking, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return repo.find(bson.M{"host_id": hostID}, opts)
}

func (repo *MongoBookingRepo) find(filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// CountByHost counts all bookings for a host regardless of status.
func (repo *MongoBookingRepo) CountByHost(hostID string) (int64, error) {
	return repo.count(bson.M{"host_id": hostID})
}

// CountByHostStatus counts a host's bookings in a given status.
func (repo *MongoBookingRepo) CountByHostStatus(hostID string, status models.BookingStatus) (int64, error) {
	return repo.count(bson.M{"host_id": hostID, "status": status})
}

// CountUpcomingConfirmed counts confirmed bookings starting after the instant.
func (repo *MongoBookingRepo) CountUpcomingConfirmed(hostID string, after time.Time) (int64, error) {
	return repo.count(bson.M{
		"host_id": hostID,
		"status":  models.StatusConfirmed,
		"start":   bson.M{"$gte": after},
	})
}

// CountAll counts every booking in the collection.
func (repo *MongoBookingRepo) CountAll() (int64, error) {
	return repo.count(bson.M{})
}

func (repo *MongoBookingRepo) count(filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return count, nil
}

// TopHosts aggregates the hosts with the most bookings, descending.
func (repo *MongoBookingRepo) TopHosts(limit int64) ([]models.HostBookingCount, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$host_id", "totalBookings": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"totalBookings": -1}},
		{"$limit": limit},
	}
	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating top hosts: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []models.HostBookingCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("error decoding top hosts: %w", err)
	}
	return counts, nil
}
