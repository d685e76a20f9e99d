package hostRepo

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

// ErrNotFound is returned when no host record matches the id.
var ErrNotFound = errors.New("host not found")

// Repository is a read-only view of host identities. The underlying
// collection is owned by the external auth service.
type Repository interface {
	GetByID(id string) (*models.Host, error)
}

// MongoHostRepo implements Repository over the externally-owned collection.
type MongoHostRepo struct {
	coll *mongo.Collection
}

// NewMongoHostRepo constructs a new instance of MongoHostRepo.
func NewMongoHostRepo() Repository {
	return &MongoHostRepo{
		coll: database.DB().Collection("users"),
	}
}

// GetByID retrieves a host identity by id.
func (repo *MongoHostRepo) GetByID(id string) (*models.Host, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var h models.Host
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching host %s: %w", id, err)
	}
	return &h, nil
}
