package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/streamify/internal/models"
	"github.com/Dias221467/streamify/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository reads user accounts. Accounts are written by the auth service.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		err = translate(err)
		if err != ErrNotFound {
			logger.Log.WithField("userID", id.Hex()).WithError(err).Warn("Failed to find user by ID")
		}
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user document with the id exists.
func (r *UserRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return n > 0, nil
}
