package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/post/models"
)

// Store is interface-driven so services test against the in-memory
// implementation while production runs on MongoDB.
type Store interface {
	// Create inserts the post, filling in its id.
	Create(ctx context.Context, post *models.Post) error
	// FindAll returns every post, newest first by creation time.
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// Replace persists a full document after a likes/comments mutation.
	Replace(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByAuthor removes every post authored by the user, for the
	// account deletion cascade.
	DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error
}
