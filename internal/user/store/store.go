package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/user/models"
)

// Store is interface-driven to keep the services testable against the
// in-memory implementation while production runs on MongoDB.
type Store interface {
	// Create inserts the user, filling in its id. Returns
	// sentinel.ErrDuplicate when the email is already registered.
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// Delete removes the user. Missing users are not an error; account
	// deletion cascades are best-effort.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
