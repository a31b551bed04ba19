package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/profile/models"
)

// Fields are the caller-settable profile fields applied by an upsert. Nested
// experience/education lists and the profile picture survive an upsert
// untouched.
type Fields struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         models.Social
}

// Store is interface-driven so services test against the in-memory
// implementation while production runs on MongoDB.
type Store interface {
	// Upsert creates or replaces the caller-settable fields of the one
	// profile keyed by userID and returns the resulting document.
	// Idempotent: repeating the same request yields the same final state.
	Upsert(ctx context.Context, userID primitive.ObjectID, fields Fields) (*models.Profile, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	// Replace persists a full document after a sub-list mutation.
	Replace(ctx context.Context, profile *models.Profile) error
	// DeleteByUser removes the profile; missing profiles are not an error.
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}
