package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnect/internal/profile/models"
	"devconnect/pkg/sentinel"
)

// Mongo persists profiles in the "profiles" collection. The unique index on
// the user reference makes concurrent upserts for the same user converge on a
// single document.
type Mongo struct {
	profiles *mongo.Collection
}

func NewMongo(ctx context.Context, db *mongo.Database) (*Mongo, error) {
	profiles := db.Collection("profiles")

	_, err := profiles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create profiles user index: %w", err)
	}

	return &Mongo{profiles: profiles}, nil
}

func (s *Mongo) Upsert(ctx context.Context, userID primitive.ObjectID, fields Fields) (*models.Profile, error) {
	update := bson.M{
		"$set": bson.M{
			"company":        fields.Company,
			"website":        fields.Website,
			"location":       fields.Location,
			"status":         fields.Status,
			"skills":         fields.Skills,
			"bio":            fields.Bio,
			"githubusername": fields.GithubUsername,
			"social":         fields.Social,
		},
		"$setOnInsert": bson.M{
			"experience": []models.Experience{},
			"education":  []models.Education{},
			"date":       time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	err := s.profiles.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return &profile, nil
}

func (s *Mongo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	err := s.profiles.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

func (s *Mongo) FindAll(ctx context.Context) ([]models.Profile, error) {
	cursor, err := s.profiles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	profiles := []models.Profile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

func (s *Mongo) Replace(ctx context.Context, profile *models.Profile) error {
	result, err := s.profiles.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Mongo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.profiles.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
