package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnect/internal/post/models"
	"devconnect/pkg/sentinel"
)

// Mongo persists posts in the "posts" collection, indexed on creation date
// for the newest-first listing.
type Mongo struct {
	posts *mongo.Collection
}

func NewMongo(ctx context.Context, db *mongo.Database) (*Mongo, error) {
	posts := db.Collection("posts")

	_, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create posts date index: %w", err)
	}

	return &Mongo{posts: posts}, nil
}

func (s *Mongo) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *Mongo) FindAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (s *Mongo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &post, nil
}

func (s *Mongo) Replace(ctx context.Context, post *models.Post) error {
	result, err := s.posts.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return fmt.Errorf("replace post: %w", err)
	}
	if result.MatchedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Mongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.posts.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *Mongo) DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.posts.DeleteMany(ctx, bson.M{"user": userID}); err != nil {
		return fmt.Errorf("delete posts by author: %w", err)
	}
	return nil
}
