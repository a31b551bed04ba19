//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/post/models"
	"devconnect/pkg/sentinel"
	"devconnect/pkg/testutil/containers"
)

func TestMongoPostStore(t *testing.T) {
	mc := containers.NewMongoContainer(t)
	ctx := context.Background()

	db := mc.Client.Database("devconnect_test")
	t.Cleanup(func() { _ = mc.Drop(context.Background(), "devconnect_test") })

	store, err := NewMongo(ctx, db)
	require.NoError(t, err)

	author := primitive.NewObjectID()
	older := &models.Post{User: author, Name: "Ada", Text: "older", Date: time.Now().Add(-time.Hour), Likes: []models.Like{}, Comments: []models.Comment{}}
	newer := &models.Post{User: author, Name: "Ada", Text: "newer", Date: time.Now(), Likes: []models.Like{}, Comments: []models.Comment{}}
	require.NoError(t, store.Create(ctx, older))
	require.NoError(t, store.Create(ctx, newer))

	t.Run("list is newest first", func(t *testing.T) {
		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "newer", all[0].Text)
		assert.Equal(t, "older", all[1].Text)
	})

	t.Run("replace persists list mutations", func(t *testing.T) {
		post, err := store.FindByID(ctx, newer.ID)
		require.NoError(t, err)
		post.Likes = append(post.Likes, models.Like{User: primitive.NewObjectID()})
		require.NoError(t, store.Replace(ctx, post))

		reloaded, err := store.FindByID(ctx, newer.ID)
		require.NoError(t, err)
		assert.Len(t, reloaded.Likes, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("delete by author removes everything they wrote", func(t *testing.T) {
		stranger := &models.Post{User: primitive.NewObjectID(), Name: "Grace", Text: "keep", Date: time.Now(), Likes: []models.Like{}, Comments: []models.Comment{}}
		require.NoError(t, store.Create(ctx, stranger))

		require.NoError(t, store.DeleteByAuthor(ctx, author))

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "keep", all[0].Text)
	})
}
