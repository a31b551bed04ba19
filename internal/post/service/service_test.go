package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/internal/post/store"
	usermodels "devconnect/internal/user/models"
	userstore "devconnect/internal/user/store"
	dErrors "devconnect/pkg/domain-errors"
)

type fixture struct {
	svc    *Service
	posts  *store.Memory
	author *usermodels.User
	other  *usermodels.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	posts := store.NewMemory()
	users := userstore.NewMemory()

	author := &usermodels.User{Name: "Ada Lovelace", Email: "ada@example.com", Date: time.Now()}
	other := &usermodels.User{Name: "Grace Hopper", Email: "grace@example.com", Date: time.Now()}
	require.NoError(t, users.Create(context.Background(), author))
	require.NoError(t, users.Create(context.Background(), other))

	return &fixture{svc: New(posts, users, nil), posts: posts, author: author, other: other}
}

func TestCreate_SnapshotsAuthorName(t *testing.T) {
	f := newFixture(t)

	post, err := f.svc.Create(context.Background(), f.author.ID.Hex(), "first post", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", post.Name)
	assert.Equal(t, f.author.ID, post.User)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)
}

func TestAll_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older, err := f.svc.Create(ctx, f.author.ID.Hex(), "older", "")
	require.NoError(t, err)
	older.Date = time.Now().Add(-time.Hour)
	require.NoError(t, f.posts.Replace(ctx, older))

	newer, err := f.svc.Create(ctx, f.author.ID.Hex(), "newer", "")
	require.NoError(t, err)

	all, err := f.svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)
}

func TestGet_MissingAndMalformed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, id := range []string{"not-a-hex-id", "ffffffffffffffffffffffff"} {
		_, err := f.svc.Get(ctx, id)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Equal(t, "Post not found", dErrors.Message(err))
	}
}

func TestLike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.author.ID.Hex(), "like me", "")
	require.NoError(t, err)

	likes, err := f.svc.Like(ctx, f.other.ID.Hex(), post.ID.Hex())
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.other.ID, likes[0].User)

	t.Run("second like from the same user conflicts", func(t *testing.T) {
		_, err := f.svc.Like(ctx, f.other.ID.Hex(), post.ID.Hex())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Equal(t, "Post already liked", dErrors.Message(err))

		stored, err := f.svc.Get(ctx, post.ID.Hex())
		require.NoError(t, err)
		assert.Len(t, stored.Likes, 1, "a rejected like must not change the list")
	})

	t.Run("newest like sits at index 0", func(t *testing.T) {
		likes, err := f.svc.Like(ctx, f.author.ID.Hex(), post.ID.Hex())
		require.NoError(t, err)
		require.Len(t, likes, 2)
		assert.Equal(t, f.author.ID, likes[0].User)
	})
}

func TestUnlike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.author.ID.Hex(), "unlike me", "")
	require.NoError(t, err)

	t.Run("unliking a post never liked conflicts", func(t *testing.T) {
		_, err := f.svc.Unlike(ctx, f.other.ID.Hex(), post.ID.Hex())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Equal(t, "Post has not yet been liked", dErrors.Message(err))
	})

	t.Run("removes exactly the caller's like", func(t *testing.T) {
		_, err := f.svc.Like(ctx, f.author.ID.Hex(), post.ID.Hex())
		require.NoError(t, err)
		_, err = f.svc.Like(ctx, f.other.ID.Hex(), post.ID.Hex())
		require.NoError(t, err)

		likes, err := f.svc.Unlike(ctx, f.other.ID.Hex(), post.ID.Hex())
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.Equal(t, f.author.ID, likes[0].User)
	})
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.author.ID.Hex(), "discuss", "")
	require.NoError(t, err)

	first, err := f.svc.AddComment(ctx, f.other.ID.Hex(), post.ID.Hex(), "first!")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Grace Hopper", first[0].Name)

	comments, err := f.svc.AddComment(ctx, f.author.ID.Hex(), post.ID.Hex(), "thanks")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "thanks", comments[0].Text, "newest comment sits at index 0")

	commentID := first[0].ID.Hex()

	t.Run("post author cannot remove another user's comment", func(t *testing.T) {
		_, err := f.svc.RemoveComment(ctx, f.author.ID.Hex(), post.ID.Hex(), commentID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Equal(t, "User not authorized", dErrors.Message(err))
	})

	t.Run("unknown comment reads as absent before ownership", func(t *testing.T) {
		_, err := f.svc.RemoveComment(ctx, f.author.ID.Hex(), post.ID.Hex(), "ffffffffffffffffffffffff")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Equal(t, "Comment not found", dErrors.Message(err))
	})

	t.Run("commenter removes their own comment", func(t *testing.T) {
		remaining, err := f.svc.RemoveComment(ctx, f.other.ID.Hex(), post.ID.Hex(), commentID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "thanks", remaining[0].Text)
	})
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.author.ID.Hex(), "mine", "")
	require.NoError(t, err)

	t.Run("non-author is rejected", func(t *testing.T) {
		err := f.svc.Delete(ctx, f.other.ID.Hex(), post.ID.Hex())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		assert.Equal(t, "User not authorized", dErrors.Message(err))
	})

	t.Run("missing post reads as absent before ownership", func(t *testing.T) {
		err := f.svc.Delete(ctx, f.other.ID.Hex(), "ffffffffffffffffffffffff")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("author deletes", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, f.author.ID.Hex(), post.ID.Hex()))
		_, err := f.svc.Get(ctx, post.ID.Hex())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
