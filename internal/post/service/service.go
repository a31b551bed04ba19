package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/platform/metrics"
	"devconnect/internal/post/models"
	"devconnect/internal/post/store"
	userstore "devconnect/internal/user/store"
	dErrors "devconnect/pkg/domain-errors"
	"devconnect/pkg/sentinel"
)

// Service owns the post aggregate: creation with the author name snapshot,
// newest-first listing, likes, comments, and author-only deletion.
type Service struct {
	posts   store.Store
	users   userstore.Store
	metrics *metrics.Metrics
}

func New(posts store.Store, users userstore.Store, m *metrics.Metrics) *Service {
	return &Service{posts: posts, users: users, metrics: m}
}

// Create stores a new post. The author's display name is snapshotted from the
// user document at creation and never synced afterwards.
func (s *Service) Create(ctx context.Context, userID, text, picPath string) (*models.Post, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load user")
	}

	post := &models.Post{
		User:     id,
		Name:     user.Name,
		Text:     text,
		Pic:      picPath,
		Date:     time.Now(),
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create post")
	}

	s.metrics.IncPostsCreated()
	return post, nil
}

// All returns every post, newest first.
func (s *Service) All(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list posts")
	}
	return posts, nil
}

// Get returns one post by id. Malformed and unknown ids both read as absent.
func (s *Service) Get(ctx context.Context, postID string) (*models.Post, error) {
	return s.find(ctx, postID)
}

// Like prepends a like for the user. A second like from the same user is a
// conflict, not a silent no-op, which distinguishes it from unlike.
func (s *Service) Like(ctx context.Context, userID, postID string) ([]models.Like, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(uid) {
		return nil, dErrors.New(dErrors.CodeConflict, "Post already liked")
	}

	post.Likes = append([]models.Like{{User: uid}}, post.Likes...)
	if err := s.posts.Replace(ctx, post); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save post")
	}

	s.metrics.IncLikesRecorded()
	return post.Likes, nil
}

// Unlike removes the user's like. Unliking a post never liked is a conflict.
func (s *Service) Unlike(ctx context.Context, userID, postID string) ([]models.Like, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.LikedBy(uid) {
		return nil, dErrors.New(dErrors.CodeConflict, "Post has not yet been liked")
	}

	kept := make([]models.Like, 0, len(post.Likes))
	for _, like := range post.Likes {
		if like.User != uid {
			kept = append(kept, like)
		}
	}
	post.Likes = kept

	if err := s.posts.Replace(ctx, post); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save post")
	}
	return post.Likes, nil
}

// AddComment prepends a comment from any authenticated user, snapshotting the
// commenter's display name.
func (s *Service) AddComment(ctx context.Context, userID, postID, text string) ([]models.Comment, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load user")
	}

	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:   primitive.NewObjectID(),
		User: uid,
		Name: user.Name,
		Text: text,
		Date: time.Now(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := s.posts.Replace(ctx, post); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save post")
	}

	s.metrics.IncCommentsAdded()
	return post.Comments, nil
}

// RemoveComment deletes a comment. Only the commenter may remove it; the post
// author gets the same authorization error as anyone else. Existence is
// checked before ownership.
func (s *Service) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]models.Comment, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	post, err := s.find(ctx, postID)
	if err != nil {
		return nil, err
	}

	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID.Hex() == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "Comment not found")
	}
	if target.User != uid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "User not authorized")
	}

	kept := make([]models.Comment, 0, len(post.Comments))
	for _, comment := range post.Comments {
		if comment.ID.Hex() != commentID {
			kept = append(kept, comment)
		}
	}
	post.Comments = kept

	if err := s.posts.Replace(ctx, post); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save post")
	}
	return post.Comments, nil
}

// Delete removes a post. Only its author may delete it; existence is checked
// before ownership so non-owners never see a 404/401 ambiguity.
func (s *Service) Delete(ctx context.Context, userID, postID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	post, err := s.find(ctx, postID)
	if err != nil {
		return err
	}

	if post.User != uid {
		return dErrors.New(dErrors.CodeUnauthorized, "User not authorized")
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete post")
	}
	return nil
}

func (s *Service) find(ctx context.Context, postID string) (*models.Post, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "Post not found")
	}
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Post not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load post")
	}
	return post, nil
}

func parseUserID(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, dErrors.New(dErrors.CodeUnauthorized, "Token is not valid")
	}
	return id, nil
}
