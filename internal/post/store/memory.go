package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/post/models"
	"devconnect/pkg/sentinel"
)

// Memory is the in-memory Store used by unit tests.
type Memory struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]models.Post
}

func NewMemory() *Memory {
	return &Memory{posts: make(map[primitive.ObjectID]models.Post)}
}

func (s *Memory) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *Memory) FindAll(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		all = append(all, post)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	return all, nil
}

func (s *Memory) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &post, nil
}

func (s *Memory) Replace(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *Memory) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *Memory) DeleteByAuthor(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, post := range s.posts {
		if post.User == userID {
			delete(s.posts, id)
		}
	}
	return nil
}
