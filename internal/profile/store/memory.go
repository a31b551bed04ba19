package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/profile/models"
	"devconnect/pkg/sentinel"
)

// Memory is the in-memory Store used by unit tests. Keying the map by user id
// enforces the one-profile-per-user invariant the mongo implementation gets
// from its unique index.
type Memory struct {
	mu       sync.RWMutex
	profiles map[primitive.ObjectID]models.Profile
}

func NewMemory() *Memory {
	return &Memory{profiles: make(map[primitive.ObjectID]models.Profile)}
}

func (s *Memory) Upsert(_ context.Context, userID primitive.ObjectID, fields Fields) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		profile = models.Profile{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			Date:       time.Now(),
		}
	}
	applyFields(&profile, fields)
	s.profiles[userID] = profile
	return &profile, nil
}

func applyFields(profile *models.Profile, fields Fields) {
	profile.Company = fields.Company
	profile.Website = fields.Website
	profile.Location = fields.Location
	profile.Status = fields.Status
	profile.Skills = fields.Skills
	profile.Bio = fields.Bio
	profile.GithubUsername = fields.GithubUsername
	profile.Social = fields.Social
}

func (s *Memory) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &profile, nil
}

func (s *Memory) FindAll(_ context.Context) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		all = append(all, profile)
	}
	return all, nil
}

func (s *Memory) Replace(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.UserID]; !ok {
		return sentinel.ErrNotFound
	}
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *Memory) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}
