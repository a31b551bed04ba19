package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/profile/models"
	dErrors "devconnect/pkg/domain-errors"
	"devconnect/pkg/sentinel"
)

// ExperienceInput is a new entry for the experience list.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// EducationInput is a new entry for the education list.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// AddExperience prepends a new entry so the most recent addition appears
// first, independent of caller-supplied ordering.
func (s *Service) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*models.Profile, error) {
	return s.mutate(ctx, userID, func(profile *models.Profile) {
		entry := models.Experience{
			ID:          primitive.NewObjectID(),
			Title:       in.Title,
			Company:     in.Company,
			Location:    in.Location,
			From:        in.From,
			To:          in.To,
			Current:     in.Current,
			Description: in.Description,
		}
		profile.Experience = append([]models.Experience{entry}, profile.Experience...)
	})
}

// RemoveExperience filters the entry with the given id out of the list. A
// missing id is a no-op, not an error: removal is idempotent by construction.
func (s *Service) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.mutate(ctx, userID, func(profile *models.Profile) {
		kept := make([]models.Experience, 0, len(profile.Experience))
		for _, entry := range profile.Experience {
			if entry.ID.Hex() != entryID {
				kept = append(kept, entry)
			}
		}
		profile.Experience = kept
	})
}

// AddEducation prepends a new entry, mirroring AddExperience.
func (s *Service) AddEducation(ctx context.Context, userID string, in EducationInput) (*models.Profile, error) {
	return s.mutate(ctx, userID, func(profile *models.Profile) {
		entry := models.Education{
			ID:           primitive.NewObjectID(),
			School:       in.School,
			Degree:       in.Degree,
			FieldOfStudy: in.FieldOfStudy,
			From:         in.From,
			To:           in.To,
			Current:      in.Current,
			Description:  in.Description,
		}
		profile.Education = append([]models.Education{entry}, profile.Education...)
	})
}

// RemoveEducation filters by entry id with the same no-op semantics as
// RemoveExperience.
func (s *Service) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	return s.mutate(ctx, userID, func(profile *models.Profile) {
		kept := make([]models.Education, 0, len(profile.Education))
		for _, entry := range profile.Education {
			if entry.ID.Hex() != entryID {
				kept = append(kept, entry)
			}
		}
		profile.Education = kept
	})
}

// mutate loads the caller's profile, applies fn, and persists the result.
// There is no locking between the read and the write; concurrent mutations of
// the same profile are an accepted race.
func (s *Service) mutate(ctx context.Context, userID string, fn func(*models.Profile)) (*models.Profile, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUser(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "There is no profile for this user")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load profile")
	}

	fn(profile)

	if err := s.profiles.Replace(ctx, profile); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save profile")
	}
	s.populate(ctx, profile)
	return profile, nil
}
