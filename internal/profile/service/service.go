package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"devconnect/internal/profile/models"
	"devconnect/internal/profile/store"
	userstore "devconnect/internal/user/store"
	dErrors "devconnect/pkg/domain-errors"
	"devconnect/pkg/sentinel"
	"devconnect/pkg/urlnorm"
)

// PostPurger deletes every post authored by a user, for the account deletion
// cascade.
type PostPurger interface {
	DeleteByAuthor(ctx context.Context, userID primitive.ObjectID) error
}

// Service owns the profile aggregate: the idempotent upsert, reads with owner
// denormalization, the experience/education sub-lists, and the account
// deletion cascade.
type Service struct {
	profiles store.Store
	users    userstore.Store
	posts    PostPurger
}

func New(profiles store.Store, users userstore.Store, posts PostPurger) *Service {
	return &Service{profiles: profiles, users: users, posts: posts}
}

// UpsertInput carries the caller-settable profile fields. Skills arrive
// already normalized to a trimmed list by the handler.
type UpsertInput struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
	Github         string
}

// Upsert creates or updates the caller's one profile. The website and each
// present social link are canonicalized to https form first, so repeated
// submissions store byte-identical values.
func (s *Service) Upsert(ctx context.Context, userID string, in UpsertInput) (*models.Profile, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	website, err := canonical("website", in.Website)
	if err != nil {
		return nil, err
	}

	social := models.Social{}
	for _, link := range []struct {
		name string
		raw  string
		dst  *string
	}{
		{"youtube", in.Youtube, &social.Youtube},
		{"twitter", in.Twitter, &social.Twitter},
		{"facebook", in.Facebook, &social.Facebook},
		{"linkedin", in.Linkedin, &social.Linkedin},
		{"instagram", in.Instagram, &social.Instagram},
		{"github", in.Github, &social.Github},
	} {
		normalized, err := canonical(link.name, link.raw)
		if err != nil {
			return nil, err
		}
		*link.dst = normalized
	}

	fields := store.Fields{
		Company:        in.Company,
		Website:        website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         in.Skills,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social:         social,
	}

	profile, err := s.profiles.Upsert(ctx, id, fields)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save profile")
	}
	s.populate(ctx, profile)
	return profile, nil
}

func canonical(field, raw string) (string, error) {
	normalized, err := urlnorm.Canonicalize(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "Invalid URL for "+field)
	}
	return normalized, nil
}

// Mine returns the caller's profile with the owner's name denormalized in.
func (s *Service) Mine(ctx context.Context, userID string) (*models.Profile, error) {
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
	s.populate(ctx, profile)
	return profile, nil
}

// All returns every profile, each with its owner's name denormalized in.
func (s *Service) All(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profiles.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list profiles")
	}
	for i := range profiles {
		s.populate(ctx, &profiles[i])
	}
	return profiles, nil
}

// ByUser returns the profile owned by the given user id.
func (s *Service) ByUser(ctx context.Context, userID string) (*models.Profile, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "No profile for this user")
	}
	profile, err := s.profiles.FindByUser(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "No profile for this user")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load profile")
	}
	s.populate(ctx, profile)
	return profile, nil
}

// SetPicture records the stored picture path on the caller's profile.
func (s *Service) SetPicture(ctx context.Context, userID, path string) (*models.Profile, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.FindByUser(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load profile")
	}

	profile.ProfilePic = path
	if err := s.profiles.Replace(ctx, profile); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not save profile")
	}
	s.populate(ctx, profile)
	return profile, nil
}

// DeleteAccount removes the caller's posts, profile, and user document as one
// best-effort cascade. The deletes run concurrently and independently; there
// is no compensating rollback if one fails. Likes and comments left by the
// user on other users' posts are not touched.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.posts.DeleteByAuthor(ctx, id) })
	g.Go(func() error { return s.profiles.DeleteByUser(ctx, id) })
	g.Go(func() error { return s.users.Delete(ctx, id) })

	if err := g.Wait(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not delete account")
	}
	return nil
}

// populate attaches the owner's display name. A missing user (a dangling
// reference after partial deletion) leaves the view field empty rather than
// failing the read.
func (s *Service) populate(ctx context.Context, profile *models.Profile) {
	user, err := s.users.FindByID(ctx, profile.UserID)
	if err != nil {
		return
	}
	profile.User = &models.Owner{ID: user.ID, Name: user.Name}
}

func parseUserID(userID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, dErrors.New(dErrors.CodeUnauthorized, "Token is not valid")
	}
	return id, nil
}
