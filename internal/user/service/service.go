package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/internal/jwttoken"
	"devconnect/internal/platform/metrics"
	"devconnect/internal/user/models"
	"devconnect/internal/user/password"
	"devconnect/internal/user/store"
	dErrors "devconnect/pkg/domain-errors"
	"devconnect/pkg/sentinel"
)

// Service owns the credential flows: registration, login, and authenticated
// self-lookup. On success both register and login return only a token, never
// the stored user document.
type Service struct {
	users   store.Store
	tokens  *jwttoken.Service
	metrics *metrics.Metrics
}

func New(users store.Store, tokens *jwttoken.Service, m *metrics.Metrics) *Service {
	return &Service{users: users, tokens: tokens, metrics: m}
}

// Register creates an account with a bcrypt-hashed password and issues a
// token. The plaintext password is never persisted or logged.
func (s *Service) Register(ctx context.Context, name, email, plaintext string) (string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", dErrors.New(dErrors.CodeConflict, "User already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not check email")
	}

	hashed, err := password.Hash(plaintext)
	if err != nil {
		return "", err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Date:     time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique email index closes the race between the existence
		// check above and the insert.
		if errors.Is(err, sentinel.ErrDuplicate) {
			return "", dErrors.New(dErrors.CodeConflict, "User already exists")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not create user")
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}

	s.metrics.IncUsersRegistered()
	return token, nil
}

// Login verifies credentials and issues a token. An unknown email and a wrong
// password produce distinct messages, matching the API contract.
func (s *Service) Login(ctx context.Context, email, plaintext string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeBadRequest, "User not registered. Please sign up first.")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not look up user")
	}

	if err := password.Verify(plaintext, user.Password); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}

	s.metrics.IncLogins()
	return token, nil
}

// Get returns the authenticated user's document, sans password by virtue of
// the model's serialization rules.
func (s *Service) Get(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not load user")
	}
	return user, nil
}
