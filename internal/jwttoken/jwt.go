package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "devconnect/pkg/domain-errors"
)

// TokenTTL is the fixed lifetime of issued tokens. There is no revocation
// list; a leaked token stays valid until natural expiry.
const TokenTTL = 5 * 24 * time.Hour

// UserClaim is the identity embedded in every token.
type UserClaim struct {
	ID string `json:"id"`
}

// Claims carries the authenticated user inside the token payload.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Service signs and verifies access tokens with a process-wide secret.
// Signing and verification share the same key and algorithm; a bad key
// configuration fails every token operation.
type Service struct {
	signingKey []byte
}

func NewService(signingKey string) *Service {
	return &Service{signingKey: []byte(signingKey)}
}

// Issue creates a signed token embedding the user id, valid for TokenTTL.
func (s *Service) Issue(userID string) (string, error) {
	return s.IssueWithTTL(userID, TokenTTL)
}

// IssueWithTTL is Issue with an explicit lifetime, used by expiry tests.
func (s *Service) IssueWithTTL(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: UserClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id. Any
// failure maps to a single unauthorized branch.
func (s *Service) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.User.ID == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token carries no user")
	}

	return claims.User.ID, nil
}
