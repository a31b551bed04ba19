package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"devconnect/pkg/httputil"
)

// TokenHeader is the fixed header the client presents its bearer token in.
const TokenHeader = "x-auth-token"

// TokenVerifier validates a bearer token and returns the embedded user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type contextKeyUserID struct{}

// ContextKeyUserID is exported for tests that build contexts directly.
var ContextKeyUserID = contextKeyUserID{}

// GetUserID retrieves the authenticated user id from the context.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	if !ok {
		return ""
	}
	return userID
}

// WithUserID injects an authenticated user id, for tests that skip the full
// middleware chain.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// RequireAuth rejects requests without a valid token and attaches the
// authenticated user id to the context for downstream handlers. Failure is
// terminal for the request; the handler is never invoked.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				httputil.WriteMsg(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				httputil.WriteMsg(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
