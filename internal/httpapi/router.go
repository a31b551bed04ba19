// Package httpapi wires the route table. Handlers stay thin; business logic
// lives in the per-context service packages.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devconnect/internal/platform/middleware"
)

// Routable is a bounded-context handler that mounts its own routes.
type Routable interface {
	Register(r chi.Router, requireAuth func(http.Handler) http.Handler)
}

// Deps collects everything the router needs from main.
type Deps struct {
	Logger    *slog.Logger
	Verifier  middleware.TokenVerifier
	Users     Routable
	Profiles  Routable
	Posts     Routable
	PublicDir string
}

// NewRouter builds the full route table: the three API contexts, the metrics
// endpoint, the greeting, and static assets under /public/.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(d.Logger))

	requireAuth := middleware.RequireAuth(d.Verifier, d.Logger)
	d.Users.Register(r, requireAuth)
	d.Profiles.Register(r, requireAuth)
	d.Posts.Register(r, requireAuth)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Hello from devconnect server"))
	})

	if d.PublicDir != "" {
		fs := http.StripPrefix("/public/", http.FileServer(http.Dir(d.PublicDir)))
		r.Handle("/public/*", fs)
	}

	return r
}
