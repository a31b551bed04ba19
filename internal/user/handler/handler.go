package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devconnect/internal/platform/middleware"
	"devconnect/internal/user/service"
	"devconnect/pkg/httputil"
)

// Handler is the thin HTTP layer over the user service.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the user routes. Registration and login are public; the
// self-lookup requires auth.
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.With(requireAuth).Get("/", h.handleMe)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httputil.WriteErrorList(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteErrorList(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}
