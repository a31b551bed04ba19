package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devconnect/internal/platform/middleware"
	"devconnect/internal/profile/service"
	"devconnect/internal/upload"
	"devconnect/pkg/httputil"
)

// Handler is the thin HTTP layer over the profile service. Every route
// requires auth.
type Handler struct {
	svc    *service.Service
	sink   *upload.Sink
	logger *slog.Logger
}

func New(svc *service.Service, sink *upload.Sink, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, sink: sink, logger: logger}
}

func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/profiles", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.handleUpsert)
		r.Get("/", h.handleAll)
		r.Get("/me", h.handleMine)
		r.Get("/user/{user_id}", h.handleByUser)
		r.Delete("/", h.handleDeleteAccount)
		r.Post("/upload", h.handleUpload)
		r.Put("/experience", h.handleAddExperience)
		r.Delete("/experience/{exp_id}", h.handleRemoveExperience)
		r.Put("/education", h.handleAddEducation)
		r.Delete("/education/{edu_id}", h.handleRemoveEducation)
	})
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	profile, err := h.svc.Upsert(r.Context(), middleware.GetUserID(r.Context()), req.Input())
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Mine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.All(r.Context())
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profiles)
}

func (h *Handler) handleByUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.ByUser(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteMsg(w, http.StatusOK, "User and profile deleted successfully")
}

// handleUpload accepts one file under the "file" field. The stored name is
// the caller's user id, so a new upload overwrites the previous picture.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	path, err := h.sink.SaveAs(r, "file", userID)
	if err != nil {
		if errors.Is(err, upload.ErrNoFile) {
			httputil.WriteMsg(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		h.logger.Error("profile upload failed", "error", err)
		httputil.WriteMsg(w, http.StatusInternalServerError, "Server Error")
		return
	}

	profile, err := h.svc.SetPicture(r.Context(), userID, path)
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	profile, err := h.svc.AddExperience(r.Context(), middleware.GetUserID(r.Context()), req.Input())
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.RemoveExperience(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "exp_id"))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var req EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	profile, err := h.svc.AddEducation(r.Context(), middleware.GetUserID(r.Context()), req.Input())
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.RemoveEducation(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "edu_id"))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}
