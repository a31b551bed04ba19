package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"devconnect/internal/platform/middleware"
	"devconnect/internal/post/service"
	"devconnect/internal/upload"
	"devconnect/pkg/httputil"
)

// Handler is the thin HTTP layer over the post service. Every route requires
// auth.
type Handler struct {
	svc    *service.Service
	sink   *upload.Sink
	logger *slog.Logger
}

func New(svc *service.Service, sink *upload.Sink, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, sink: sink, logger: logger}
}

func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/posts", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleAll)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
		r.Put("/like/{id}", h.handleLike)
		r.Put("/unlike/{id}", h.handleUnlike)
		r.Post("/comment/{id}", h.handleAddComment)
		r.Delete("/comment/{post_id}/{comment_id}", h.handleRemoveComment)
	})
}

// handleCreate accepts either a JSON body or a multipart form with the text
// field plus an optional single image.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreatePostRequest
	var picPath string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		path, err := h.sink.SaveStamped(r, "image", userID)
		if err != nil && !errors.Is(err, upload.ErrNoFile) {
			h.logger.Error("post image upload failed", "error", err)
			httputil.WriteMsg(w, http.StatusInternalServerError, "Server Error")
			return
		}
		picPath = path
		req.Text = r.FormValue("text")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	if violations := req.Validate(); len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	post, err := h.svc.Create(r.Context(), userID, req.Text, picPath)
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.All(r.Context())
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.Like(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, likes)
}

func (h *Handler) handleUnlike(w http.ResponseWriter, r *http.Request) {
	likes, err := h.svc.Unlike(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, likes)
}

func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if violations := req.Validate(); len(violations) > 0 {
		httputil.WriteViolations(w, violations)
		return
	}

	comments, err := h.svc.AddComment(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"), req.Text)
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, comments)
}

func (h *Handler) handleRemoveComment(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.RemoveComment(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "post_id"),
		chi.URLParam(r, "comment_id"),
	)
	if err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, comments)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, h.logger, err)
		return
	}
	httputil.WriteMsg(w, http.StatusOK, "Post removed")
}
