package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/internal/jwttoken"
	"devconnect/internal/platform/middleware"
	poststore "devconnect/internal/post/store"
	"devconnect/internal/profile/service"
	"devconnect/internal/profile/store"
	"devconnect/internal/upload"
	usermodels "devconnect/internal/user/models"
	userstore "devconnect/internal/user/store"
)

type env struct {
	router http.Handler
	token  string
	userID string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	users := userstore.NewMemory()
	profiles := store.NewMemory()
	posts := poststore.NewMemory()
	tokens := jwttoken.NewService("test-signing-key")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	owner := &usermodels.User{Name: "Ada Lovelace", Email: "ada@example.com", Date: time.Now()}
	require.NoError(t, users.Create(context.Background(), owner))
	token, err := tokens.Issue(owner.ID.Hex())
	require.NoError(t, err)

	h := New(service.New(profiles, users, posts), upload.NewSink(t.TempDir()), logger)
	r := chi.NewRouter()
	h.Register(r, middleware.RequireAuth(tokens, logger))

	return &env{router: r, token: token, userID: owner.ID.Hex()}
}

func (e *env) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.TokenHeader, e.token)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *env) upsert(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/profiles/", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	return profile
}

func TestUpsertProfile(t *testing.T) {
	e := newEnv(t)

	profile := e.upsert(t, map[string]any{
		"status":  "Developer",
		"skills":  "Go, MongoDB",
		"website": "example.com",
	})

	assert.Equal(t, "Developer", profile["status"])
	assert.Equal(t, []any{"Go", "MongoDB"}, profile["skills"])
	assert.Equal(t, "https://example.com", profile["website"])

	owner, ok := profile["user"].(map[string]any)
	require.True(t, ok, "response embeds the owner")
	assert.Equal(t, "Ada Lovelace", owner["name"])

	t.Run("missing status and skills rejected", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/profiles/", map[string]any{})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Errors []struct {
				Param string `json:"param"`
			} `json:"errors"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Errors, 2)
	})
}

func TestMine(t *testing.T) {
	e := newEnv(t)

	t.Run("before any upsert", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/profiles/me", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Msg string `json:"msg"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "There is no profile for this user", resp.Msg)
	})

	t.Run("after upsert", func(t *testing.T) {
		e.upsert(t, map[string]any{"status": "Developer", "skills": "Go"})
		rec := e.do(t, http.MethodGet, "/api/profiles/me", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestByUser_Unknown(t *testing.T) {
	e := newEnv(t)

	for _, id := range []string{"not-a-hex-id", "ffffffffffffffffffffffff"} {
		rec := e.do(t, http.MethodGet, "/api/profiles/user/"+id, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Msg string `json:"msg"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "No profile for this user", resp.Msg)
	}
}

func TestExperienceRoutes(t *testing.T) {
	e := newEnv(t)
	e.upsert(t, map[string]any{"status": "Developer", "skills": "Go"})

	rec := e.do(t, http.MethodPut, "/api/profiles/experience", map[string]any{
		"title":   "Engineer",
		"company": "ACME",
		"from":    "2020-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		Experience []struct {
			ID    string `json:"_id"`
			Title string `json:"title"`
		} `json:"experience"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	require.Len(t, profile.Experience, 1)

	t.Run("bad date order rejected", func(t *testing.T) {
		rec := e.do(t, http.MethodPut, "/api/profiles/experience", map[string]any{
			"title":   "Engineer",
			"company": "ACME",
			"from":    "2023-01-01",
			"to":      "2020-01-01",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete returns the updated profile", func(t *testing.T) {
		rec := e.do(t, http.MethodDelete, "/api/profiles/experience/"+profile.Experience[0].ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var after struct {
			Experience []any `json:"experience"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&after))
		assert.Empty(t, after.Experience)
	})
}

func TestUpload(t *testing.T) {
	e := newEnv(t)
	e.upsert(t, map[string]any{"status": "Developer", "skills": "Go"})

	t.Run("no file", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/profiles/upload", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set(middleware.TokenHeader, e.token)
		rec := httptest.NewRecorder()
		e.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Msg string `json:"msg"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "No file uploaded", resp.Msg)
	})

	t.Run("stores under the user id", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("file", "avatar.png")
		require.NoError(t, err)
		_, err = io.WriteString(part, "pixels")
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/profiles/upload", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.Header.Set(middleware.TokenHeader, e.token)
		rec := httptest.NewRecorder()
		e.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var profile struct {
			ProfilePic string `json:"profilepic"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
		assert.Contains(t, profile.ProfilePic, e.userID)
	})
}

func TestDeleteAccount(t *testing.T) {
	e := newEnv(t)
	e.upsert(t, map[string]any{"status": "Developer", "skills": "Go"})

	rec := e.do(t, http.MethodDelete, "/api/profiles/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "User and profile deleted successfully", resp.Msg)
}
