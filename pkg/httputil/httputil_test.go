package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "devconnect/pkg/domain-errors"
	"devconnect/pkg/validation"
)

func TestWriteMsg(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMsg(rec, http.StatusNotFound, "Post not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"msg":"Post not found"}`, rec.Body.String())
}

func TestWriteViolations(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteViolations(rec, []validation.Violation{
		{Param: "name", Msg: "Name is required"},
		{Param: "email", Msg: "Please include a valid email"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []validation.Violation `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "name", resp.Errors[0].Param)
}

func TestWriteError(t *testing.T) {
	t.Run("coded errors surface their message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, nil, dErrors.New(dErrors.CodeConflict, "Post already liked"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"msg":"Post already liked"}`, rec.Body.String())
	})

	t.Run("internal causes are hidden from the client", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, nil, errors.New("dial tcp: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"msg":"Server Error"}`, rec.Body.String())
	})
}

func TestWriteErrorList(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorList(rec, nil, dErrors.New(dErrors.CodeConflict, "User already exists"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"User already exists"}]}`, rec.Body.String())
}
