package upload

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSaveAs_Overwrites(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir)

	path, err := sink.SaveAs(multipartRequest(t, "file", "avatar.png", "first"), "file", "user123")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "user123"), path)

	// A second upload under the same name replaces the first.
	path2, err := sink.SaveAs(multipartRequest(t, "file", "other.png", "second"), "file", "user123")
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSaveStamped_NamesWithTimestampAndExtension(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir)

	path, err := sink.SaveStamped(multipartRequest(t, "image", "photo.jpg", "pixels"), "image", "user123")
	require.NoError(t, err)

	name := filepath.Base(path)
	assert.Regexp(t, regexp.MustCompile(`^user123-\d+\.jpg$`), name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestSink_MissingFile(t *testing.T) {
	sink := NewSink(t.TempDir())

	t.Run("wrong field name", func(t *testing.T) {
		_, err := sink.SaveAs(multipartRequest(t, "unrelated", "a.png", "x"), "file", "user123")
		assert.ErrorIs(t, err, ErrNoFile)
	})

	t.Run("non-multipart body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		_, err := sink.SaveAs(req, "file", "user123")
		assert.ErrorIs(t, err, ErrNoFile)
	})
}
