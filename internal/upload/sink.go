// Package upload writes a single multipart file per request to a fixed
// directory with a deterministic name. There is no content-type or size
// validation; hardening the sink is an explicit non-goal.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrNoFile reports that the request carried no file under the expected field.
var ErrNoFile = errors.New("no file uploaded")

// maxMemory caps the in-memory portion of multipart parsing; larger bodies
// spill to temp files.
const maxMemory = 32 << 20

// Sink writes uploads into one directory.
type Sink struct {
	dir string
}

func NewSink(dir string) *Sink {
	return &Sink{dir: dir}
}

// SaveAs stores the single file under field at exactly dir/name, overwriting
// any previous file with that name. Used for profile pictures, where the name
// is the owner's user id and re-uploads replace the old picture.
func (s *Sink) SaveAs(r *http.Request, field, name string) (string, error) {
	src, _, err := formFile(r, field)
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.write(src, name)
}

// SaveStamped stores the single file under field at dir/prefix-<unix ms><ext>,
// keeping the original extension. The timestamp component distinguishes
// successive uploads by the same user.
func (s *Sink) SaveStamped(r *http.Request, field, prefix string) (string, error) {
	src, header, err := formFile(r, field)
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := prefix + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + filepath.Ext(header.Filename)
	return s.write(src, name)
}

func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, nil, ErrNoFile
	}
	src, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, ErrNoFile
	}
	return src, header, nil
}

func (s *Sink) write(src io.Reader, name string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}
