// Package storage persists uploaded images and serves them back by name.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Get when no object has the requested name.
var ErrNotFound = errors.New("object not found")

// Object is a stored blob opened for reading. Callers must close Body.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// BlobStore persists blobs under caller-chosen names.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader, size int64) error
	Get(ctx context.Context, name string) (*Object, error)
}

// GenerateName builds the stored name of an upload:
// <field>_<unix millis><extension of original>.
func GenerateName(field, original string, now time.Time) string {
	return fmt.Sprintf("%s_%d%s", field, now.UnixMilli(), filepath.Ext(original))
}

// validName rejects names that could escape a directory or bucket prefix.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}
