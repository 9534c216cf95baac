package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"storefront/internal/storage"

	"github.com/gabriel-vasile/mimetype"
)

// ImageService names, stores and serves uploaded images.
type ImageService struct {
	store storage.BlobStore
	now   func() time.Time
}

// NewImageService creates a new ImageService on top of a blob store.
func NewImageService(store storage.BlobStore) *ImageService {
	return &ImageService{
		store: store,
		now:   time.Now,
	}
}

// Upload stores the content under a generated name and returns that name.
// When the declared content type is missing or generic it is sniffed from
// the content.
func (s *ImageService) Upload(ctx context.Context, field, filename, contentType string, r io.ReadSeeker, size int64) (string, error) {
	if contentType == "" || contentType == "application/octet-stream" {
		mtype, err := mimetype.DetectReader(r)
		if err != nil {
			return "", fmt.Errorf("failed to detect content type: %w", err)
		}
		contentType = mtype.String()
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("failed to rewind upload: %w", err)
		}
	}

	name := storage.GenerateName(field, filename, s.now())
	if err := s.store.Put(ctx, name, contentType, r, size); err != nil {
		return "", err
	}
	return name, nil
}

// Open returns the named image. Stored objects that are not images are
// reported as ErrNotImage and their body is already closed.
func (s *ImageService) Open(ctx context.Context, name string) (*storage.Object, error) {
	obj, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	if !strings.HasPrefix(obj.ContentType, "image/") {
		obj.Body.Close()
		return nil, ErrNotImage
	}
	return obj, nil
}
