package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// DefaultChunkSize matches the GridFS default of 255 KiB.
const DefaultChunkSize = 255 * 1024

// DBStore keeps blobs inside the relational store as a metadata row plus
// fixed-size chunks.
type DBStore struct {
	db        *gorm.DB
	chunkSize int
}

// NewDBStore creates a DBStore. A non-positive chunkSize selects DefaultChunkSize.
func NewDBStore(db *gorm.DB, chunkSize int) *DBStore {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &DBStore{db: db, chunkSize: chunkSize}
}

// Put reads r to the end and writes the file and its chunks in one transaction.
func (s *DBStore) Put(ctx context.Context, name, contentType string, r io.Reader, _ int64) error {
	if !validName(name) {
		return fmt.Errorf("invalid object name %q", name)
	}

	file := models.StoredFile{Filename: name, ContentType: contentType, ChunkSize: s.chunkSize}
	buf := make([]byte, s.chunkSize)
	for n := 0; ; n++ {
		read, err := io.ReadFull(r, buf)
		if read > 0 {
			data := make([]byte, read)
			copy(data, buf[:read])
			file.Chunks = append(file.Chunks, models.FileChunk{N: n, Data: data})
			file.Length += int64(read)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read upload %s: %w", name, err)
		}
	}

	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		return fmt.Errorf("failed to store file %s: %w", name, err)
	}
	return nil
}

// Get loads the named file and its chunks.
func (s *DBStore) Get(ctx context.Context, name string) (*Object, error) {
	var file models.StoredFile
	err := s.db.WithContext(ctx).
		Preload("Chunks", func(db *gorm.DB) *gorm.DB { return db.Order("n") }).
		First(&file, "filename = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get file %s: %w", name, err)
	}

	readers := make([]io.Reader, 0, len(file.Chunks))
	for _, c := range file.Chunks {
		readers = append(readers, bytes.NewReader(c.Data))
	}
	return &Object{
		Name:        file.Filename,
		ContentType: file.ContentType,
		Size:        file.Length,
		Body:        io.NopCloser(io.MultiReader(readers...)),
	}, nil
}
