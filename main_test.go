package main

import (
	"context"
	"path/filepath"
	"testing"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlobStore(t *testing.T) {
	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: "file:mainblobs?mode=memory&cache=shared"})
	require.NoError(t, err)
	defer database.Close(db)
	ctx := context.Background()

	store, err := newBlobStore(ctx, &config.Config{BlobBackend: config.BlobBackendDB}, db)
	require.NoError(t, err)
	assert.IsType(t, &storage.DBStore{}, store)

	dir := filepath.Join(t.TempDir(), "images")
	store, err = newBlobStore(ctx, &config.Config{BlobBackend: config.BlobBackendDisk, UploadDir: dir}, db)
	require.NoError(t, err)
	assert.IsType(t, &storage.DiskStore{}, store)
	assert.DirExists(t, dir)

	_, err = newBlobStore(ctx, &config.Config{BlobBackend: "gridfs"}, db)
	assert.Error(t, err)
}
