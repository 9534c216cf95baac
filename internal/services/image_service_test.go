package services_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"storefront/internal/services"
	"storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0x42}, 64)...)

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestImageService_UploadKeepsDeclaredType(t *testing.T) {
	store := new(MockBlobStore)
	service := services.NewImageService(store)

	store.On("Put", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "product_") && strings.HasSuffix(name, ".png")
	}), "image/png", mock.Anything, int64(len(pngBytes))).Return(nil).Once()

	name, err := service.Upload(context.Background(), "product", "photo.png", "image/png", bytes.NewReader(pngBytes), int64(len(pngBytes)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
	store.AssertExpectations(t)
}

func TestImageService_UploadSniffsGenericType(t *testing.T) {
	store := new(MockBlobStore)
	service := services.NewImageService(store)

	var stored []byte
	store.On("Put", mock.Anything, mock.Anything, "image/png", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored, _ = io.ReadAll(args.Get(3).(io.Reader))
	}).Return(nil).Once()

	_, err := service.Upload(context.Background(), "product", "photo", "application/octet-stream", bytes.NewReader(pngBytes), int64(len(pngBytes)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, stored, "sniffing must not consume the upload")
	store.AssertExpectations(t)
}

func TestImageService_Open(t *testing.T) {
	store := new(MockBlobStore)
	service := services.NewImageService(store)
	ctx := context.Background()

	img := &storage.Object{Name: "a.png", ContentType: "image/png", Body: io.NopCloser(bytes.NewReader(pngBytes))}
	store.On("Get", ctx, "a.png").Return(img, nil).Once()
	obj, err := service.Open(ctx, "a.png")
	require.NoError(t, err)
	assert.Same(t, img, obj)

	text := &closeTracker{Reader: strings.NewReader("hi")}
	store.On("Get", ctx, "a.txt").Return(&storage.Object{Name: "a.txt", ContentType: "text/plain", Body: text}, nil).Once()
	_, err = service.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, services.ErrNotImage)
	assert.True(t, text.closed)

	store.On("Get", ctx, "missing.png").Return(nil, storage.ErrNotFound).Once()
	_, err = service.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, services.ErrImageNotFound)
	store.AssertExpectations(t)
}
