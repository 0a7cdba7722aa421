package storage_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonstyle/salon-backend/internal/config"
	"github.com/ceylonstyle/salon-backend/internal/storage"
)

func TestNewObjectKeyKeepsExtension(t *testing.T) {
	key := storage.NewObjectKey("uploads", "selfie.JPG")

	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".JPG"))
}

func TestNewObjectKeyUnique(t *testing.T) {
	a := storage.NewObjectKey("uploads", "a.png")
	b := storage.NewObjectKey("uploads", "a.png")
	assert.NotEqual(t, a, b)
}

// Presigning signs locally, so these run without a bucket.

func newTestClient(t *testing.T) *storage.Client {
	t.Helper()

	client, err := storage.New(&config.Config{
		S3Region:    "ap-south-1",
		S3Bucket:    "salon-media-test",
		S3AccessKey: "test",
		S3SecretKey: "test",
	})
	require.NoError(t, err)
	return client
}

func TestPresignUploadSignsKey(t *testing.T) {
	client := newTestClient(t)

	url, err := client.PresignUpload(context.Background(), "uploads/abc.jpg")

	require.NoError(t, err)
	assert.Contains(t, url, "uploads/abc.jpg")
	assert.Contains(t, url, "X-Amz-Signature")
}

func TestPresignGetExpiry(t *testing.T) {
	client := newTestClient(t)

	url, err := client.PresignGet(context.Background(), "uploads/abc.jpg", 15*time.Minute)

	require.NoError(t, err)
	assert.Contains(t, url, "uploads/abc.jpg")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
