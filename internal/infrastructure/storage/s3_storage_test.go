package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	adminapp "github.com/storefront/backend/internal/application/admin"
	infraconfig "github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, mutate func(*infraconfig.StorageConfig)) *S3ImageStorage {
	t.Helper()
	cfg := &infraconfig.StorageConfig{
		Enabled:           true,
		Endpoint:          "localhost:9000",
		Region:            "us-east-1",
		Bucket:            "product-images",
		AccessKey:         "minioadmin",
		SecretKey:         "minioadmin",
		UsePathStyle:      true,
		PresignExpiration: 10 * time.Minute,
	}
	if mutate != nil {
		mutate(cfg)
	}
	s, err := NewS3ImageStorage(context.Background(), cfg)
	require.NoError(t, err)
	return s
}

func TestNewS3ImageStorage_Validation(t *testing.T) {
	_, err := NewS3ImageStorage(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewS3ImageStorage(context.Background(), &infraconfig.StorageConfig{})
	assert.ErrorContains(t, err, "bucket")
}

func TestS3ImageStorage_PresignUpload(t *testing.T) {
	s := newTestStorage(t, nil)

	target, err := s.PresignUpload(context.Background(), "products/abc/1.png", "image/png")
	require.NoError(t, err)

	u, err := url.Parse(target.UploadURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/product-images/products/abc/1.png", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.Equal(t, "PUT", target.Method)
	assert.Equal(t, "http://localhost:9000/product-images/products/abc/1.png", target.ImageURL)

	_, err = s.PresignUpload(context.Background(), "", "image/png")
	assert.Error(t, err)
}

func TestS3ImageStorage_PublicURLAndKey(t *testing.T) {
	s := newTestStorage(t, func(c *infraconfig.StorageConfig) {
		c.PublicBaseURL = "https://cdn.example.com/"
	})

	imageURL := s.PublicURL("products/p1/photo.jpg")
	assert.Equal(t, "https://cdn.example.com/products/p1/photo.jpg", imageURL)
	assert.Equal(t, "products/p1/photo.jpg", s.KeyFromURL(imageURL))
	assert.Empty(t, s.KeyFromURL("https://elsewhere.example.com/x.jpg"))
}

func TestPublicBase_AWSDefault(t *testing.T) {
	base := publicBase(&infraconfig.StorageConfig{Bucket: "imgs"}, "", "eu-west-1")
	assert.True(t, strings.HasPrefix(base, "https://imgs.s3.eu-west-1"))
}

func TestDisabledImageStorage(t *testing.T) {
	var s adminapp.ImageStorage = DisabledImageStorage{}
	_, err := s.PresignUpload(context.Background(), "k", "image/png")
	assert.ErrorIs(t, err, adminapp.ErrImageStorageDisabled)
	assert.NoError(t, s.Delete(context.Background(), "k"))
}
