package admin

import (
	"context"
	"errors"
	"time"
)

// ErrImageStorageDisabled is returned when object storage is not configured
var ErrImageStorageDisabled = errors.New("image storage is not configured")

// UploadTarget describes where the client should PUT an image
type UploadTarget struct {
	UploadURL string    `json:"upload_url"`
	Method    string    `json:"method"`
	ImageURL  string    `json:"image_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ImageStorage issues upload URLs for product images
type ImageStorage interface {
	// PresignUpload returns a time-limited URL for uploading key
	PresignUpload(ctx context.Context, key, contentType string) (*UploadTarget, error)

	// Delete removes a stored image
	Delete(ctx context.Context, key string) error

	// KeyFromURL returns the key of an image this storage serves, or ""
	KeyFromURL(imageURL string) string
}

// imageExtensions maps accepted upload content types to file extensions
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}
