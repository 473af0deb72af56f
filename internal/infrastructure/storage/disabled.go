package storage

import (
	"context"

	adminapp "github.com/storefront/backend/internal/application/admin"
)

// DisabledImageStorage is used when object storage is not configured.
// Uploads fail with adminapp.ErrImageStorageDisabled; admins can still set image URLs directly.
type DisabledImageStorage struct{}

// PresignUpload always fails
func (DisabledImageStorage) PresignUpload(context.Context, string, string) (*adminapp.UploadTarget, error) {
	return nil, adminapp.ErrImageStorageDisabled
}

// Delete is a no-op
func (DisabledImageStorage) Delete(context.Context, string) error {
	return nil
}

// KeyFromURL never recognises a URL
func (DisabledImageStorage) KeyFromURL(string) string {
	return ""
}

var _ adminapp.ImageStorage = DisabledImageStorage{}
