package storage

import (
	"context"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// UnconfiguredStorage is used when no bucket credentials are set.
// Every call fails with catalogapp.ErrStorageNotConfigured.
type UnconfiguredStorage struct{}

var _ catalogapp.ImageStorage = UnconfiguredStorage{}

// Upload always fails
func (UnconfiguredStorage) Upload(context.Context, string, []byte, string) (string, error) {
	return "", catalogapp.ErrStorageNotConfigured
}

// Delete always fails
func (UnconfiguredStorage) Delete(context.Context, string) error {
	return catalogapp.ErrStorageNotConfigured
}

// KeyFromURL never recognises a URL
func (UnconfiguredStorage) KeyFromURL(string) (string, bool) {
	return "", false
}
