package store

import (
	"context"

	"gallery-sync/feature/gallery/models"
)

// Gateway is the write side used by the reconciler. Lookups return (nil, nil)
// on a miss; failures carry errs.ErrKindStoreUnavailable, and creates that hit
// a unique natural key carry errs.ErrKindRecordConflict.
type Gateway interface {
	FindGalleryByFolder(ctx context.Context, folder string) (*models.Gallery, error)
	CreateGallery(ctx context.Context, g *models.Gallery) error
	// DeleteGallery removes the gallery and every photo under it.
	DeleteGallery(ctx context.Context, id string) error
	ListAllGalleries(ctx context.Context) ([]models.Gallery, error)

	FindUserByHandle(ctx context.Context, handle string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error

	FindPhotoByStorageKey(ctx context.Context, key string) (*models.Photo, error)
	CreatePhoto(ctx context.Context, p *models.Photo) error
	// UpdatePhotoLinkage rewrites only gallery_id and user_tag_id.
	UpdatePhotoLinkage(ctx context.Context, id, galleryID string, userTagID *string) error
}

// Reader serves the read endpoints and the dry-run plan.
type Reader interface {
	FindGalleryByFolder(ctx context.Context, folder string) (*models.Gallery, error)
	ListAllGalleries(ctx context.Context) ([]models.Gallery, error)
	ListPhotosByGallery(ctx context.Context, folder string) ([]models.PhotoView, error)
	ListPhotosByUserHandle(ctx context.Context, handle string) ([]models.PhotoView, error)
	ListUserHandles(ctx context.Context) ([]string, error)
	ListPhotoKeys(ctx context.Context) ([]string, error)
	Counts(ctx context.Context) (Counts, error)
}

// Store is the full gateway implemented by GormStore.
type Store interface {
	Gateway
	Reader
}

// Counts is the number of rows per table.
type Counts struct {
	Galleries int64 `json:"galleries"`
	Users     int64 `json:"users"`
	Photos    int64 `json:"photos"`
}
