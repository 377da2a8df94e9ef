package store

import (
	"context"

	"gallery-sync/core/errs"
	"gallery-sync/feature/gallery/models"
)

type unavailable struct {
	err error
}

// Unavailable returns a Store whose every call fails with
// errs.ErrKindStoreUnavailable. The server runs on it when the database could
// not be reached at startup so reads degrade to storage.
func Unavailable() Store {
	return unavailable{err: errs.New(errs.ErrKindStoreUnavailable, "database not connected")}
}

func (u unavailable) FindGalleryByFolder(context.Context, string) (*models.Gallery, error) {
	return nil, u.err
}
func (u unavailable) CreateGallery(context.Context, *models.Gallery) error { return u.err }
func (u unavailable) DeleteGallery(context.Context, string) error          { return u.err }
func (u unavailable) ListAllGalleries(context.Context) ([]models.Gallery, error) {
	return nil, u.err
}
func (u unavailable) FindUserByHandle(context.Context, string) (*models.User, error) {
	return nil, u.err
}
func (u unavailable) CreateUser(context.Context, *models.User) error { return u.err }
func (u unavailable) FindPhotoByStorageKey(context.Context, string) (*models.Photo, error) {
	return nil, u.err
}
func (u unavailable) CreatePhoto(context.Context, *models.Photo) error { return u.err }
func (u unavailable) UpdatePhotoLinkage(context.Context, string, string, *string) error {
	return u.err
}
func (u unavailable) ListPhotosByGallery(context.Context, string) ([]models.PhotoView, error) {
	return nil, u.err
}
func (u unavailable) ListPhotosByUserHandle(context.Context, string) ([]models.PhotoView, error) {
	return nil, u.err
}
func (u unavailable) ListUserHandles(context.Context) ([]string, error) { return nil, u.err }
func (u unavailable) ListPhotoKeys(context.Context) ([]string, error)   { return nil, u.err }
func (u unavailable) Counts(context.Context) (Counts, error)            { return Counts{}, u.err }
