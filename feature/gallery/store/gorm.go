package store

import (
	"context"
	"errors"

	"gallery-sync/core/errs"
	"gallery-sync/feature/gallery/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements Store on GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps db. The connection should be opened with TranslateError so
// duplicate keys are recognised.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindGalleryByFolder returns the gallery with folder, or nil when none exists.
func (s *GormStore) FindGalleryByFolder(ctx context.Context, folder string) (*models.Gallery, error) {
	var g models.Gallery
	if err := s.db.WithContext(ctx).Where("folder_name = ?", folder).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError(err, "find gallery "+folder)
	}
	return &g, nil
}

// CreateGallery inserts g, assigning an ID when it has none.
func (s *GormStore) CreateGallery(ctx context.Context, g *models.Gallery) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return mapError(err, "create gallery "+g.FolderName)
	}
	return nil
}

// DeleteGallery removes the gallery and its photos in one transaction.
func (s *GormStore) DeleteGallery(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Gallery{}).Error
	})
	if err != nil {
		return mapError(err, "delete gallery "+id)
	}
	return nil
}

// ListAllGalleries returns every gallery, newest event first.
func (s *GormStore) ListAllGalleries(ctx context.Context) ([]models.Gallery, error) {
	var galleries []models.Gallery
	if err := s.db.WithContext(ctx).Order("event_date DESC, folder_name").Find(&galleries).Error; err != nil {
		return nil, mapError(err, "list galleries")
	}
	return galleries, nil
}

// FindUserByHandle returns the user with handle, or nil when none exists.
func (s *GormStore) FindUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("handle = ?", handle).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError(err, "find user "+handle)
	}
	return &u, nil
}

// CreateUser inserts u. DisplayName defaults to the handle.
func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.DisplayName == "" {
		u.DisplayName = u.Handle
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return mapError(err, "create user "+u.Handle)
	}
	return nil
}

// FindPhotoByStorageKey returns the photo stored under key, or nil.
func (s *GormStore) FindPhotoByStorageKey(ctx context.Context, key string) (*models.Photo, error) {
	var p models.Photo
	if err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapError(err, "find photo "+key)
	}
	return &p, nil
}

// CreatePhoto inserts p, assigning an ID when it has none.
func (s *GormStore) CreatePhoto(ctx context.Context, p *models.Photo) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return mapError(err, "create photo "+p.StorageKey)
	}
	return nil
}

// UpdatePhotoLinkage points a photo at its gallery and user tag.
func (s *GormStore) UpdatePhotoLinkage(ctx context.Context, id, galleryID string, userTagID *string) error {
	err := s.db.WithContext(ctx).Model(&models.Photo{}).Where("id = ?", id).Updates(map[string]any{
		"gallery_id":  galleryID,
		"user_tag_id": userTagID,
	}).Error
	if err != nil {
		return mapError(err, "update photo "+id)
	}
	return nil
}

// ListPhotosByGallery returns the photos of folder ordered by key.
func (s *GormStore) ListPhotosByGallery(ctx context.Context, folder string) ([]models.PhotoView, error) {
	var views []models.PhotoView
	err := s.photoViews(ctx).
		Where("galleries.folder_name = ?", folder).
		Order("photos.storage_key").
		Scan(&views).Error
	if err != nil {
		return nil, mapError(err, "list photos of "+folder)
	}
	return views, nil
}

// ListPhotosByUserHandle returns the photos tagged with handle, newest gallery first.
func (s *GormStore) ListPhotosByUserHandle(ctx context.Context, handle string) ([]models.PhotoView, error) {
	var views []models.PhotoView
	err := s.photoViews(ctx).
		Where("users.handle = ?", handle).
		Order("galleries.event_date DESC, photos.storage_key").
		Scan(&views).Error
	if err != nil {
		return nil, mapError(err, "list photos of user "+handle)
	}
	return views, nil
}

func (s *GormStore) photoViews(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table("photos").
		Select("photos.storage_key, photos.public_url, galleries.folder_name, COALESCE(users.handle, '') AS user_handle, photos.width, photos.height").
		Joins("JOIN galleries ON galleries.id = photos.gallery_id").
		Joins("LEFT JOIN users ON users.id = photos.user_tag_id")
}

// ListUserHandles returns every user handle in order.
func (s *GormStore) ListUserHandles(ctx context.Context) ([]string, error) {
	var handles []string
	if err := s.db.WithContext(ctx).Model(&models.User{}).Order("handle").Pluck("handle", &handles).Error; err != nil {
		return nil, mapError(err, "list users")
	}
	return handles, nil
}

// ListPhotoKeys returns every stored photo key in order.
func (s *GormStore) ListPhotoKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.WithContext(ctx).Model(&models.Photo{}).Order("storage_key").Pluck("storage_key", &keys).Error; err != nil {
		return nil, mapError(err, "list photo keys")
	}
	return keys, nil
}

// Counts returns the row count of each table.
func (s *GormStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Gallery{}).Count(&c.Galleries).Error; err != nil {
		return c, mapError(err, "count galleries")
	}
	if err := db.Model(&models.User{}).Count(&c.Users).Error; err != nil {
		return c, mapError(err, "count users")
	}
	if err := db.Model(&models.Photo{}).Count(&c.Photos).Error; err != nil {
		return c, mapError(err, "count photos")
	}
	return c, nil
}

func mapError(err error, msg string) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Wrap(errs.ErrKindRecordConflict, msg, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	default:
		return errs.Wrap(errs.ErrKindStoreUnavailable, msg, err)
	}
}
