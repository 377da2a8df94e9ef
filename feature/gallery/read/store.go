package read

import (
	"context"

	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/store"
)

// StoreStrategy reads from the relational store.
type StoreStrategy struct {
	reader store.Reader
}

// NewStoreStrategy creates a StoreStrategy.
func NewStoreStrategy(reader store.Reader) *StoreStrategy {
	return &StoreStrategy{reader: reader}
}

func (s *StoreStrategy) Name() string { return "store" }

func (s *StoreStrategy) Galleries(ctx context.Context) ([]models.GalleryView, error) {
	galleries, err := s.reader.ListAllGalleries(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.GalleryView, len(galleries))
	for i, g := range galleries {
		views[i] = g.View()
	}
	return views, nil
}

func (s *StoreStrategy) PhotosByGallery(ctx context.Context, folder string) ([]models.PhotoView, error) {
	return s.reader.ListPhotosByGallery(ctx, folder)
}

func (s *StoreStrategy) PhotosByUser(ctx context.Context, handle string) ([]models.PhotoView, error) {
	return s.reader.ListPhotosByUserHandle(ctx, handle)
}

func (s *StoreStrategy) indexEmpty(ctx context.Context) (bool, error) {
	counts, err := s.reader.Counts(ctx)
	if err != nil {
		return false, err
	}
	return counts.Galleries == 0, nil
}
