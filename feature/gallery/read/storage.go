package read

import (
	"context"
	"sort"
	"time"

	"gallery-sync/core/reconcile"
	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/projector"
	"gallery-sync/feature/gallery/reconciler"
)

// Discoverer projects the bucket listing into a target model.
type Discoverer interface {
	Discover(ctx context.Context) (*reconciler.Discovery, error)
}

const modelKey = "model"

// StorageStrategy answers from the bucket listing without touching the store.
// Listings are cached for a TTL. Access PINs are unknown in this mode, so
// every gallery reads as unprotected.
type StorageStrategy struct {
	discoverer Discoverer
	cache      *reconcile.Cache[projector.Model]
	index      *StoreStrategy
}

// NewStorageStrategy creates a StorageStrategy. A zero ttl lists on every query.
func NewStorageStrategy(d Discoverer, ttl time.Duration) *StorageStrategy {
	return &StorageStrategy{
		discoverer: d,
		cache:      reconcile.NewCache[projector.Model](ttl),
	}
}

// FallbackFor restricts the strategy to serving only while index is
// unreachable or holds no gallery. A miss on a healthy index is then final.
func (s *StorageStrategy) FallbackFor(index *StoreStrategy) *StorageStrategy {
	s.index = index
	return s
}

func (s *StorageStrategy) Name() string { return "storage" }

func (s *StorageStrategy) skip(ctx context.Context) bool {
	if s.index == nil {
		return false
	}
	empty, err := s.index.indexEmpty(ctx)
	return err == nil && !empty
}

func (s *StorageStrategy) model(ctx context.Context) (projector.Model, error) {
	return s.cache.GetOrBuild(ctx, modelKey, func(ctx context.Context) (projector.Model, error) {
		d, err := s.discoverer.Discover(ctx)
		if err != nil {
			return projector.Model{}, err
		}
		return d.Model, nil
	})
}

// Invalidate drops the cached listing.
func (s *StorageStrategy) Invalidate() {
	s.cache.Invalidate(modelKey)
}

func (s *StorageStrategy) Galleries(ctx context.Context) ([]models.GalleryView, error) {
	if s.skip(ctx) {
		return nil, nil
	}
	m, err := s.model(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.GalleryView, 0, len(m.Galleries))
	for _, g := range m.Galleries {
		v := models.GalleryView{FolderName: g.FolderName, Title: g.Title, EventDate: g.EventDate}
		if g.CoverImageURL != "" {
			cover := g.CoverImageURL
			v.CoverImageURL = &cover
		}
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].EventDate > views[j].EventDate })
	return views, nil
}

func (s *StorageStrategy) PhotosByGallery(ctx context.Context, folder string) ([]models.PhotoView, error) {
	return s.photos(ctx, func(v models.PhotoView) bool { return v.FolderName == folder })
}

func (s *StorageStrategy) PhotosByUser(ctx context.Context, handle string) ([]models.PhotoView, error) {
	return s.photos(ctx, func(v models.PhotoView) bool { return v.UserHandle == handle })
}

func (s *StorageStrategy) photos(ctx context.Context, keep func(models.PhotoView) bool) ([]models.PhotoView, error) {
	if s.skip(ctx) {
		return nil, nil
	}
	m, err := s.model(ctx)
	if err != nil {
		return nil, err
	}
	var views []models.PhotoView
	for _, p := range m.Photos {
		v := models.PhotoView{
			StorageKey: p.StorageKey,
			PublicURL:  p.PublicURL,
			FolderName: p.FolderName,
			UserHandle: p.UserHandle,
			Width:      p.Width,
			Height:     p.Height,
		}
		if keep(v) {
			views = append(views, v)
		}
	}
	return views, nil
}
