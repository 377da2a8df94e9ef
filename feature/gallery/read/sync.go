package read

import (
	"context"
	"fmt"

	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/reconciler"
)

// Runner runs a sync pass.
type Runner interface {
	RunAs(ctx context.Context, trigger reconciler.Trigger) (*reconciler.Result, error)
}

// SyncStrategy runs a pass and then reads the store again. It only runs while
// the index holds no gallery at all; a query that misses on a populated index
// answers Empty without listing the bucket. Concurrent readers share the
// in-flight pass.
type SyncStrategy struct {
	runner Runner
	store  *StoreStrategy
}

// NewSyncStrategy creates a SyncStrategy.
func NewSyncStrategy(runner Runner, store *StoreStrategy) *SyncStrategy {
	return &SyncStrategy{runner: runner, store: store}
}

func (s *SyncStrategy) Name() string { return "sync" }

// sync reports whether a pass ran. An unreachable store is returned as is so
// the chain moves on to storage.
func (s *SyncStrategy) sync(ctx context.Context) (bool, error) {
	empty, err := s.store.indexEmpty(ctx)
	if err != nil || !empty {
		return false, err
	}
	if _, err := s.runner.RunAs(ctx, reconciler.TriggerRead); err != nil {
		return false, fmt.Errorf("on-demand sync: %w", err)
	}
	return true, nil
}

func (s *SyncStrategy) Galleries(ctx context.Context) ([]models.GalleryView, error) {
	if ran, err := s.sync(ctx); !ran {
		return nil, err
	}
	return s.store.Galleries(ctx)
}

func (s *SyncStrategy) PhotosByGallery(ctx context.Context, folder string) ([]models.PhotoView, error) {
	if ran, err := s.sync(ctx); !ran {
		return nil, err
	}
	return s.store.PhotosByGallery(ctx, folder)
}

func (s *SyncStrategy) PhotosByUser(ctx context.Context, handle string) ([]models.PhotoView, error) {
	if ran, err := s.sync(ctx); !ran {
		return nil, err
	}
	return s.store.PhotosByUser(ctx, handle)
}
