package reconciler

import (
	"context"
	"fmt"

	"gallery-sync/core/reconcile"
)

// Preview is a dry-run of a pass: what would be written, without writing.
type Preview struct {
	Listed   int            `json:"listed"`
	Plan     reconcile.Plan `json:"plan"`
	Warnings []string       `json:"warnings"`
}

// Plan discovers the target model and diffs it against the store by natural
// key. Photo updates are listed for every stored key the listing still holds;
// a pass skips those whose linkage is already current. Photos of a pruned
// gallery are planned as deletes since they go with it.
func (s *Syncer) Plan(ctx context.Context) (*Preview, error) {
	d, err := s.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	stored, err := s.store.ListAllGalleries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}
	handles, err := s.store.ListUserHandles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	keys, err := s.store.ListPhotoKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	folders := make([]string, 0, len(stored))
	for _, g := range stored {
		folders = append(folders, g.FolderName)
	}
	targetPhotos := make([]string, 0, len(d.Model.Photos))
	for _, p := range d.Model.Photos {
		targetPhotos = append(targetPhotos, p.StorageKey)
	}
	targetGalleries := make([]string, 0, len(d.Model.Galleries))
	for _, g := range d.Model.Galleries {
		targetGalleries = append(targetGalleries, g.FolderName)
	}

	prune := len(targetGalleries) > 0 || len(folders) == 0 || s.cfg.PruneOnEmpty
	warnings := d.Warnings
	if !prune {
		warnings = append(warnings, fmt.Sprintf("listing yielded no galleries, prune of %d stored galleries skipped", len(folders)))
	}

	preview := &Preview{Listed: d.Listed, Warnings: warnings}
	preview.Plan.Add(reconcile.DiffOptions{Entity: EntityGallery, Prune: prune},
		reconcile.NewKeySet(targetGalleries...), reconcile.NewKeySet(folders...))
	preview.Plan.Add(reconcile.DiffOptions{Entity: EntityUser},
		reconcile.NewKeySet(d.Model.Users...), reconcile.NewKeySet(handles...))
	cascade, err := s.cascadedPhotos(ctx, preview.Plan.Keys(EntityGallery, reconcile.ActionDelete))
	if err != nil {
		return nil, err
	}
	preview.Plan.Add(reconcile.DiffOptions{Entity: EntityPhoto, UpdateExisting: true, Cascade: cascade},
		reconcile.NewKeySet(targetPhotos...), reconcile.NewKeySet(keys...))
	return preview, nil
}

// cascadedPhotos collects the stored photo keys that go with the deleted
// gallery folders.
func (s *Syncer) cascadedPhotos(ctx context.Context, folders []string) (reconcile.KeySet, error) {
	keys := reconcile.NewKeySet()
	for _, folder := range folders {
		photos, err := s.store.ListPhotosByGallery(ctx, folder)
		if err != nil {
			return nil, fmt.Errorf("list photos of %s: %w", folder, err)
		}
		for _, p := range photos {
			keys[p.StorageKey] = struct{}{}
		}
	}
	return keys, nil
}
