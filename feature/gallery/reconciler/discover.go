package reconciler

import (
	"context"
	"fmt"

	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/parser"
	"gallery-sync/feature/gallery/projector"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Discovery is the target state inferred from one listing.
type Discovery struct {
	Model    projector.Model
	Listed   int
	Warnings []string
}

// Discover lists the base path once and projects every key into the target
// model. A listing failure is returned as is and no model is produced.
func (s *Syncer) Discover(ctx context.Context) (*Discovery, error) {
	objects, err := s.lister.List(ctx, s.parser.Prefix())
	if err != nil {
		return nil, err
	}

	outcomes := make([]parser.Outcome, len(objects))
	for i, obj := range objects {
		outcomes[i] = s.parser.Parse(obj)
	}
	if s.cfg.FetchMetadata {
		s.fillDimensions(ctx, objects, outcomes)
	}

	model := projector.Project(outcomes)
	d := &Discovery{Model: model, Listed: len(objects)}
	for _, folder := range model.Skipped {
		d.Warnings = append(d.Warnings, fmt.Sprintf("folder %q has no date prefix, its photos are not indexed", folder))
	}
	return d, nil
}

// fillDimensions re-parses photos without a size token once their metadata is
// fetched. Metadata failures leave the dimensions empty.
func (s *Syncer) fillDimensions(ctx context.Context, objects []storage.Object, outcomes []parser.Outcome) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers())

	for i, o := range outcomes {
		if o.Kind != parser.KindPhoto || (o.Photo.Width != nil && o.Photo.Height != nil) {
			continue
		}
		g.Go(func() error {
			md, err := s.lister.Metadata(gctx, o.Key)
			if err != nil {
				s.logger.Debug("Metadata unavailable", zap.String("key", o.Key), zap.Error(err))
				return nil
			}
			obj := objects[i]
			obj.Metadata = md
			outcomes[i] = s.parser.Parse(obj)
			return nil
		})
	}
	_ = g.Wait()
}
