package read

import (
	"context"

	"gallery-sync/core/errs"
	"gallery-sync/core/metrics"
	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/reconciler"
	"gallery-sync/feature/gallery/store"

	"go.uber.org/zap"
)

// Attempt records what one strategy did for a query.
type Attempt struct {
	Strategy string  `json:"strategy"`
	Outcome  Outcome `json:"outcome"`
	Error    string  `json:"error,omitempty"`
}

// Result is the answer of the chain and the trail of strategies it tried.
type Result[T any] struct {
	Items    []T       `json:"items"`
	Source   string    `json:"source,omitempty"`
	Outcome  Outcome   `json:"outcome"`
	Attempts []Attempt `json:"attempts"`
}

// Chain tries strategies in order until one serves.
type Chain struct {
	strategies []Strategy
	logger     *zap.Logger
	metrics    *metrics.Recorder
}

// NewChain creates a chain over strategies. m may be nil.
func NewChain(logger *zap.Logger, m *metrics.Recorder, strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies, logger: logger, metrics: m}
}

// Strategies returns the names of the strategies in order.
func (c *Chain) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Galleries lists galleries.
func (c *Chain) Galleries(ctx context.Context) (Result[models.GalleryView], error) {
	return serve(c, "galleries", func(s Strategy) ([]models.GalleryView, error) {
		return s.Galleries(ctx)
	})
}

// PhotosByGallery lists the photos of one gallery folder.
func (c *Chain) PhotosByGallery(ctx context.Context, folder string) (Result[models.PhotoView], error) {
	return serve(c, "photos_by_gallery", func(s Strategy) ([]models.PhotoView, error) {
		return s.PhotosByGallery(ctx, folder)
	})
}

// PhotosByUser lists the photos tagged with one user handle.
func (c *Chain) PhotosByUser(ctx context.Context, handle string) (Result[models.PhotoView], error) {
	return serve(c, "photos_by_user", func(s Strategy) ([]models.PhotoView, error) {
		return s.PhotosByUser(ctx, handle)
	})
}

// serve returns the first Served answer. When nothing serves, the result is
// Empty if any strategy answered, and an error if every strategy failed.
func serve[T any](c *Chain, query string, call func(Strategy) ([]T, error)) (Result[T], error) {
	res := Result[T]{Outcome: Unavailable, Items: []T{}}
	var lastErr error

	for _, s := range c.strategies {
		items, err := call(s)
		outcome := Classify(len(items), err)
		attempt := Attempt{Strategy: s.Name(), Outcome: outcome}
		if err != nil {
			attempt.Error = err.Error()
			lastErr = err
			c.logger.Warn("Read strategy unavailable",
				zap.String("query", query), zap.String("strategy", s.Name()), zap.Error(err))
		}
		res.Attempts = append(res.Attempts, attempt)
		if c.metrics != nil {
			c.metrics.Reads.WithLabelValues(s.Name(), outcome.String()).Inc()
		}

		switch outcome {
		case Served:
			res.Items, res.Source, res.Outcome = items, s.Name(), Served
			return res, nil
		case Empty:
			res.Outcome = Empty
		}
	}

	if res.Outcome == Empty {
		return res, nil
	}
	if lastErr == nil {
		lastErr = errs.New(errs.ErrKindInvalidInput, "no read strategies configured")
	}
	return res, lastErr
}

// NewDefaultChain builds store, then sync when on-demand passes are enabled,
// then the cached bucket listing. Both fallbacks stand down while the store is
// reachable and holds galleries.
func NewDefaultChain(reader store.Reader, syncer *reconciler.Syncer, logger *zap.Logger, m *metrics.Recorder) *Chain {
	st := NewStoreStrategy(reader)
	strategies := []Strategy{st}
	if syncer.Config().OnDemand {
		strategies = append(strategies, NewSyncStrategy(syncer, st))
	}
	strategies = append(strategies, NewStorageStrategy(syncer, syncer.Config().CacheTTL()).FallbackFor(st))
	return NewChain(logger, m, strategies...)
}
