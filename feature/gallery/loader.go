package gallery

import (
	"gallery-sync/core/metrics"
	"gallery-sync/feature/gallery/read"
	"gallery-sync/feature/gallery/reconciler"
	"gallery-sync/feature/gallery/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Gallery feature. admin guards the sync routes.
func NewFeature(st store.Store, syncer *reconciler.Syncer, m *metrics.Recorder, admin fiber.Handler, logger *zap.Logger) *Feature {
	chain := read.NewDefaultChain(st, syncer, logger, m)
	svc := NewService(st, chain, syncer, logger)
	return &Feature{service: svc, handler: NewHandler(svc, admin)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "gallery"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
