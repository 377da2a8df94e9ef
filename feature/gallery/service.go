package gallery

import (
	"context"
	"crypto/subtle"
	"errors"

	"gallery-sync/core/errs"
	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/read"
	"gallery-sync/feature/gallery/reconciler"
	"gallery-sync/feature/gallery/store"

	"go.uber.org/zap"
)

// ErrAccessDenied is returned when a protected gallery is read without its PIN.
var ErrAccessDenied = errors.New("gallery access denied")

// Service handles gallery reads and sync triggers.
type Service struct {
	store  store.Reader
	chain  *read.Chain
	syncer *reconciler.Syncer
	logger *zap.Logger
}

// NewService creates a new gallery service.
func NewService(st store.Reader, chain *read.Chain, syncer *reconciler.Syncer, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		chain:  chain,
		syncer: syncer,
		logger: logger,
	}
}

// Galleries lists every gallery, newest first.
func (s *Service) Galleries(ctx context.Context) (read.Result[models.GalleryView], error) {
	return s.chain.Galleries(ctx)
}

// Gallery returns one gallery. When the store cannot answer, the gallery is
// looked up through the read chain.
func (s *Service) Gallery(ctx context.Context, folder string) (*models.GalleryView, error) {
	g, err := s.store.FindGalleryByFolder(ctx, folder)
	if err == nil && g != nil {
		v := g.View()
		return &v, nil
	}

	res, chainErr := s.chain.Galleries(ctx)
	if chainErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, chainErr
	}
	for _, v := range res.Items {
		if v.FolderName == folder {
			return &v, nil
		}
	}
	return nil, errs.New(errs.ErrKindNotFound, "gallery "+folder)
}

// Photos lists the photos of a gallery. A gallery with an access PIN requires
// the matching pin. When the store is unreachable the PIN cannot be checked
// and the read chain decides what is served.
func (s *Service) Photos(ctx context.Context, folder, pin string) (read.Result[models.PhotoView], error) {
	g, err := s.store.FindGalleryByFolder(ctx, folder)
	if err != nil {
		s.logger.Warn("Gallery lookup failed, PIN not checked", zap.String("folder", folder), zap.Error(err))
	} else if g != nil && g.HasPIN() && !pinMatches(*g.AccessPIN, pin) {
		return read.Result[models.PhotoView]{}, ErrAccessDenied
	}
	return s.chain.PhotosByGallery(ctx, folder)
}

// PhotosByUser lists the photos tagged with handle.
func (s *Service) PhotosByUser(ctx context.Context, handle string) (read.Result[models.PhotoView], error) {
	return s.chain.PhotosByUser(ctx, handle)
}

// ValidatePIN reports whether pin unlocks the gallery. Galleries without a
// PIN accept any pin.
func (s *Service) ValidatePIN(ctx context.Context, folder, pin string) (bool, error) {
	g, err := s.store.FindGalleryByFolder(ctx, folder)
	if err != nil {
		return false, err
	}
	if g == nil {
		return false, errs.New(errs.ErrKindNotFound, "gallery "+folder)
	}
	if !g.HasPIN() {
		return true, nil
	}
	return pinMatches(*g.AccessPIN, pin), nil
}

func pinMatches(expected, given string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

// Sync runs a pass, joining one already in flight.
func (s *Service) Sync(ctx context.Context, trigger reconciler.Trigger) (*reconciler.Result, error) {
	return s.syncer.RunAs(ctx, trigger)
}

// Plan previews a pass without writing.
func (s *Service) Plan(ctx context.Context) (*reconciler.Preview, error) {
	return s.syncer.Plan(ctx)
}

// LastSync returns the result of the most recent pass, or nil.
func (s *Service) LastSync() *reconciler.Result {
	return s.syncer.LastResult()
}
