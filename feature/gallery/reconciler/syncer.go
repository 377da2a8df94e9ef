package reconciler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gallery-sync/core/errs"
	"gallery-sync/core/logger"
	"gallery-sync/core/metrics"
	"gallery-sync/core/reconcile"
	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/parser"
	"gallery-sync/feature/gallery/projector"
	"gallery-sync/feature/gallery/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Syncer merges the bucket listing into the relational store.
type Syncer struct {
	lister  storage.Lister
	parser  *parser.Parser
	store   store.Store
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Recorder

	passes singleflight.Group

	mu   sync.RWMutex
	last *Result
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithMetrics records pass outcomes on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Syncer) { s.metrics = m }
}

// New creates a Syncer.
func New(lister storage.Lister, p *parser.Parser, st store.Store, cfg Config, logger *zap.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		lister: lister,
		parser: p,
		store:  st,
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the sync configuration.
func (s *Syncer) Config() Config {
	return s.cfg
}

// LastResult returns the result of the most recent completed pass, or nil.
func (s *Syncer) LastResult() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Run executes one pass triggered manually.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	return s.RunAs(ctx, TriggerManual)
}

// RunAs executes one pass. Callers arriving while a pass is in flight wait for
// it and share its result instead of starting another.
func (s *Syncer) RunAs(ctx context.Context, trigger Trigger) (*Result, error) {
	v, err, shared := s.passes.Do("pass", func() (interface{}, error) {
		return s.run(ctx, trigger)
	})
	if shared {
		s.logger.Debug("Joined in-flight sync pass", zap.String("trigger", string(trigger)))
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// pass is the mutable state of one run.
type pass struct {
	log        *zap.Logger
	report     reconcile.Report
	counts     counters
	galleryIDs map[string]string
	userIDs    map[string]string
	warnings   []string
}

func (s *Syncer) fail(p *pass, entity, key string, err error) {
	p.log.Warn("Sync item failed", zap.String("entity", entity), zap.String("key", key), zap.Error(err))
	p.report.Fail(entity, key, err)
	if s.metrics != nil {
		s.metrics.Failures.WithLabelValues(entity).Inc()
	}
}

func (s *Syncer) run(ctx context.Context, trigger Trigger) (*Result, error) {
	start := time.Now()
	passID := uuid.NewString()
	log := logger.WithPass(s.logger, passID, string(trigger))
	log.Info("Sync pass started")

	d, err := s.Discover(ctx)
	if err != nil {
		log.Error("Discover failed, pass aborted", zap.Error(err))
		s.observe(trigger, "failed", time.Since(start), nil)
		return nil, fmt.Errorf("discover: %w", err)
	}
	log.Debug("Discover finished",
		zap.Int("listed", d.Listed),
		zap.Int("galleries", len(d.Model.Galleries)),
		zap.Int("users", len(d.Model.Users)),
		zap.Int("photos", len(d.Model.Photos)),
		zap.Int("rejected", d.Model.RejectedTotal()),
	)
	for _, w := range d.Warnings {
		log.Warn(w)
	}

	p := &pass{
		log:        log,
		galleryIDs: make(map[string]string, len(d.Model.Galleries)),
		userIDs:    make(map[string]string, len(d.Model.Users)),
	}
	s.syncGalleries(ctx, p, d.Model)
	s.syncUsers(ctx, p, d.Model)
	s.syncPhotos(ctx, p, d.Model)
	s.prune(ctx, p, d.Model)

	processed, failures := p.report.Snapshot()
	res := &Result{
		PassID:    passID,
		Trigger:   trigger,
		Processed: processed,
		Errors:    failures,
		Warnings:  append(d.Warnings, p.warnings...),
		Stats: Stats{
			Listed:         d.Listed,
			Rejected:       d.Model.RejectedTotal(),
			SkippedFolders: len(d.Model.Skipped),
			OrphanedPhotos: d.Model.Orphaned,
		},
	}
	p.counts.apply(&res.Stats)
	elapsed := time.Since(start)
	res.Stats.DurationMillis = elapsed.Milliseconds()

	outcome := "ok"
	if !res.OK() {
		outcome = "partial"
	}
	s.observe(trigger, outcome, elapsed, res)

	s.mu.Lock()
	s.last = res
	s.mu.Unlock()

	log.Info("Sync pass finished",
		zap.String("outcome", outcome),
		zap.Int("processed", res.Processed),
		zap.Int("errors", len(res.Errors)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Int("galleries_created", res.Stats.GalleriesCreated),
		zap.Int("galleries_deleted", res.Stats.GalleriesDeleted),
		zap.Int("photos_created", res.Stats.PhotosCreated),
		zap.Int("photos_updated", res.Stats.PhotosUpdated),
		zap.Duration("duration", elapsed),
	)
	return res, nil
}

func (s *Syncer) observe(trigger Trigger, outcome string, elapsed time.Duration, res *Result) {
	if s.metrics == nil {
		return
	}
	s.metrics.Passes.WithLabelValues(string(trigger), outcome).Inc()
	if res == nil {
		return
	}
	s.metrics.Duration.Observe(elapsed.Seconds())
	s.metrics.Processed.Add(float64(res.Processed))
	s.metrics.Warnings.Add(float64(len(res.Warnings)))
}

// syncGalleries resolves the id of every target gallery, creating missing
// ones. Existing galleries are left untouched.
func (s *Syncer) syncGalleries(ctx context.Context, p *pass, m projector.Model) {
	for _, g := range m.Galleries {
		id, err := s.resolveGallery(ctx, p, g)
		if err != nil {
			s.fail(p, EntityGallery, g.FolderName, err)
			continue
		}
		p.galleryIDs[g.FolderName] = id
	}
}

func (s *Syncer) resolveGallery(ctx context.Context, p *pass, g projector.GalleryTarget) (string, error) {
	existing, err := s.store.FindGalleryByFolder(ctx, g.FolderName)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	rec := &models.Gallery{
		Title:      g.Title,
		EventDate:  g.EventDate,
		FolderName: g.FolderName,
	}
	if g.CoverImageURL != "" {
		cover := g.CoverImageURL
		rec.CoverImageURL = &cover
	}
	if err := s.store.CreateGallery(ctx, rec); err != nil {
		if !errs.IsRecordConflict(err) {
			return "", err
		}
		p.counts.conflicts.Add(1)
		raced, err := s.store.FindGalleryByFolder(ctx, g.FolderName)
		if err != nil {
			return "", err
		}
		if raced == nil {
			return "", vanished(EntityGallery, g.FolderName)
		}
		return raced.ID, nil
	}
	p.counts.galleriesCreated.Add(1)
	return rec.ID, nil
}

// vanished is returned when a conflicting row is gone by the time it is re-read.
func vanished(entity, key string) error {
	return errs.New(errs.ErrKindNotFound, fmt.Sprintf("%s %s vanished after conflict", entity, key))
}

// syncUsers resolves the id of every target handle, creating missing users.
// A failed handle leaves its photos untagged on create.
func (s *Syncer) syncUsers(ctx context.Context, p *pass, m projector.Model) {
	ids := make([]string, len(m.Users))
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.workers())

	for i, handle := range m.Users {
		g.Go(func() error {
			id, err := s.resolveUser(ctx, p, handle)
			if err != nil {
				s.fail(p, EntityUser, handle, err)
				return nil
			}
			ids[i] = id
			return nil
		})
	}
	_ = g.Wait()

	for i, handle := range m.Users {
		if ids[i] != "" {
			p.userIDs[handle] = ids[i]
		}
	}
}

func (s *Syncer) resolveUser(ctx context.Context, p *pass, handle string) (string, error) {
	existing, err := s.store.FindUserByHandle(ctx, handle)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}

	rec := &models.User{Handle: handle}
	if err := s.store.CreateUser(ctx, rec); err != nil {
		if !errs.IsRecordConflict(err) {
			return "", err
		}
		p.counts.conflicts.Add(1)
		raced, err := s.store.FindUserByHandle(ctx, handle)
		if err != nil {
			return "", err
		}
		if raced == nil {
			return "", vanished(EntityUser, handle)
		}
		return raced.ID, nil
	}
	p.counts.usersCreated.Add(1)
	return rec.ID, nil
}

// syncPhotos creates missing photos and refreshes the linkage of existing
// ones across a bounded worker pool. Gallery and user ids are resolved first.
func (s *Syncer) syncPhotos(ctx context.Context, p *pass, m projector.Model) {
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.workers())

	for _, photo := range m.Photos {
		g.Go(func() error {
			if err := s.syncPhoto(ctx, p, photo); err != nil {
				s.fail(p, EntityPhoto, photo.StorageKey, err)
				return nil
			}
			p.report.Processed(1)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Syncer) syncPhoto(ctx context.Context, p *pass, c parser.PhotoCandidate) error {
	galleryID, ok := p.galleryIDs[c.FolderName]
	if !ok {
		return errs.New(errs.ErrKindNotFound, "gallery "+c.FolderName+" unresolved")
	}
	var userID *string
	if id, ok := p.userIDs[c.UserHandle]; ok {
		userID = &id
	}

	existing, err := s.store.FindPhotoByStorageKey(ctx, c.StorageKey)
	if err != nil {
		return err
	}

	if existing == nil {
		rec := &models.Photo{
			GalleryID:  galleryID,
			UserTagID:  userID,
			StorageKey: c.StorageKey,
			PublicURL:  c.PublicURL,
			Width:      c.Width,
			Height:     c.Height,
		}
		if err := s.store.CreatePhoto(ctx, rec); err != nil {
			if errs.IsRecordConflict(err) {
				p.counts.conflicts.Add(1)
				return nil
			}
			return err
		}
		p.counts.photosCreated.Add(1)
		return nil
	}

	// Keep the current tag when the handle could not be resolved this pass.
	if _, known := p.userIDs[c.UserHandle]; !known {
		userID = existing.UserTagID
	}
	if existing.GalleryID == galleryID && sameID(existing.UserTagID, userID) {
		p.counts.photosUnchanged.Add(1)
		return nil
	}
	if err := s.store.UpdatePhotoLinkage(ctx, existing.ID, galleryID, userID); err != nil {
		return err
	}
	p.counts.photosUpdated.Add(1)
	return nil
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// prune deletes stored galleries whose folder is absent from the listing.
// An empty listing against a populated store is skipped unless PruneOnEmpty.
func (s *Syncer) prune(ctx context.Context, p *pass, m projector.Model) {
	stored, err := s.store.ListAllGalleries(ctx)
	if err != nil {
		s.fail(p, EntityPrune, "galleries", err)
		return
	}
	if len(m.Galleries) == 0 && len(stored) > 0 && !s.cfg.PruneOnEmpty {
		w := fmt.Sprintf("listing yielded no galleries, prune of %d stored galleries skipped", len(stored))
		p.log.Warn(w)
		p.warnings = append(p.warnings, w)
		return
	}

	target := m.GalleryFolders()
	for _, g := range stored {
		if _, ok := target[g.FolderName]; ok {
			continue
		}
		if err := s.store.DeleteGallery(ctx, g.ID); err != nil {
			s.fail(p, EntityGallery, g.FolderName, err)
			continue
		}
		p.log.Info("Gallery pruned", zap.String("folder", g.FolderName))
		p.counts.galleriesDeleted.Add(1)
	}
}
