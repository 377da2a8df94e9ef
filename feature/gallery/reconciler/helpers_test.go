package reconciler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gallery-sync/core/database"
	"gallery-sync/core/errs"
	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/parser"
	"gallery-sync/feature/gallery/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	return store.NewGormStore(db)
}

func newTestSyncer(lister storage.Lister, st store.Store, cfg Config) *Syncer {
	p := parser.New(parser.Config{BasePath: "photos", PublicURL: "https://cdn.example.com"}, "gallery",
		parser.WithClock(func() time.Time { return testNow }))
	return New(lister, p, st, cfg, zap.NewNop())
}

func objects(keys ...string) []storage.Object {
	out := make([]storage.Object, len(keys))
	for i, k := range keys {
		out[i] = storage.Object{Key: k, Size: 1024, LastModified: testNow}
	}
	return out
}

// staticLister serves a fixed listing that tests may swap between passes.
type staticLister struct {
	objects  atomic.Pointer[[]storage.Object]
	metadata map[string]map[string]string
	listErr  error
	calls    atomic.Int32
}

func newStaticLister(objs []storage.Object) *staticLister {
	l := &staticLister{}
	l.set(objs)
	return l
}

func (l *staticLister) set(objs []storage.Object) {
	l.objects.Store(&objs)
}

func (l *staticLister) List(_ context.Context, _ string) ([]storage.Object, error) {
	l.calls.Add(1)
	if l.listErr != nil {
		return nil, l.listErr
	}
	return *l.objects.Load(), nil
}

func (l *staticLister) Metadata(_ context.Context, key string) (map[string]string, error) {
	md, ok := l.metadata[key]
	if !ok {
		return nil, errs.New(errs.ErrKindNotFound, key)
	}
	return md, nil
}

// faultyStore injects failures into a working store.
type faultyStore struct {
	*store.GormStore
	failPhoto      string
	failUserLookup string
	conflictPhotos bool
}

func (f *faultyStore) CreatePhoto(ctx context.Context, p *models.Photo) error {
	if p.StorageKey == f.failPhoto {
		return errs.Wrap(errs.ErrKindStoreUnavailable, "create photo "+p.StorageKey, errors.New("connection reset"))
	}
	if f.conflictPhotos {
		return errs.New(errs.ErrKindRecordConflict, "create photo "+p.StorageKey)
	}
	return f.GormStore.CreatePhoto(ctx, p)
}

func (f *faultyStore) FindUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	if handle == f.failUserLookup {
		return nil, errs.New(errs.ErrKindStoreUnavailable, "find user "+handle)
	}
	return f.GormStore.FindUserByHandle(ctx, handle)
}
