package read

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"gallery-sync/core/database"
	"gallery-sync/core/errs"
	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/gallery/parser"
	"gallery-sync/feature/gallery/projector"
	"gallery-sync/feature/gallery/reconciler"
	"gallery-sync/feature/gallery/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	return store.NewGormStore(db)
}

func TestStoreStrategy(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	pin := "1234"
	g := &models.Gallery{FolderName: "2026-01-05 Expo", Title: "Expo", EventDate: "2026-01-05", AccessPIN: &pin}
	require.NoError(t, st.CreateGallery(ctx, g))
	u := &models.User{Handle: "ann"}
	require.NoError(t, st.CreateUser(ctx, u))
	require.NoError(t, st.CreatePhoto(ctx, &models.Photo{GalleryID: g.ID, UserTagID: &u.ID, StorageKey: "photos/2026-01-05 Expo/ann/1.jpg", PublicURL: "u"}))

	s := NewStoreStrategy(st)
	galleries, err := s.Galleries(ctx)
	require.NoError(t, err)
	require.Len(t, galleries, 1)
	assert.True(t, galleries[0].Protected)

	byGallery, err := s.PhotosByGallery(ctx, "2026-01-05 Expo")
	require.NoError(t, err)
	require.Len(t, byGallery, 1)
	assert.Equal(t, "ann", byGallery[0].UserHandle)

	byUser, err := s.PhotosByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, byUser)
}

type fakeRunner struct {
	calls atomic.Int32
	run   func()
	err   error
}

func (f *fakeRunner) RunAs(context.Context, reconciler.Trigger) (*reconciler.Result, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if f.run != nil {
		f.run()
	}
	return &reconciler.Result{}, nil
}

func TestSyncStrategy(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	runner := &fakeRunner{run: func() {
		_ = st.CreateGallery(ctx, &models.Gallery{FolderName: "2026-01-05 Expo", Title: "Expo", EventDate: "2026-01-05"})
	}}

	s := NewSyncStrategy(runner, NewStoreStrategy(st))
	galleries, err := s.Galleries(ctx)
	require.NoError(t, err)
	assert.Len(t, galleries, 1)
	assert.Equal(t, int32(1), runner.calls.Load())

	// The index is populated now: misses answer Empty without another pass.
	photos, err := s.PhotosByGallery(ctx, "2099-01-01 Unknown")
	require.NoError(t, err)
	assert.Empty(t, photos)
	photos, err = s.PhotosByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, photos)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestSyncStrategy_PassFailure(t *testing.T) {
	runner := &fakeRunner{err: errs.New(errs.ErrKindStorageUnavailable, "down")}
	s := NewSyncStrategy(runner, NewStoreStrategy(newTestStore(t)))

	_, err := s.PhotosByUser(context.Background(), "ann")
	assert.True(t, errs.IsStorageUnavailable(err))
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestSyncStrategy_StoreUnreachable(t *testing.T) {
	runner := &fakeRunner{}
	s := NewSyncStrategy(runner, NewStoreStrategy(store.Unavailable()))

	_, err := s.Galleries(context.Background())
	assert.True(t, errs.IsStoreUnavailable(err))
	assert.Zero(t, runner.calls.Load())
}

type fakeDiscoverer struct {
	calls atomic.Int32
	model projector.Model
	err   error
}

func (f *fakeDiscoverer) Discover(context.Context) (*reconciler.Discovery, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &reconciler.Discovery{Model: f.model}, nil
}

func testModel() projector.Model {
	p := parser.New(parser.Config{BasePath: "photos", PublicURL: "https://cdn"}, "gallery")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var outcomes []parser.Outcome
	for _, k := range []string{
		"photos/2026-01-05 Expo/ann/1.jpg",
		"photos/2026-01-05 Expo/ben/2.jpg",
		"photos/2026-02-01 Later/ann/3.jpg",
	} {
		outcomes = append(outcomes, p.Parse(storage.Object{Key: k, LastModified: now}))
	}
	return projector.Project(outcomes)
}

func TestStorageStrategy(t *testing.T) {
	ctx := context.Background()
	d := &fakeDiscoverer{model: testModel()}
	s := NewStorageStrategy(d, time.Minute)

	galleries, err := s.Galleries(ctx)
	require.NoError(t, err)
	require.Len(t, galleries, 2)
	assert.Equal(t, "2026-02-01 Later", galleries[0].FolderName)
	require.NotNil(t, galleries[1].CoverImageURL)
	assert.Equal(t, "https://cdn/file/gallery/photos/2026-01-05+Expo/ann/1.jpg", *galleries[1].CoverImageURL)

	byGallery, err := s.PhotosByGallery(ctx, "2026-01-05 Expo")
	require.NoError(t, err)
	assert.Len(t, byGallery, 2)

	byUser, err := s.PhotosByUser(ctx, "ann")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	assert.Equal(t, int32(1), d.calls.Load())
	s.Invalidate()
	_, err = s.Galleries(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), d.calls.Load())
}

func TestStorageStrategy_Unavailable(t *testing.T) {
	d := &fakeDiscoverer{err: errs.New(errs.ErrKindStorageUnavailable, "down")}
	_, err := NewStorageStrategy(d, time.Minute).PhotosByGallery(context.Background(), "x")
	assert.True(t, errs.IsStorageUnavailable(err))
}

func TestStorageStrategy_FallbackFor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	d := &fakeDiscoverer{model: testModel()}
	s := NewStorageStrategy(d, 0).FallbackFor(NewStoreStrategy(st))

	galleries, err := s.Galleries(ctx)
	require.NoError(t, err)
	assert.Len(t, galleries, 2)
	assert.Equal(t, int32(1), d.calls.Load())

	require.NoError(t, st.CreateGallery(ctx, &models.Gallery{FolderName: "2026-01-05 Expo", Title: "Expo", EventDate: "2026-01-05"}))
	byGallery, err := s.PhotosByGallery(ctx, "2026-02-01 Later")
	require.NoError(t, err)
	assert.Empty(t, byGallery)
	byUser, err := s.PhotosByUser(ctx, "ben")
	require.NoError(t, err)
	assert.Empty(t, byUser)
	assert.Equal(t, int32(1), d.calls.Load())

	down := NewStorageStrategy(d, 0).FallbackFor(NewStoreStrategy(store.Unavailable()))
	byUser, err = down.PhotosByUser(ctx, "ann")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
	assert.Equal(t, int32(2), d.calls.Load())
}
