package reconciler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gallery-sync/core/errs"
	"gallery-sync/core/metrics"
	"gallery-sync/core/storage/mocks"
	"gallery-sync/feature/gallery/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var baseListing = []string{
	"photos/2026-01-05 Miku Expo/xymiku/IMG001.jpg",
	"photos/2026-01-05 Miku Expo/xymiku/IMG002_1200x900.png",
	"photos/2026-01-05 Miku Expo/xymiku/notes.txt",
	"photos/2026-01-05 Miku Expo/bob/a b.jpg",
	"photos/2026_01_08 Test Event/bob/IMG100.webp",
	"photos/randomfolder/carol/IMG5.jpg",
	"photos/readme.md",
}

func TestRun_BuildsModel(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	s := newTestSyncer(newStaticLister(objects(baseListing...)), st, Config{Workers: 4})

	res, err := s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Processed)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "randomfolder")
	assert.Equal(t, 7, res.Stats.Listed)
	assert.Equal(t, 2, res.Stats.Rejected)
	assert.Equal(t, 1, res.Stats.OrphanedPhotos)
	assert.Equal(t, 2, res.Stats.GalleriesCreated)
	assert.Equal(t, 2, res.Stats.UsersCreated)
	assert.Equal(t, 4, res.Stats.PhotosCreated)
	assert.Same(t, res, s.LastResult())

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Galleries)
	assert.Equal(t, int64(2), counts.Users)
	assert.Equal(t, int64(4), counts.Photos)

	expo, err := st.FindGalleryByFolder(ctx, "2026-01-05 Miku Expo")
	require.NoError(t, err)
	require.NotNil(t, expo)
	assert.Equal(t, "Miku Expo", expo.Title)
	assert.Equal(t, "2026-01-05", expo.EventDate)
	require.NotNil(t, expo.CoverImageURL)
	assert.Equal(t, "https://cdn.example.com/file/gallery/photos/2026-01-05+Miku+Expo/xymiku/IMG001.jpg", *expo.CoverImageURL)

	test, err := st.FindGalleryByFolder(ctx, "2026_01_08 Test Event")
	require.NoError(t, err)
	require.NotNil(t, test)
	assert.Equal(t, "2026-01-08", test.EventDate)

	random, err := st.FindGalleryByFolder(ctx, "randomfolder")
	require.NoError(t, err)
	assert.Nil(t, random)

	photos, err := st.ListPhotosByGallery(ctx, "2026-01-05 Miku Expo")
	require.NoError(t, err)
	require.Len(t, photos, 3)
	byKey := make(map[string]string)
	for _, p := range photos {
		byKey[p.StorageKey] = p.UserHandle
	}
	assert.Equal(t, "bob", byKey["photos/2026-01-05 Miku Expo/bob/a b.jpg"])
	assert.Equal(t, "xymiku", byKey["photos/2026-01-05 Miku Expo/xymiku/IMG002_1200x900.png"])
	for _, p := range photos {
		if p.StorageKey == "photos/2026-01-05 Miku Expo/xymiku/IMG002_1200x900.png" {
			require.NotNil(t, p.Width)
			assert.Equal(t, uint32(1200), *p.Width)
			assert.Equal(t, uint32(900), *p.Height)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	s := newTestSyncer(newStaticLister(objects(baseListing...)), st, Config{Workers: 4})

	_, err := s.Run(ctx)
	require.NoError(t, err)
	before, err := st.FindGalleryByFolder(ctx, "2026-01-05 Miku Expo")
	require.NoError(t, err)
	photoBefore, err := st.FindPhotoByStorageKey(ctx, "photos/2026-01-05 Miku Expo/bob/a b.jpg")
	require.NoError(t, err)

	res, err := s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, res.Processed)
	assert.Zero(t, res.Stats.GalleriesCreated)
	assert.Zero(t, res.Stats.UsersCreated)
	assert.Zero(t, res.Stats.PhotosCreated)
	assert.Zero(t, res.Stats.PhotosUpdated)
	assert.Zero(t, res.Stats.GalleriesDeleted)
	assert.Equal(t, 4, res.Stats.PhotosUnchanged)

	after, err := st.FindGalleryByFolder(ctx, "2026-01-05 Miku Expo")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	photoAfter, err := st.FindPhotoByStorageKey(ctx, "photos/2026-01-05 Miku Expo/bob/a b.jpg")
	require.NoError(t, err)
	assert.Equal(t, *photoBefore, *photoAfter)
}

func TestRun_Prune(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	lister := newStaticLister(objects(
		"photos/2026-01-01 A/ann/1.jpg",
		"photos/2026-01-02 B/ann/2.jpg",
		"photos/2026-01-02 B/ben/3.jpg",
	))
	s := newTestSyncer(lister, st, Config{Workers: 2})

	_, err := s.Run(ctx)
	require.NoError(t, err)
	a, err := st.FindGalleryByFolder(ctx, "2026-01-01 A")
	require.NoError(t, err)

	lister.set(objects("photos/2026-01-01 A/ann/1.jpg"))
	res, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.GalleriesDeleted)
	assert.Empty(t, res.Errors)

	b, err := st.FindGalleryByFolder(ctx, "2026-01-02 B")
	require.NoError(t, err)
	assert.Nil(t, b)
	gone, err := st.FindPhotoByStorageKey(ctx, "photos/2026-01-02 B/ben/3.jpg")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := st.FindGalleryByFolder(ctx, "2026-01-01 A")
	require.NoError(t, err)
	assert.Equal(t, a.ID, kept.ID)

	// Users are never pruned.
	ben, err := st.FindUserByHandle(ctx, "ben")
	require.NoError(t, err)
	assert.NotNil(t, ben)
}

func TestRun_EmptyListingPruneGuard(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	lister := newStaticLister(objects("photos/2026-01-01 A/ann/1.jpg"))

	_, err := newTestSyncer(lister, st, Config{}).Run(ctx)
	require.NoError(t, err)

	lister.set(nil)
	res, err := newTestSyncer(lister, st, Config{}).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Stats.GalleriesDeleted)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "prune")

	res, err = newTestSyncer(lister, st, Config{PruneOnEmpty: true}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.GalleriesDeleted)
}

func TestRun_PartialFailure(t *testing.T) {
	ctx := context.Background()
	keys := make([]string, 11)
	for i := range keys {
		keys[i] = fmt.Sprintf("photos/2026-01-05 Expo/ann/IMG%02d.jpg", i)
	}
	st := &faultyStore{GormStore: newTestStore(t), failPhoto: keys[7]}
	s := newTestSyncer(newStaticLister(objects(keys...)), st, Config{Workers: 3})

	res, err := s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10, res.Processed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], keys[7])
	assert.False(t, res.OK())

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.Photos)
}

func TestRun_StorageUnavailableAborts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	lister := newStaticLister(nil)
	lister.listErr = errs.Wrap(errs.ErrKindStorageUnavailable, "list objects", fmt.Errorf("dial tcp: timeout"))
	s := newTestSyncer(lister, st, Config{})

	res, err := s.Run(ctx)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errs.IsStorageUnavailable(err))
	assert.Nil(t, s.LastResult())

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Galleries)
}

func TestRun_ConflictCountsAsSynced(t *testing.T) {
	st := &faultyStore{GormStore: newTestStore(t), conflictPhotos: true}
	s := newTestSyncer(newStaticLister(objects("photos/2026-01-05 Expo/ann/1.jpg", "photos/2026-01-05 Expo/ann/2.jpg")), st, Config{})

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 2, res.Stats.Conflicts)
}

func TestRun_UserFailureThenLinkageRefresh(t *testing.T) {
	ctx := context.Background()
	base := newTestStore(t)
	lister := newStaticLister(objects("photos/2026-01-05 Expo/bob/1.jpg"))

	res, err := newTestSyncer(lister, &faultyStore{GormStore: base, failUserLookup: "bob"}, Config{}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "user bob")

	photo, err := base.FindPhotoByStorageKey(ctx, "photos/2026-01-05 Expo/bob/1.jpg")
	require.NoError(t, err)
	assert.Nil(t, photo.UserTagID)

	res, err = newTestSyncer(lister, base, Config{}).Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 1, res.Stats.PhotosUpdated)

	bob, err := base.FindUserByHandle(ctx, "bob")
	require.NoError(t, err)
	photo, err = base.FindPhotoByStorageKey(ctx, "photos/2026-01-05 Expo/bob/1.jpg")
	require.NoError(t, err)
	require.NotNil(t, photo.UserTagID)
	assert.Equal(t, bob.ID, *photo.UserTagID)
}

func TestRun_FetchMetadata(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	lister := newStaticLister(objects(
		"photos/2026-01-05 Expo/ann/tagged.jpg",
		"photos/2026-01-05 Expo/ann/untagged.jpg",
	))
	lister.metadata = map[string]map[string]string{
		"photos/2026-01-05 Expo/ann/tagged.jpg": {"width": "800", "height": "600"},
	}

	res, err := newTestSyncer(lister, st, Config{FetchMetadata: true, Workers: 2}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)

	tagged, err := st.FindPhotoByStorageKey(ctx, "photos/2026-01-05 Expo/ann/tagged.jpg")
	require.NoError(t, err)
	require.NotNil(t, tagged.Width)
	assert.Equal(t, uint32(800), *tagged.Width)
	assert.Equal(t, uint32(600), *tagged.Height)

	untagged, err := st.FindPhotoByStorageKey(ctx, "photos/2026-01-05 Expo/ann/untagged.jpg")
	require.NoError(t, err)
	assert.Nil(t, untagged.Width)
}

func TestRunAs_SharesInFlightPass(t *testing.T) {
	release := make(chan struct{})
	lister := new(mocks.Lister)
	lister.On("List", mock.Anything, "photos/").
		Run(func(mock.Arguments) { <-release }).
		Return(objects("photos/2026-01-05 Expo/ann/1.jpg"), nil).Once()

	s := newTestSyncer(lister, newTestStore(t), Config{})

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	for i, trigger := range []Trigger{TriggerScheduled, TriggerHTTP} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.RunAs(context.Background(), trigger)
			assert.NoError(t, err)
			results[i] = res
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Same(t, results[0], results[1])
	lister.AssertNumberOfCalls(t, "List", 1)
}

func TestRun_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	p := parser.New(parser.Config{BasePath: "photos"}, "gallery")
	s := New(newStaticLister(objects("photos/2026-01-05 Expo/ann/1.jpg")), p, newTestStore(t), Config{}, zap.NewNop(), WithMetrics(m))

	_, err := s.RunAs(context.Background(), TriggerHTTP)
	require.NoError(t, err)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "gallery_sync_passes_total" {
			found = true
			require.Len(t, f.GetMetric(), 1)
			assert.Equal(t, 1.0, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}
