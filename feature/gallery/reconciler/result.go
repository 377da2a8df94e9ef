package reconciler

import "sync/atomic"

// Trigger names what started a pass.
type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
	TriggerHTTP      Trigger = "http"
	TriggerRead      Trigger = "read"
)

// Entity labels used in errors, plans and metrics.
const (
	EntityGallery = "gallery"
	EntityUser    = "user"
	EntityPhoto   = "photo"
	EntityPrune   = "prune"
)

// Stats breaks a pass down per phase.
type Stats struct {
	Listed           int   `json:"listed"`
	Rejected         int   `json:"rejected"`
	SkippedFolders   int   `json:"skipped_folders"`
	OrphanedPhotos   int   `json:"orphaned_photos"`
	GalleriesCreated int   `json:"galleries_created"`
	GalleriesDeleted int   `json:"galleries_deleted"`
	UsersCreated     int   `json:"users_created"`
	PhotosCreated    int   `json:"photos_created"`
	PhotosUpdated    int   `json:"photos_updated"`
	PhotosUnchanged  int   `json:"photos_unchanged"`
	Conflicts        int   `json:"conflicts"`
	DurationMillis   int64 `json:"duration_ms"`
}

// Result is the outcome of a completed pass. A non-empty Errors list is a
// partial success, not a failed pass.
type Result struct {
	PassID    string   `json:"pass_id"`
	Trigger   Trigger  `json:"trigger"`
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	Stats     Stats    `json:"stats"`
}

// OK reports whether every item was synced.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

type counters struct {
	galleriesCreated atomic.Int64
	galleriesDeleted atomic.Int64
	usersCreated     atomic.Int64
	photosCreated    atomic.Int64
	photosUpdated    atomic.Int64
	photosUnchanged  atomic.Int64
	conflicts        atomic.Int64
}

func (c *counters) apply(s *Stats) {
	s.GalleriesCreated = int(c.galleriesCreated.Load())
	s.GalleriesDeleted = int(c.galleriesDeleted.Load())
	s.UsersCreated = int(c.usersCreated.Load())
	s.PhotosCreated = int(c.photosCreated.Load())
	s.PhotosUpdated = int(c.photosUpdated.Load())
	s.PhotosUnchanged = int(c.photosUnchanged.Load())
	s.Conflicts = int(c.conflicts.Load())
}
