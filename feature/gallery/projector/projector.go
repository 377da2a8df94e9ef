package projector

import (
	"gallery-sync/feature/gallery/parser"
)

// GalleryTarget is a gallery the store should hold after the pass.
type GalleryTarget struct {
	parser.GalleryCandidate
	// CoverImageURL is the public URL of the first image listed under the folder.
	CoverImageURL string
}

// UserPair records that a handle appeared under a gallery folder.
type UserPair struct {
	FolderName string
	Handle     string
}

// Model is the target state inferred from one listing.
type Model struct {
	Galleries []GalleryTarget
	// Users holds distinct handles in first-sighting order.
	Users  []string
	Pairs  []UserPair
	Photos []parser.PhotoCandidate
	// Skipped holds distinct folders without a date prefix; their photos are not indexed.
	Skipped []string
	// Orphaned counts image keys under skipped folders.
	Orphaned int
	// Rejected counts non-domain keys per reason.
	Rejected map[parser.Reason]int
}

// Projector folds parse outcomes into a Model, keeping the first sighting of
// every natural key.
type Projector struct {
	model     Model
	galleries map[string]struct{}
	users     map[string]struct{}
	pairs     map[UserPair]struct{}
	photos    map[string]struct{}
	skipped   map[string]struct{}
}

// New creates an empty Projector.
func New() *Projector {
	return &Projector{
		model:     Model{Rejected: make(map[parser.Reason]int)},
		galleries: make(map[string]struct{}),
		users:     make(map[string]struct{}),
		pairs:     make(map[UserPair]struct{}),
		photos:    make(map[string]struct{}),
		skipped:   make(map[string]struct{}),
	}
}

// Add folds one outcome into the model.
func (p *Projector) Add(o parser.Outcome) {
	if o.Kind == parser.KindRejected {
		p.model.Rejected[o.Reason]++
		return
	}

	photo := o.Photo
	if o.Gallery == nil {
		p.model.Orphaned++
		if _, seen := p.skipped[photo.FolderName]; !seen {
			p.skipped[photo.FolderName] = struct{}{}
			p.model.Skipped = append(p.model.Skipped, photo.FolderName)
		}
		return
	}

	if _, seen := p.galleries[o.Gallery.FolderName]; !seen {
		p.galleries[o.Gallery.FolderName] = struct{}{}
		p.model.Galleries = append(p.model.Galleries, GalleryTarget{
			GalleryCandidate: *o.Gallery,
			CoverImageURL:    photo.PublicURL,
		})
	}

	if _, seen := p.users[photo.UserHandle]; !seen {
		p.users[photo.UserHandle] = struct{}{}
		p.model.Users = append(p.model.Users, photo.UserHandle)
	}

	pair := UserPair{FolderName: photo.FolderName, Handle: photo.UserHandle}
	if _, seen := p.pairs[pair]; !seen {
		p.pairs[pair] = struct{}{}
		p.model.Pairs = append(p.model.Pairs, pair)
	}

	if _, seen := p.photos[photo.StorageKey]; !seen {
		p.photos[photo.StorageKey] = struct{}{}
		p.model.Photos = append(p.model.Photos, photo)
	}
}

// Model returns the folded target state.
func (p *Projector) Model() Model {
	return p.model
}

// Project folds outcomes in order.
func Project(outcomes []parser.Outcome) Model {
	p := New()
	for _, o := range outcomes {
		p.Add(o)
	}
	return p.Model()
}

// GalleryFolders returns the set of target folder names.
func (m Model) GalleryFolders() map[string]struct{} {
	set := make(map[string]struct{}, len(m.Galleries))
	for _, g := range m.Galleries {
		set[g.FolderName] = struct{}{}
	}
	return set
}

// RejectedTotal sums rejections over all reasons.
func (m Model) RejectedTotal() int {
	total := 0
	for _, n := range m.Rejected {
		total += n
	}
	return total
}
