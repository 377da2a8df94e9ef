package gallery

import (
	"context"
	"fmt"

	"gallery-sync/core/errs"
)

// Detail compares one gallery across the database and the bucket listing.
type Detail struct {
	FolderName   string   `json:"folder_name"`
	Title        string   `json:"title"`
	EventDate    string   `json:"event_date"`
	Protected    bool     `json:"protected"`
	InStore      bool     `json:"in_store"`
	InStorage    bool     `json:"in_storage"`
	StoredPhotos int      `json:"stored_photos"`
	ListedPhotos int      `json:"listed_photos"`
	Status       string   `json:"status"` // "OK", "WARNING", "FAIL"
	Mismatches   []string `json:"mismatches"`
}

// Detail reports whether folder is indexed, listed, and whether both sides agree.
func (s *Service) Detail(ctx context.Context, folder string) (*Detail, error) {
	g, err := s.store.FindGalleryByFolder(ctx, folder)
	if err != nil {
		return nil, err
	}
	d, err := s.syncer.Discover(ctx)
	if err != nil {
		return nil, err
	}

	report := &Detail{FolderName: folder, Mismatches: []string{}}
	if g != nil {
		report.InStore = true
		report.Title = g.Title
		report.EventDate = g.EventDate
		report.Protected = g.HasPIN()
		photos, err := s.store.ListPhotosByGallery(ctx, folder)
		if err != nil {
			return nil, err
		}
		report.StoredPhotos = len(photos)
	}

	for _, t := range d.Model.Galleries {
		if t.FolderName != folder {
			continue
		}
		report.InStorage = true
		if !report.InStore {
			report.Title = t.Title
			report.EventDate = t.EventDate
		} else {
			if t.Title != report.Title {
				report.Mismatches = append(report.Mismatches, fmt.Sprintf("title: stored %q, listed %q", report.Title, t.Title))
			}
			if t.EventDate != report.EventDate {
				report.Mismatches = append(report.Mismatches, fmt.Sprintf("event date: stored %s, listed %s", report.EventDate, t.EventDate))
			}
		}
		break
	}
	for _, p := range d.Model.Photos {
		if p.FolderName == folder {
			report.ListedPhotos++
		}
	}

	switch {
	case !report.InStore && !report.InStorage:
		return nil, errs.New(errs.ErrKindNotFound, "gallery "+folder)
	case !report.InStore:
		report.Mismatches = append(report.Mismatches, "missing in database")
	case !report.InStorage:
		report.Mismatches = append(report.Mismatches, "missing in storage")
	}
	if report.StoredPhotos != report.ListedPhotos {
		report.Mismatches = append(report.Mismatches, fmt.Sprintf("photos: stored %d, listed %d", report.StoredPhotos, report.ListedPhotos))
	}

	switch {
	case !report.InStore || !report.InStorage:
		report.Status = "FAIL"
	case len(report.Mismatches) > 0:
		report.Status = "WARNING"
	default:
		report.Status = "OK"
	}
	return report, nil
}
