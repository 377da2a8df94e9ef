package read

import (
	"context"

	"gallery-sync/feature/gallery/models"
)

// Outcome is what a strategy did with a query.
type Outcome int

const (
	Served Outcome = iota
	Empty
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Served:
		return "served"
	case Empty:
		return "empty"
	default:
		return "unavailable"
	}
}

// MarshalText renders the outcome by name in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Classify maps a strategy answer to its outcome.
func Classify(n int, err error) Outcome {
	switch {
	case err != nil:
		return Unavailable
	case n == 0:
		return Empty
	default:
		return Served
	}
}

// Strategy is one way of answering read queries.
type Strategy interface {
	Name() string
	Galleries(ctx context.Context) ([]models.GalleryView, error)
	PhotosByGallery(ctx context.Context, folder string) ([]models.PhotoView, error)
	PhotosByUser(ctx context.Context, handle string) ([]models.PhotoView, error)
}
