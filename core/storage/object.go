package storage

import (
	"context"
	"strings"
	"time"

	"gallery-sync/core/errs"
)

// Object is one entry of a bucket listing, validated at the listing boundary.
type Object struct {
	Key          string
	Size         uint64
	LastModified time.Time
	// Metadata holds custom object tags with lower-cased keys. Empty unless fetched.
	Metadata map[string]string
}

// Lister materializes the objects under a prefix. Implementations page internally
// and return the full result or an error of kind StorageUnavailable.
type Lister interface {
	List(ctx context.Context, prefix string) ([]Object, error)
	// Metadata returns the custom tags of a single object.
	Metadata(ctx context.Context, key string) (map[string]string, error)
}

// NewObject validates raw listing fields. Directory markers and entries with a
// missing key or timestamp are rejected with ErrKindMalformedKey.
func NewObject(key string, size int64, lastModified time.Time) (Object, error) {
	switch {
	case key == "":
		return Object{}, errs.New(errs.ErrKindMalformedKey, "object without key")
	case strings.HasSuffix(key, "/"):
		return Object{}, errs.New(errs.ErrKindMalformedKey, "directory marker "+key)
	case lastModified.IsZero():
		return Object{}, errs.New(errs.ErrKindMalformedKey, "object without timestamp "+key)
	case size < 0:
		return Object{}, errs.New(errs.ErrKindMalformedKey, "negative size "+key)
	}
	return Object{Key: key, Size: uint64(size), LastModified: lastModified}, nil
}

func normalizeMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.ToLower(k)
		k = strings.TrimPrefix(k, "x-amz-meta-")
		out[k] = v
	}
	return out
}
