package storage

import (
	"context"

	"github.com/minio/minio-go/v7"
)

// MinioLister lists objects through the MinIO client.
type MinioLister struct {
	client   Client
	bucket   string
	pageSize int
}

// NewMinioLister creates a lister for bucket using client.
func NewMinioLister(client Client, bucket string, pageSize int) *MinioLister {
	return &MinioLister{
		client:   client,
		bucket:   bucket,
		pageSize: Config{PageSize: pageSize}.pageSize(),
	}
}

// List returns every valid object under prefix, in listing order.
func (l *MinioLister) List(ctx context.Context, prefix string) ([]Object, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
		MaxKeys:   l.pageSize,
	}

	var objects []Object
	for info := range l.client.ListObjects(ctx, l.bucket, opts) {
		if info.Err != nil {
			return nil, listError(info.Err, "list objects")
		}
		obj, err := NewObject(info.Key, info.Size, info.LastModified)
		if err != nil {
			continue
		}
		if len(info.UserMetadata) > 0 {
			obj.Metadata = normalizeMetadata(info.UserMetadata)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// Metadata returns the custom tags of key.
func (l *MinioLister) Metadata(ctx context.Context, key string) (map[string]string, error) {
	info, err := l.client.StatObject(ctx, l.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, mapError(err, "stat object "+key)
	}
	return normalizeMetadata(info.UserMetadata), nil
}
