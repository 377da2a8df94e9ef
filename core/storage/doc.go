// Package storage provides the object storage layer.
//
// # Client
//
// Client is the subset of the MinIO API used for bucket checks and metadata;
// *minio.Client satisfies it directly and mocks.Client stands in for it in tests.
//
// # Lister
//
// Lister is the listing boundary of a sync pass. It pages through the bucket,
// converts every entry into a validated Object and returns the full slice. Two
// implementations exist:
//
//   - MinioLister (provider "minio"), on top of Client.
//   - S3Lister (provider "s3"), on top of aws-sdk-go-v2, for B2 and other
//     S3-compatible endpoints.
//
// Any listing failure is returned as errs.ErrKindStorageUnavailable. Entries with
// no key or timestamp and directory markers are dropped, never surfaced.
//
// # Usage
//
//	lister, err := storage.NewLister(ctx, cfg.Storage, nil)
//	objects, err := lister.List(ctx, "photos/")
package storage
