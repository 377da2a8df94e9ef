package storage

import (
	"context"
	"errors"
	"net/http"

	"gallery-sync/core/errs"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/minio/minio-go/v7"
)

// mapError translates a MinIO or S3 SDK error into a *errs.Error.
// Missing objects become NotFound; everything else, including timeouts and
// auth failures, makes storage unavailable for this pass.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindStorageUnavailable, msg, err)
	}

	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		if resp.StatusCode == http.StatusNotFound {
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		}
		switch resp.Code {
		case "NoSuchBucket", "NoSuchKey":
			return errs.Wrap(errs.ErrKindNotFound, msg, err)
		}
	}

	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noKey) || errors.As(err, &notFound) || errors.As(err, &noBucket) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	return errs.Wrap(errs.ErrKindStorageUnavailable, msg, err)
}

// listError forces listing failures to StorageUnavailable: a missing bucket
// aborts the pass the same way an outage does.
func listError(err error, msg string) *errs.Error {
	mapped := mapError(err, msg)
	if mapped.Kind != errs.ErrKindStorageUnavailable {
		mapped.Kind = errs.ErrKindStorageUnavailable
	}
	return mapped
}
