package checks

import (
	"bytes"
	"context"
	"fmt"

	"gallery-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes whether the gallery tree is reachable.
type StorageReport struct {
	Bucket          string `json:"bucket"`
	BasePath        string `json:"base_path"`
	BasePathPresent bool   `json:"base_path_present"`
	Status          string `json:"status"` // "ok", "missing"
}

// CheckStorage verifies that the bucket exists and holds at least one object
// under basePath.
func CheckStorage(ctx context.Context, client storage.Client, bucket, basePath string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &StorageReport{Bucket: bucket, BasePath: basePath, Status: "ok"}

	opts := minio.ListObjectsOptions{
		Prefix:    prefix(basePath),
		Recursive: false,
		MaxKeys:   1,
	}
	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for info := range client.ListObjects(listCtx, bucket, opts) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", opts.Prefix, info.Err)
		}
		report.BasePathPresent = true
		break
	}
	if !report.BasePathPresent {
		report.Status = "missing"
	}
	return report, nil
}

// FixStorage creates an empty marker for the base path so uploads have a
// visible root.
func FixStorage(ctx context.Context, client storage.Client, bucket, basePath string, logger *zap.Logger) error {
	marker := prefix(basePath)
	if marker == "" {
		return nil
	}
	if _, err := client.PutObject(ctx, bucket, marker, bytes.NewReader(nil), 0, minio.PutObjectOptions{}); err != nil {
		logger.Error("Failed to create base path", zap.String("path", marker), zap.Error(err))
		return err
	}
	logger.Info("Created base path marker", zap.String("path", marker))
	return nil
}

func prefix(basePath string) string {
	if basePath == "" {
		return ""
	}
	return basePath + "/"
}
