package integrity

import (
	"context"

	"gallery-sync/core/database"
	"gallery-sync/core/storage"
	"gallery-sync/feature/gallery/models"
	"gallery-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Tables are the tables whose records are counted.
var Tables = []string{"galleries", "users", "photos"}

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	bucket   string
	basePath string
	db       *gorm.DB
	logger   *zap.Logger
}

// NewService creates a new integrity service. db may be nil when the database
// is unreachable; the schema and record checks then report an error.
func NewService(client storage.Client, bucket, basePath string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		basePath: basePath,
		db:       db,
		logger:   logger,
	}
}

// CheckStorage reports whether the bucket and the base path are reachable.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket, s.basePath)
}

// FixStorage creates the base path marker.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixStorage(ctx, s.client, s.bucket, s.basePath, s.logger)
}

// CheckSchema compares the gallery tables with the models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	report, err := checks.CheckSchema(s.db, models.Schema()...)
	if err != nil {
		return nil, err
	}
	if v, err := database.SchemaVersion(ctx, s.db); err == nil {
		report.Version = v
	} else {
		s.logger.Debug("Schema version unavailable", zap.Error(err))
	}
	return report, nil
}

// CountRecords counts the rows of the gallery tables.
func (s *Service) CountRecords(ctx context.Context) (*checks.RecordsReport, error) {
	var db *gorm.DB
	if s.db != nil {
		db = s.db.WithContext(ctx)
	}
	return checks.CountRecords(db, Tables...)
}
