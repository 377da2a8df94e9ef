package database

import (
	"context"
	"database/sql"
	"fmt"

	"gallery-sync/core/database/migrations"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// gooseUpContext is swapped in tests.
var gooseUpContext = goose.UpContext

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := prepareGoose(db)
	if err != nil {
		return err
	}
	if err := gooseUpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// SchemaVersion returns the latest applied migration version.
func SchemaVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := prepareGoose(db)
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

func prepareGoose(db *gorm.DB) (*sql.DB, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(gooseDialect(db.Dialector.Name())); err != nil {
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	return sqlDB, nil
}

func gooseDialect(name string) string {
	if name == DriverSQLite {
		return "sqlite3"
	}
	return name
}
