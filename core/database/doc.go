// Package database handles database connections, migrations and schema inspection.
//
// # Connect
//
// Connect opens a GORM connection for the configured driver:
//
//   - mysql (default), through gorm.io/driver/mysql
//   - postgres, through the pgx stdlib driver wrapped by gorm.io/driver/postgres
//   - sqlite, used by tests and single-node setups
//
// TranslateError is enabled so unique violations come back as gorm.ErrDuplicatedKey
// regardless of driver.
//
// # Migrations
//
// The gallery schema (galleries, users, photos) ships as embedded goose SQL
// migrations. Migrate applies them; the start command runs it when
// database.auto_migrate is set and the migrate command runs it on demand.
//
// # Schema Inspection
//
// GetTableColumns, ListTables and CountRows back the integrity feature, which
// compares the live schema with the gallery models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	if err := database.Migrate(ctx, db); err != nil {
//	    log.Fatal(err)
//	}
package database
