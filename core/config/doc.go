// Package config loads the application configuration.
//
// Values come from a .env file when present, then from environment variables
// mapped onto nested keys (STORAGE_BUCKET -> storage.bucket). Defaults are
// read from the `default` struct tag of every field.
//
// # Configuration Structure
//
//   - Server: HTTP port, admin API key, metrics path
//   - Storage: provider, endpoint, credentials, bucket, page size
//   - Gallery: base path and public URL of the gallery tree
//   - Sync: scheduler interval, workers, prune guard, on-demand reads
//   - Database: driver (mysql, postgres, sqlite) and connection details
//   - Log: level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
