// Package integrity provides health checks of the gallery infrastructure.
//
// # Checks Provided
//
//   - Storage: the bucket exists and the base path holds at least one object.
//   - Schema: the galleries, users and photos tables match the models (columns, types).
//   - Records: row counts of the gallery tables, and tables that are missing.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/records : Counts records.
package integrity
