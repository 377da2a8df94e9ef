// Package models holds the GORM models of the gallery index.
//
// Gallery, User and Photo map to the galleries, users and photos tables created
// by the embedded migrations. Every model carries a UUID surrogate id and a unique
// natural key (folder name, handle, storage key) that the reconciler matches on.
// The gorm tags also drive the schema integrity check, so column and type tags
// must stay in step with the migration SQL.
package models
