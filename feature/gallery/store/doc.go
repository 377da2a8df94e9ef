// Package store is the metadata store gateway of the gallery index.
//
// Gateway holds the natural-key lookups and single-row writes the reconciler
// issues; Reader holds the joined queries behind the read endpoints. GormStore
// implements both on any database opened by core/database.
//
// A lookup miss is a normal outcome and returns (nil, nil). Errors are typed with
// core/errs so the reconciler can record them per item.
package store
