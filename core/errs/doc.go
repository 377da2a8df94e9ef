// Package errs provides the error type shared by the storage, store and sync layers.
//
// Backends wrap their native errors into *errs.Error so that the reconciler can
// tell a fatal listing failure from a per-item store failure without importing
// driver packages.
//
//	if errs.IsStorageUnavailable(err) {
//	    return nil, err // abort the pass
//	}
//	if errs.IsRecordConflict(err) {
//	    // another writer created the row first
//	}
package errs
