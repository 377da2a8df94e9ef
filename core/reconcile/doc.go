// Package reconcile provides the generic pieces of a storage-to-store reconciliation:
// key-set diffing, action plans, a concurrent outcome report and a TTL cache.
//
// # Diff and Plan
//
// Diff compares a target key set (what the listing says should exist) with a
// stored key set and produces create, update and delete actions. DiffOptions
// decides whether keys on both sides are updated or left alone and whether stored
// keys missing from the target are pruned. A Plan gathers the diffs of several
// entities and is what dry runs report.
//
// # Report
//
// Report is shared by the workers of a pass. Each worker records a processed item
// or a failure; a failure never stops the other workers.
//
// # Cache
//
// Cache keeps the result of an expensive build (a bucket listing folded into a
// model) for a TTL, with singleflight stampede protection.
//
// # Usage Example
//
//	var plan reconcile.Plan
//	plan.Add(reconcile.DiffOptions{Entity: "gallery", Prune: true}, targetFolders, storedFolders)
//	for _, a := range plan.Filter("gallery", reconcile.ActionDelete) {
//	    // delete a.Key
//	}
package reconcile
