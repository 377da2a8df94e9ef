// Package reconciler runs sync passes that merge the bucket listing into the
// relational store.
//
// A pass has four phases run strictly in order:
//
//  1. Discover: list the base path once, parse every key, project the target model.
//  2. Galleries: create the ones the store lacks. Existing galleries are never updated.
//  3. Users, then photos: create missing rows, refresh photo linkage on a bounded pool.
//  4. Prune: delete stored galleries absent from the listing, with their photos.
//
// Only a Discover failure aborts a pass. Any other failure is recorded against
// its item in Result.Errors and the pass carries on. Users are never pruned.
package reconciler
