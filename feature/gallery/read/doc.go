// Package read serves gallery listings through an ordered chain of strategies.
//
// Each strategy answers a query or reports why it could not: Served when it
// returned items, Empty when it had none, Unavailable when its backend failed.
// The chain stops at the first Served strategy. The default order is the
// relational store, then a sync pass followed by the store, then the bucket
// listing itself (degraded mode). Both fallbacks only run while the store is
// unreachable or holds no gallery, so reads of unknown keys on a populated
// index never start a pass or list the bucket.
package read
