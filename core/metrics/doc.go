// Package metrics exposes Prometheus collectors for sync passes and read
// fallbacks, plus the fiber handler serving them.
package metrics
