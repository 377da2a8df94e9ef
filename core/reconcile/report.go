package reconcile

import (
	"fmt"
	"sync"
)

// Report collects per-item outcomes from concurrent workers. A failed item is
// recorded and never stops the others.
type Report struct {
	mu        sync.Mutex
	processed int
	errors    []string
}

// Processed counts n successfully handled items.
func (r *Report) Processed(n int) {
	r.mu.Lock()
	r.processed += n
	r.mu.Unlock()
}

// Fail records the failure of the item identified by key.
func (r *Report) Fail(entity, key string, err error) {
	r.mu.Lock()
	r.errors = append(r.errors, fmt.Sprintf("%s %s: %v", entity, key, err))
	r.mu.Unlock()
}

// Snapshot returns the processed count and a copy of the recorded errors.
func (r *Report) Snapshot() (int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	errs := make([]string, len(r.errors))
	copy(errs, r.errors)
	return r.processed, errs
}
