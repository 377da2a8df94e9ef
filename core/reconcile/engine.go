package reconcile

import "sort"

// Diff compares the target key set with the stored key set and returns the
// actions that would make the store match the target, sorted by key.
func Diff(opts DiffOptions, target, stored KeySet) ([]Action, EntitySummary) {
	summary := EntitySummary{Entity: opts.Entity, Target: len(target), Stored: len(stored)}
	union := buildUnion(target, stored)

	actions := make([]Action, 0, len(union))
	for _, key := range union {
		inTarget, inStore := target.Has(key), stored.Has(key)
		switch {
		case inTarget && !inStore:
			actions = append(actions, Action{Type: ActionCreate, Entity: opts.Entity, Key: key, Reason: "missing in store"})
			summary.Creates++
		case inTarget && inStore && opts.UpdateExisting:
			actions = append(actions, Action{Type: ActionUpdate, Entity: opts.Entity, Key: key, Reason: "present in listing"})
			summary.Updates++
		case inTarget && inStore:
			summary.Unchanged++
		case !inTarget && opts.Prune:
			actions = append(actions, Action{Type: ActionDelete, Entity: opts.Entity, Key: key, Reason: "absent from listing"})
			summary.Deletes++
		case !inTarget && opts.Cascade.Has(key):
			actions = append(actions, Action{Type: ActionDelete, Entity: opts.Entity, Key: key, Reason: "parent deleted"})
			summary.Deletes++
		default:
			summary.Unchanged++
		}
	}
	return actions, summary
}

// buildUnion returns every key from either side, sorted for deterministic output.
func buildUnion(target, stored KeySet) []string {
	union := make(map[string]struct{}, len(target)+len(stored))
	for key := range target {
		union[key] = struct{}{}
	}
	for key := range stored {
		union[key] = struct{}{}
	}

	keys := make([]string, 0, len(union))
	for key := range union {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
