package reconcile

import "sort"

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate inserts an entity present in the target but not stored.
	ActionCreate ActionType = "create"
	// ActionUpdate rewrites an entity present on both sides.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a stored entity absent from the target.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Entity names the kind of record (gallery, user, photo).
	Entity string `json:"entity"`

	// Key is the natural key of the record.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// KeySet is a set of natural keys.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet from keys.
func NewKeySet(keys ...string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the keys in ascending order.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DiffOptions controls how Diff treats each side of the comparison.
type DiffOptions struct {
	// Entity labels the produced actions.
	Entity string

	// UpdateExisting plans an update for keys present on both sides.
	// When false those keys are counted as unchanged.
	UpdateExisting bool

	// Prune plans a delete for stored keys absent from the target.
	Prune bool

	// Cascade lists stored keys removed along with a deleted parent. They
	// are planned as deletes even when Prune is false.
	Cascade KeySet
}

// EntitySummary provides aggregate counts for one entity.
type EntitySummary struct {
	Entity    string `json:"entity"`
	Target    int    `json:"target"`
	Stored    int    `json:"stored"`
	Creates   int    `json:"creates"`
	Updates   int    `json:"updates"`
	Deletes   int    `json:"deletes"`
	Unchanged int    `json:"unchanged"`
}

// Plan contains planned actions and per-entity summaries.
type Plan struct {
	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts per entity, in the order entities were added.
	Summary []EntitySummary `json:"summary"`
}
