package reconcile

// Add diffs one entity and appends its actions and summary to the plan.
func (p *Plan) Add(opts DiffOptions, target, stored KeySet) {
	actions, summary := Diff(opts, target, stored)
	p.Actions = append(p.Actions, actions...)
	p.Summary = append(p.Summary, summary)
}

// Filter returns the actions for entity of type t.
func (p *Plan) Filter(entity string, t ActionType) []Action {
	var out []Action
	for _, a := range p.Actions {
		if a.Entity == entity && a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// Keys returns the keys of the actions for entity of type t.
func (p *Plan) Keys(entity string, t ActionType) []string {
	actions := p.Filter(entity, t)
	keys := make([]string, 0, len(actions))
	for _, a := range actions {
		keys = append(keys, a.Key)
	}
	return keys
}

// For returns the summary of entity, or a zero summary when it was never added.
func (p *Plan) For(entity string) EntitySummary {
	for _, s := range p.Summary {
		if s.Entity == entity {
			return s
		}
	}
	return EntitySummary{Entity: entity}
}

// IsEmpty reports whether the plan has no mutations.
func (p *Plan) IsEmpty() bool {
	return len(p.Actions) == 0
}
