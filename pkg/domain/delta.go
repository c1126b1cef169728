package domain

// Delta is a proposed, uncommitted set of record insertions and patches,
// keyed by entity type and then by identifier. A full record under a new
// identifier is an insertion; a partial field mapping under an existing
// identifier is a patch merged shallowly onto the stored record. A Delta is
// pure data: it has no effect until submitted to Store.Commit.
type Delta map[EntityType]map[string]Record

// NewDelta builds a delta holding a single entry.
func NewDelta(t EntityType, id string, payload Record) Delta {
	return Delta{t: {id: payload}}
}

// Set records an insertion or patch, replacing any previous payload staged
// for the same (type, id) pair.
func (d Delta) Set(t EntityType, id string, payload Record) {
	sub, ok := d[t]
	if !ok {
		sub = make(map[string]Record)
		d[t] = sub
	}
	sub[id] = payload
}

// Merge folds another delta into this one. Later payloads for the same
// (type, id) pair win wholesale; this mirrors last-writer semantics within a
// single simulation step.
func (d Delta) Merge(other Delta) {
	for t, sub := range other {
		for id, payload := range sub {
			d.Set(t, id, payload)
		}
	}
}

// Clone deep-copies the delta so callers can stage further edits without
// aliasing records already handed to the commit engine.
func (d Delta) Clone() Delta {
	if d == nil {
		return nil
	}
	out := make(Delta, len(d))
	for t, sub := range d {
		cp := make(map[string]Record, len(sub))
		for id, payload := range sub {
			cp[id] = payload.Clone()
		}
		out[t] = cp
	}
	return out
}

// Empty reports whether the delta stages no changes at all.
func (d Delta) Empty() bool {
	for _, sub := range d {
		if len(sub) > 0 {
			return false
		}
	}
	return true
}
