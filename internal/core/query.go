package core

import (
	"iter"

	"retailcore/pkg/domain"
)

// stateView adapts a state map to the read-only domain.View contract. The
// wrapped state is either a detached clone (snapshots) or accessed under the
// store lock (internal helpers); either way every record leaving the view is
// a defensive copy carrying its identifier field.
type stateView struct {
	state state
}

func (v stateView) Get(t domain.EntityType, id string) (domain.Record, bool) {
	col, ok := v.state[t]
	if !ok {
		return nil, false
	}
	rec, ok := col.records[id]
	if !ok {
		return nil, false
	}
	return withID(t, id, rec), true
}

func (v stateView) List(t domain.EntityType) []domain.Record {
	col, ok := v.state[t]
	if !ok {
		return nil
	}
	out := make([]domain.Record, 0, len(col.order))
	for _, id := range col.order {
		out = append(out, withID(t, id, col.records[id]))
	}
	return out
}

// Find evaluates filters lazily over the collection in insertion order. The
// returned sequence is finite and restartable: each range re-walks the same
// snapshot. A record matches iff every filter field is present and exactly
// equal; an empty filter matches everything.
func (v stateView) Find(t domain.EntityType, filters map[string]any) iter.Seq[domain.Record] {
	return func(yield func(domain.Record) bool) {
		col, ok := v.state[t]
		if !ok {
			return
		}
		for _, id := range col.order {
			rec := col.records[id]
			if !matches(rec, filters) {
				continue
			}
			if !yield(withID(t, id, rec)) {
				return
			}
		}
	}
}

func (v stateView) NextID(t domain.EntityType) string {
	col, ok := v.state[t]
	if !ok {
		return ""
	}
	return domain.FormatID(col.nextID)
}

func matches(rec domain.Record, filters map[string]any) bool {
	for field, want := range filters {
		got, ok := rec[field]
		if !ok || !domain.ValueEqual(got, want) {
			return false
		}
	}
	return true
}

// withID copies a record and backfills its identifier field, so callers see
// the id even when the stored record omitted it.
func withID(t domain.EntityType, id string, rec domain.Record) domain.Record {
	out := rec.Clone()
	if out == nil {
		out = domain.Record{}
	}
	schema := domain.MustSchema(t)
	if _, ok := out[schema.IDField]; !ok {
		out[schema.IDField] = id
	}
	return out
}
