package tools

import "retailcore/pkg/domain"

// Generic producer primitives. Every manage_* family is a thin veneer over
// these two: creation allocates the next identifier and stamps timestamps,
// update verifies existence and stages a patch with a refreshed updated_at.

func buildCreate(view domain.View, t domain.EntityType, fields domain.Record) (string, domain.Delta) {
	schema := domain.MustSchema(t)
	id := view.NextID(t)
	rec := fields.Clone()
	if rec == nil {
		rec = domain.Record{}
	}
	rec[schema.IDField] = id
	if schema.Timestamps {
		stamp := domain.FormatTimestamp(timeNow())
		rec[domain.FieldCreatedAt] = stamp
		rec[domain.FieldUpdatedAt] = stamp
	}
	return id, domain.NewDelta(t, id, rec)
}

func buildPatch(view domain.View, t domain.EntityType, id string, patch domain.Record) (domain.Delta, bool) {
	if id == "" {
		return nil, false
	}
	if _, ok := view.Get(t, id); !ok {
		return nil, false
	}
	schema := domain.MustSchema(t)
	p := patch.Clone()
	if p == nil {
		p = domain.Record{}
	}
	if schema.Timestamps {
		p[domain.FieldUpdatedAt] = domain.FormatTimestamp(timeNow())
	}
	return domain.NewDelta(t, id, p), true
}
