package core

import (
	"context"
	"fmt"

	"retailcore/pkg/domain"
)

// ReferentialIntegrityRule verifies that every declared foreign-key field on
// a changed record resolves to an existing record of the target entity type
// in the candidate state. Because the whole delta is applied before rules
// run, records inside one delta may reference each other freely.
func ReferentialIntegrityRule() domain.Rule {
	return referentialIntegrityRule{}
}

type referentialIntegrityRule struct{}

func (referentialIntegrityRule) Name() string { return "referential_integrity" }

func (referentialIntegrityRule) Evaluate(_ context.Context, view domain.View, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		schema, ok := domain.SchemaFor(change.Entity)
		if !ok {
			continue
		}
		for _, fk := range schema.ForeignKeys {
			raw, present := change.After[fk.Field]
			if !present || raw == nil {
				continue
			}
			ref, ok := raw.(string)
			if !ok {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "referential_integrity",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("%s %s field %s is not an identifier", change.Entity, change.ID, fk.Field),
					Entity:   change.Entity,
					EntityID: change.ID,
				})
				continue
			}
			if ref == "" {
				continue
			}
			if _, found := view.Get(fk.Target, ref); !found {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "referential_integrity",
					Severity: domain.SeverityBlock,
					Message:  fmt.Sprintf("%s %s references missing %s %s via %s", change.Entity, change.ID, fk.Target, ref, fk.Field),
					Entity:   change.Entity,
					EntityID: change.ID,
				})
			}
		}
	}
	return res, nil
}
