package core

import (
	"context"
	"fmt"

	"retailcore/pkg/domain"
)

// TimestampOrderRule enforces created_at <= updated_at on every changed
// record that carries both fields. The commit engine stamps updated_at with
// the commit clock, so the rule only ever fires on payloads that smuggle in
// inconsistent timestamps of their own.
func TimestampOrderRule() domain.Rule {
	return timestampOrderRule{}
}

type timestampOrderRule struct{}

func (timestampOrderRule) Name() string { return "timestamp_order" }

func (timestampOrderRule) Evaluate(_ context.Context, _ domain.View, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		created, okCreated := domain.ParseTimestamp(change.After[domain.FieldCreatedAt])
		updated, okUpdated := domain.ParseTimestamp(change.After[domain.FieldUpdatedAt])
		if !okCreated || !okUpdated {
			continue
		}
		if created.After(updated) {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "timestamp_order",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("%s %s created_at is after updated_at", change.Entity, change.ID),
				Entity:   change.Entity,
				EntityID: change.ID,
			})
		}
	}
	return res, nil
}
