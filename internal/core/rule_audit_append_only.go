package core

import (
	"context"
	"fmt"

	"retailcore/pkg/domain"
)

// AuditAppendOnlyRule rejects any delta that patches an existing audit log
// entry. The audit trail is an ordinary entity type on the ordinary commit
// path, but once written an entry is immutable.
func AuditAppendOnlyRule() domain.Rule {
	return auditAppendOnlyRule{}
}

type auditAppendOnlyRule struct{}

func (auditAppendOnlyRule) Name() string { return "audit_append_only" }

func (auditAppendOnlyRule) Evaluate(_ context.Context, _ domain.View, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityAuditLog || change.Action != domain.ActionUpdate {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "audit_append_only",
			Severity: domain.SeverityBlock,
			Message:  fmt.Sprintf("audit log entry %s cannot be modified", change.ID),
			Entity:   change.Entity,
			EntityID: change.ID,
		})
	}
	return res, nil
}
