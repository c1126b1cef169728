package tools

import "retailcore/pkg/domain"

type createAuditTrail struct{}

// NewCreateAuditTrail appends one audit log entry for a state-changing
// action. The audit trail is an ordinary entity type: the entry flows
// through the same allocator and commit path as any other record.
func NewCreateAuditTrail() Tool {
	return createAuditTrail{}
}

func (createAuditTrail) Descriptor() Descriptor {
	return Descriptor{
		Name:        "create_new_audit_trail",
		Description: "Logs a state-changing event for compliance. Must be called after Create/Update/Delete.",
		Kind:        KindSetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Description: "Name of the action performed"},
			{Name: "details", Type: "object", Description: "Specific details (e.g., ID created, fields changed)"},
			{Name: "user_email", Type: "string", Description: "Email of the user who performed the action"},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "audit_id", Type: "string"},
			{Name: "delta", Type: "object"},
		},
	}
}

func (createAuditTrail) Invoke(view domain.View, args map[string]any) Outcome {
	id := view.NextID(domain.EntityAuditLog)
	entry := domain.Record{
		"audit_id":            id,
		"action":              argString(args, "action"),
		"user_email":          argString(args, "user_email"),
		"details":             argObject(args, "details"),
		domain.FieldTimestamp: domain.FormatTimestamp(timeNow()),
	}
	return success(map[string]any{"audit_id": id}, domain.NewDelta(domain.EntityAuditLog, id, entry))
}
