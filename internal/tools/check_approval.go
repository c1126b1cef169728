package tools

import "retailcore/pkg/domain"

type checkApproval struct {
	gate *domain.Gate
}

// NewCheckApproval validates whether a requester is authorized for an
// action, via the role policy matrix with the approval ledger as fallback.
// The check is read-only and advisory: it produces no delta.
func NewCheckApproval() Tool {
	return checkApproval{gate: domain.NewGate()}
}

// NewCheckApprovalWithGate wires an explicit gate, letting a simulation run
// swap in a custom role matrix.
func NewCheckApprovalWithGate(gate *domain.Gate) Tool {
	return checkApproval{gate: gate}
}

func (checkApproval) Descriptor() Descriptor {
	return Descriptor{
		Name:        "check_approval",
		Description: "Validates if the requesting user has the necessary authorization for a specific action based on their role and domain policy rules.",
		Kind:        KindGetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Description: "The action being attempted (e.g., 'onboard_supplier', 'force_cancel')"},
			{Name: "requester_email", Type: "string", Description: "Email of the user requesting the action"},
		},
		Outputs: []Field{
			{Name: "approved", Type: "boolean"},
			{Name: "reason", Type: "string"},
		},
	}
}

func (t checkApproval) Invoke(view domain.View, args map[string]any) Outcome {
	decision := t.gate.Authorize(view, argString(args, "requester_email"), argString(args, "action"))
	return Outcome{
		Success: true,
		Fields: map[string]any{
			"approved": decision.Approved,
			"reason":   decision.Reason,
		},
	}
}
