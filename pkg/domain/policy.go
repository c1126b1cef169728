package domain

import (
	"fmt"
	"strings"
)

// Decision is the authorization gate's answer for one (requester, action)
// pair. The reason is part of the boundary contract and is surfaced to the
// caller verbatim.
type Decision struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// Wildcard marks a role as authorized for every action.
const Wildcard = "*"

// DefaultRoleMatrix is the static role policy: store managers hold the
// wildcard, fulfillment handles order movement, customer support handles
// cancellations and PII changes. Customers hold nothing and rely on the
// approval ledger.
func DefaultRoleMatrix() map[string][]string {
	return map[string][]string{
		RoleStoreManager:          {Wildcard},
		RoleFulfillmentSpecialist: {"create_shipping", "update_order_status", "receive_inventory"},
		RoleCustomerSupport:       {"force_cancel", "update_pii"},
	}
}

// Gate decides whether a requester may perform an action. Role policy is
// consulted first; the approval ledger is a fallback for actions the role
// does not cover. The gate is advisory at the tool boundary: commit does not
// re-check it.
type Gate struct {
	matrix map[string][]string
}

// NewGate builds a gate over the default role matrix.
func NewGate() *Gate {
	return &Gate{matrix: DefaultRoleMatrix()}
}

// NewGateWithMatrix builds a gate over a custom role matrix. Role names are
// matched case-insensitively.
func NewGateWithMatrix(matrix map[string][]string) *Gate {
	normalized := make(map[string][]string, len(matrix))
	for role, actions := range matrix {
		normalized[strings.ToLower(role)] = append([]string(nil), actions...)
	}
	return &Gate{matrix: normalized}
}

// Authorize resolves the requester by exact email match, checks the role
// matrix, then scans the approval ledger for an explicit approved grant.
func (g *Gate) Authorize(view View, requesterEmail, action string) Decision {
	var requester Record
	for user := range view.Find(EntityUser, map[string]any{"email": requesterEmail}) {
		requester = user
		break
	}
	if requester == nil {
		return Decision{Approved: false, Reason: fmt.Sprintf("User %s not found.", requesterEmail)}
	}

	role := strings.ToLower(requester.String("role"))
	allowed := g.matrix[role]
	for _, a := range allowed {
		if a == Wildcard {
			return Decision{Approved: true, Reason: "Role authorized (Admin)"}
		}
		if a == action {
			return Decision{Approved: true, Reason: "Role authorized"}
		}
	}

	for appr := range view.Find(EntityApproval, map[string]any{
		"requester_email": requesterEmail,
		"action":          action,
		"status":          ApprovalApproved,
	}) {
		return Decision{
			Approved: true,
			Reason:   fmt.Sprintf("Explicit approval found: %s", appr.String("approval_code")),
		}
	}

	return Decision{
		Approved: false,
		Reason:   fmt.Sprintf("Role '%s' is not authorized for '%s' and no explicit approval found.", role, action),
	}
}
