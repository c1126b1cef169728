package tools

import (
	"fmt"

	"retailcore/pkg/domain"
)

type manageUsers struct{}

// NewManageUsers updates sensitive user profile fields. Only the update verb
// exists: users are seeded, never created through the interface.
func NewManageUsers() Tool {
	return manageUsers{}
}

func (manageUsers) Descriptor() Descriptor {
	return Descriptor{
		Name:        "manage_users",
		Description: "Updates sensitive user profile information.",
		Kind:        KindSetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Description: "Must be 'update'"},
			{Name: "user_id", Type: "string", Description: "ID of the user to update"},
			{Name: "changes", Type: "object", Description: "Dictionary of fields to change"},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "user_id", Type: "string"},
			{Name: "delta", Type: "object"},
		},
	}
}

func (manageUsers) Invoke(view domain.View, args map[string]any) Outcome {
	id := argString(args, "user_id")
	if _, ok := view.Get(domain.EntityUser, id); !ok {
		return failure(fmt.Sprintf("User ID %s not found.", id))
	}
	if argString(args, "action") != "update" {
		return failure("Only 'update' action is supported.")
	}

	// The changes map is staged verbatim. Commit refreshes updated_at, so the
	// produced delta carries only what the caller asked to change.
	changes := domain.Record(argObject(args, "changes")).Clone()
	if changes == nil {
		changes = domain.Record{}
	}
	return success(map[string]any{"user_id": id}, domain.NewDelta(domain.EntityUser, id, changes))
}
