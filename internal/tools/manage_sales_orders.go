package tools

import "retailcore/pkg/domain"

type manageSalesOrders struct{}

// NewManageSalesOrders updates a sales order's workflow status. A missing
// cancel_reason is left unset on the record; the status change still lands.
func NewManageSalesOrders() Tool {
	return manageSalesOrders{}
}

func (manageSalesOrders) Descriptor() Descriptor {
	return Descriptor{
		Name:        "manage_sales_orders",
		Description: "Update Sales Order status.",
		Kind:        KindSetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Enum: []string{"update"}},
			{Name: "sales_order_id", Type: "string"},
			{Name: "status", Type: "string"},
			{Name: "cancel_reason", Type: "string", Optional: true},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "sales_order_id", Type: "string"},
			{Name: "delta", Type: "object"},
		},
	}
}

func (manageSalesOrders) Invoke(view domain.View, args map[string]any) Outcome {
	id := argString(args, "sales_order_id")
	if _, ok := view.Get(domain.EntitySalesOrder, id); !ok {
		return failure("Order not found")
	}
	if argString(args, "action") != "update" {
		return invalidAction()
	}

	patch := domain.Record{"status": argString(args, "status")}
	if reason := argString(args, "cancel_reason"); reason != "" {
		patch["cancel_reason"] = reason
	}
	delta, ok := buildPatch(view, domain.EntitySalesOrder, id, patch)
	if !ok {
		return failure("Order not found")
	}
	return success(map[string]any{"sales_order_id": id}, delta)
}
