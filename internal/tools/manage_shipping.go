package tools

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"retailcore/pkg/domain"
)

// newTrackingNumber derives a carrier-style tracking code from a random
// UUID. Overridable in tests for deterministic shipments.
var newTrackingNumber = func() string {
	return fmt.Sprintf("TRK-%s", strings.ToUpper(uuid.NewString()[:8]))
}

type manageShipping struct{}

// NewManageShipping creates shipment records for sales orders and updates
// shipment status. Creation generates the tracking number and marks the
// shipment shipped.
func NewManageShipping() Tool {
	return manageShipping{}
}

func (manageShipping) Descriptor() Descriptor {
	return Descriptor{
		Name:        "manage_shipping",
		Description: "Generate shipping labels.",
		Kind:        KindSetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Enum: []string{"create", "update"}},
			{Name: "sales_order_id", Type: "string", Optional: true},
			{Name: "method", Type: "string", Optional: true},
			{Name: "status", Type: "string", Optional: true},
			{Name: "shipping_id", Type: "string", Optional: true},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "tracking_number", Type: "string"},
			{Name: "delta", Type: "object"},
		},
	}
}

func (manageShipping) Invoke(view domain.View, args map[string]any) Outcome {
	switch argString(args, "action") {
	case "create":
		tracking := newTrackingNumber()
		rec := domain.Record{
			"sales_order_id":  argString(args, "sales_order_id"),
			"method":          argString(args, "method"),
			"tracking_number": tracking,
			"status":          domain.ShippingShipped,
		}
		id, delta := buildCreate(view, domain.EntityShipping, rec)
		return success(map[string]any{"shipping_id": id, "tracking_number": tracking}, delta)

	case "update":
		id := argString(args, "shipping_id")
		patch := domain.Record{"status": argString(args, "status")}
		delta, ok := buildPatch(view, domain.EntityShipping, id, patch)
		if !ok {
			return failure("Invalid Shipping ID")
		}
		return success(nil, delta)
	}

	return invalidAction()
}
