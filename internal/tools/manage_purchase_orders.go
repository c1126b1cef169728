package tools

import (
	"github.com/shopspring/decimal"

	"retailcore/pkg/domain"
)

// supplierCostRatio is the negotiated wholesale ratio: a purchase order line
// is costed at 70% of the product's retail unit price.
var supplierCostRatio = decimal.NewFromFloat(0.7)

type managePurchaseOrders struct{}

// NewManagePurchaseOrders manages purchase order headers and line items.
func NewManagePurchaseOrders() Tool {
	return managePurchaseOrders{}
}

func (managePurchaseOrders) Descriptor() Descriptor {
	return Descriptor{
		Name:        "manage_purchase_orders",
		Description: "Manage PO headers and items.",
		Kind:        KindSetter,
		Inputs: []Field{
			{Name: "action", Type: "string", Enum: []string{"create", "update", "add_item"}},
			{Name: "supplier_id", Type: "string", Optional: true},
			{Name: "status", Type: "string", Optional: true},
			{Name: "product_id", Type: "string", Optional: true},
			{Name: "quantity", Type: "integer", Optional: true},
			{Name: "purchase_order_id", Type: "string", Optional: true},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "delta", Type: "object"},
		},
	}
}

func (managePurchaseOrders) Invoke(view domain.View, args map[string]any) Outcome {
	switch argString(args, "action") {
	case "create":
		status := argString(args, "status")
		if status == "" {
			status = domain.PurchaseOrderPending
		}
		rec := domain.Record{
			"supplier_id": argString(args, "supplier_id"),
			"order_date":  timeNow().Format("2006-01-02"),
			"status":      status,
		}
		id, delta := buildCreate(view, domain.EntityPurchaseOrder, rec)
		return success(map[string]any{"purchase_order_id": id}, delta)

	case "update":
		id := argString(args, "purchase_order_id")
		patch := domain.Record{"status": argString(args, "status")}
		delta, ok := buildPatch(view, domain.EntityPurchaseOrder, id, patch)
		if !ok {
			return failure("Invalid PO ID")
		}
		return success(map[string]any{"purchase_order_id": id}, delta)

	case "add_item":
		poID := argString(args, "purchase_order_id")
		if poID == "" {
			return failure("Missing PO ID")
		}
		productID := argString(args, "product_id")
		unitCost := 0.0
		if product, ok := view.Get(domain.EntityProduct, productID); ok {
			unitCost = wholesaleCost(product)
		}
		rec := domain.Record{
			"purchase_order_id": poID,
			"product_id":        productID,
			"quantity":          argInt(args, "quantity"),
			"unit_cost":         unitCost,
		}
		id, delta := buildCreate(view, domain.EntityPurchaseOrderItem, rec)
		return success(map[string]any{"item_id": id}, delta)
	}

	return invalidAction()
}

// wholesaleCost computes supplierCostRatio × unit_price rounded to two
// decimals, in decimal arithmetic so .005 boundaries never drift.
func wholesaleCost(product domain.Record) float64 {
	price, ok := product.Number("unit_price")
	if !ok {
		return 0
	}
	cost, _ := decimal.NewFromFloat(price).Mul(supplierCostRatio).Round(2).Float64()
	return cost
}
