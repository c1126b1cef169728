package tools

import "retailcore/pkg/domain"

// discoverTool is the one discovery implementation shared by every entity
// type: exact-match filtering over the collection, results in store order,
// identifier backfilled onto each returned record.
type discoverTool struct {
	entity      domain.EntityType
	name        string
	description string
}

func newDiscoverTool(entity domain.EntityType, name, description string) Tool {
	return discoverTool{entity: entity, name: name, description: description}
}

func (t discoverTool) Descriptor() Descriptor {
	schema := domain.MustSchema(t.entity)
	return Descriptor{
		Name:        t.name,
		Description: t.description,
		Kind:        KindGetter,
		Inputs: []Field{
			{Name: "filters", Type: "object", Description: "Key-value pairs; every field must match exactly"},
		},
		Outputs: []Field{
			{Name: "success", Type: "boolean"},
			{Name: "count", Type: "integer"},
			{Name: schema.ResultField, Type: "array"},
		},
	}
}

func (t discoverTool) Invoke(view domain.View, args map[string]any) Outcome {
	schema := domain.MustSchema(t.entity)
	filters := argObject(args, "filters")
	results := make([]domain.Record, 0)
	for rec := range view.Find(t.entity, filters) {
		results = append(results, rec)
	}
	return success(map[string]any{
		"count":            len(results),
		schema.ResultField: results,
	}, nil)
}

// NewDiscoverUsers searches user records by exact-match filters.
func NewDiscoverUsers() Tool {
	return newDiscoverTool(domain.EntityUser, "discover_users",
		"Searches for user records based on specific filters (email, role, name).")
}

// NewDiscoverSuppliers searches supplier records.
func NewDiscoverSuppliers() Tool {
	return newDiscoverTool(domain.EntitySupplier, "discover_suppliers",
		"Searches for supplier records.")
}

// NewDiscoverProducts searches the product catalog.
func NewDiscoverProducts() Tool {
	return newDiscoverTool(domain.EntityProduct, "discover_products",
		"Searches catalog products by supplier, name, or price.")
}

// NewDiscoverPurchaseOrders searches inbound purchase orders.
func NewDiscoverPurchaseOrders() Tool {
	return newDiscoverTool(domain.EntityPurchaseOrder, "discover_purchase_orders",
		"Searches POs.")
}

// NewDiscoverSalesOrders searches outbound sales orders.
func NewDiscoverSalesOrders() Tool {
	return newDiscoverTool(domain.EntitySalesOrder, "discover_sales_orders",
		"Searches for sales orders (outbound B2C) to verify status for fulfillment, cancellation, or return processing.")
}

// NewDiscoverShipping searches shipment records; results are returned under
// the "shipments" field.
func NewDiscoverShipping() Tool {
	return newDiscoverTool(domain.EntityShipping, "discover_shipping",
		"Finds shipping records associated with a Sales Order. Used to retrieve tracking numbers or verify shipment details for returns.")
}
