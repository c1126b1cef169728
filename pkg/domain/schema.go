package domain

import "fmt"

// ForeignKey declares that a record field must reference an existing record
// of the target entity type at commit time.
type ForeignKey struct {
	Field  string
	Target EntityType
}

// Schema describes the fixed shape of one entity type. The commit engine and
// the generic delta producers are driven entirely by these descriptors; no
// per-entity create/update logic exists anywhere else.
type Schema struct {
	Type EntityType
	// IDField is the record's own identifier field (e.g. supplier_id).
	IDField string
	// ForeignKeys are validated against the candidate state on every commit.
	ForeignKeys []ForeignKey
	// Timestamps controls whether the commit engine maintains created_at and
	// updated_at on the records of this type. Audit entries opt out: they
	// carry a single timestamp and are never patched.
	Timestamps bool
	// ResultField is the plural field name under which discovery results are
	// returned at the tool boundary ("suppliers", "shipments", ...).
	ResultField string
}

var registry = []Schema{
	{Type: EntitySupplier, IDField: "supplier_id", Timestamps: true, ResultField: "suppliers"},
	{Type: EntityProduct, IDField: "product_id", Timestamps: true, ResultField: "products",
		ForeignKeys: []ForeignKey{{Field: "supplier_id", Target: EntitySupplier}}},
	{Type: EntityUser, IDField: "user_id", Timestamps: true, ResultField: "users"},
	{Type: EntityPurchaseOrder, IDField: "purchase_order_id", Timestamps: true, ResultField: "purchase_orders",
		ForeignKeys: []ForeignKey{{Field: "supplier_id", Target: EntitySupplier}}},
	{Type: EntityPurchaseOrderItem, IDField: "po_item_id", Timestamps: true, ResultField: "purchase_order_items",
		ForeignKeys: []ForeignKey{
			{Field: "purchase_order_id", Target: EntityPurchaseOrder},
			{Field: "product_id", Target: EntityProduct},
		}},
	{Type: EntitySalesOrder, IDField: "sales_order_id", Timestamps: true, ResultField: "sales_orders",
		ForeignKeys: []ForeignKey{{Field: "user_id", Target: EntityUser}}},
	{Type: EntitySalesOrderItem, IDField: "so_item_id", Timestamps: true, ResultField: "sales_order_items",
		ForeignKeys: []ForeignKey{
			{Field: "sales_order_id", Target: EntitySalesOrder},
			{Field: "product_id", Target: EntityProduct},
		}},
	{Type: EntityShipping, IDField: "shipping_id", Timestamps: true, ResultField: "shipments",
		ForeignKeys: []ForeignKey{{Field: "sales_order_id", Target: EntitySalesOrder}}},
	{Type: EntityApproval, IDField: "approval_id", Timestamps: true, ResultField: "approvals"},
	{Type: EntityAuditLog, IDField: "audit_id", Timestamps: false, ResultField: "audit_logs"},
}

var schemaIndex = func() map[EntityType]Schema {
	idx := make(map[EntityType]Schema, len(registry))
	for _, s := range registry {
		idx[s.Type] = s
	}
	return idx
}()

// Registry returns every entity schema in canonical (dependency) order.
func Registry() []Schema {
	out := make([]Schema, len(registry))
	copy(out, registry)
	return out
}

// SchemaFor looks up the schema of an entity type.
func SchemaFor(t EntityType) (Schema, bool) {
	s, ok := schemaIndex[t]
	return s, ok
}

// MustSchema returns the schema for a known entity type and panics otherwise.
// It is intended for registration-time wiring, not request handling.
func MustSchema(t EntityType) Schema {
	s, ok := schemaIndex[t]
	if !ok {
		panic(fmt.Sprintf("unknown entity type %q", t))
	}
	return s
}
