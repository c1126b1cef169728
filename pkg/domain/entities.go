// Package domain defines the entity model, delta/commit primitives, and
// rule evaluation types for the retail back-office simulation.
package domain

// EntityType identifies a named record category in the dataset.
type EntityType string

// Supported entity type identifiers used in Change records, deltas, and
// snapshot buckets.
const (
	// EntitySupplier identifies a supplier record.
	EntitySupplier EntityType = "suppliers"
	// EntityProduct identifies a catalog product record.
	EntityProduct EntityType = "products"
	// EntityUser identifies a staff or customer user record.
	EntityUser EntityType = "users"
	// EntityPurchaseOrder identifies an inbound purchase order header.
	EntityPurchaseOrder EntityType = "purchase_orders"
	// EntityPurchaseOrderItem identifies a purchase order line item.
	EntityPurchaseOrderItem EntityType = "purchase_order_items"
	// EntitySalesOrder identifies an outbound sales order header.
	EntitySalesOrder EntityType = "sales_orders"
	// EntitySalesOrderItem identifies a sales order line item.
	EntitySalesOrderItem EntityType = "sales_order_items"
	// EntityShipping identifies a shipment record for a sales order.
	EntityShipping EntityType = "shipping"
	// EntityApproval identifies an explicit authorization grant.
	EntityApproval EntityType = "approvals"
	// EntityAuditLog identifies an append-only audit trail entry.
	EntityAuditLog EntityType = "audit_logs"
)

// Common record field names shared across entity types.
const (
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldTimestamp = "timestamp"
	FieldStatus    = "status"
)

// Purchase order workflow statuses.
const (
	PurchaseOrderPending   = "pending"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

// Sales order workflow statuses.
const (
	SalesOrderPlaced     = "placed"
	SalesOrderProcessing = "processing"
	SalesOrderShipped    = "shipped"
	SalesOrderDelivered  = "delivered"
	SalesOrderCancelled  = "cancelled"
	SalesOrderReturned   = "returned"
)

// Shipment statuses mirror the sales order movement states.
const (
	ShippingShipped   = "shipped"
	ShippingDelivered = "delivered"
	ShippingReturned  = "returned"
)

// Approval ledger statuses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalDenied   = "denied"
)

// Staff and customer roles recognised by the role policy matrix. Role
// comparison is case-insensitive; these are the canonical lowercase forms.
const (
	RoleStoreManager          = "store manager"
	RoleFulfillmentSpecialist = "fulfillment specialist"
	RoleCustomerSupport       = "customer support"
	RoleCustomer              = "customer"
)
