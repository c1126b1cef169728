package core

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"retailcore/pkg/domain"
)

func serviceFixture(t *testing.T) *Service {
	t.Helper()
	store := NewStore(nil)
	snapshot := domain.Snapshot{
		domain.EntitySupplier: map[string]domain.Record{},
		domain.EntityUser: {
			"1": domain.Record{"user_id": "1", "email": "manager@example.com", "role": "Store Manager"},
			"2": domain.Record{"user_id": "2", "email": "ship@example.com", "role": "Fulfillment Specialist"},
			"3": domain.Record{"user_id": "3", "email": "customer@example.com", "role": "customer"},
		},
	}
	for i := 1; i <= 10; i++ {
		id := domain.FormatID(int64(i))
		snapshot[domain.EntitySupplier][id] = domain.Record{
			"supplier_id": id, "name": "Supplier " + id,
			"created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z",
		}
	}
	if err := store.Import(snapshot); err != nil {
		t.Fatalf("import: %v", err)
	}
	return NewService(store)
}

func TestInvokeGetterPassthrough(t *testing.T) {
	svc := serviceFixture(t)
	outcome := svc.Invoke(context.Background(), InvokeRequest{
		Tool: "discover_suppliers",
		Args: map[string]any{"filters": map[string]any{"name": "Supplier 3"}},
	})
	if !outcome.Success {
		t.Fatalf("discover failed: %s", outcome.Error)
	}
	if outcome.Fields["count"] != 1 {
		t.Fatalf("count = %v", outcome.Fields["count"])
	}
}

func TestInvokeUnknownTool(t *testing.T) {
	svc := serviceFixture(t)
	outcome := svc.Invoke(context.Background(), InvokeRequest{Tool: "drop_tables"})
	if outcome.Success || outcome.Error == "" {
		t.Fatalf("unknown tool outcome: %+v", outcome)
	}
}

func TestInvokeSetterCommitsAndAudits(t *testing.T) {
	svc := serviceFixture(t)
	outcome := svc.Invoke(context.Background(), InvokeRequest{
		Tool:       "manage_suppliers",
		ActorEmail: "manager@example.com",
		Args:       map[string]any{"action": "create", "supplier_name": "Fresh Farms"},
	})
	if !outcome.Success {
		t.Fatalf("create denied: %s", outcome.Error)
	}
	if outcome.Fields["supplier_id"] != "11" {
		t.Fatalf("supplier_id = %v, want 11", outcome.Fields["supplier_id"])
	}

	rec, ok := svc.Store().Get(domain.EntitySupplier, "11")
	if !ok || rec.String("name") != "Fresh Farms" {
		t.Fatalf("supplier not committed: %v", rec)
	}

	entries := svc.Store().List(domain.EntityAuditLog)
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.String("action") != "onboard_supplier" {
		t.Fatalf("audit action = %q", entry.String("action"))
	}
	if entry.String("user_email") != "manager@example.com" {
		t.Fatalf("audit user = %q", entry.String("user_email"))
	}
	if _, ok := domain.ParseTimestamp(entry["timestamp"]); !ok {
		t.Fatalf("audit timestamp missing: %v", entry)
	}
}

func TestInvokeSetterDeniedLeavesStoreUntouched(t *testing.T) {
	svc := serviceFixture(t)
	outcome := svc.Invoke(context.Background(), InvokeRequest{
		Tool:       "manage_suppliers",
		ActorEmail: "customer@example.com",
		Args:       map[string]any{"action": "create", "supplier_name": "Rogue"},
	})
	if outcome.Success {
		t.Fatal("customer create approved")
	}
	if !strings.Contains(outcome.Error, "not authorized") {
		t.Fatalf("error = %q", outcome.Error)
	}
	if len(svc.Store().List(domain.EntitySupplier)) != 10 {
		t.Fatal("denied invocation changed the store")
	}
	if len(svc.Store().List(domain.EntityAuditLog)) != 0 {
		t.Fatal("denied invocation audited")
	}
}

func TestInvokeFulfillmentScopedActions(t *testing.T) {
	svc := serviceFixture(t)

	// receive_inventory is in scope for fulfillment.
	outcome := svc.Invoke(context.Background(), InvokeRequest{
		Tool:       "manage_purchase_orders",
		ActorEmail: "manager@example.com",
		Args:       map[string]any{"action": "create", "supplier_id": "1"},
	})
	if !outcome.Success {
		t.Fatalf("manager PO create: %s", outcome.Error)
	}
	poID, _ := outcome.Fields["purchase_order_id"].(string)

	outcome = svc.Invoke(context.Background(), InvokeRequest{
		Tool:       "manage_purchase_orders",
		ActorEmail: "ship@example.com",
		Args:       map[string]any{"action": "add_item", "purchase_order_id": poID, "product_id": "", "quantity": 5},
	})
	if !outcome.Success {
		t.Fatalf("fulfillment add_item: %s", outcome.Error)
	}

	// Supplier onboarding is not.
	outcome = svc.Invoke(context.Background(), InvokeRequest{
		Tool:       "manage_suppliers",
		ActorEmail: "ship@example.com",
		Args:       map[string]any{"action": "create", "supplier_name": "Nope"},
	})
	if outcome.Success {
		t.Fatal("fulfillment onboarded a supplier")
	}
}

func TestInvokePurchaseFlowCostMath(t *testing.T) {
	svc := serviceFixture(t)
	ctx := context.Background()
	actor := "manager@example.com"

	outcome := svc.Invoke(ctx, InvokeRequest{
		Tool: "manage_products", ActorEmail: actor,
		Args: map[string]any{"action": "create", "name": "Widget", "supplier_id": "1", "unit_price": 19.99},
	})
	if !outcome.Success {
		t.Fatalf("product create: %s", outcome.Error)
	}
	productID, _ := outcome.Fields["product_id"].(string)

	outcome = svc.Invoke(ctx, InvokeRequest{
		Tool: "manage_purchase_orders", ActorEmail: actor,
		Args: map[string]any{"action": "create", "supplier_id": "1"},
	})
	if !outcome.Success {
		t.Fatalf("po create: %s", outcome.Error)
	}
	poID, _ := outcome.Fields["purchase_order_id"].(string)

	outcome = svc.Invoke(ctx, InvokeRequest{
		Tool: "manage_purchase_orders", ActorEmail: actor,
		Args: map[string]any{"action": "add_item", "purchase_order_id": poID, "product_id": productID, "quantity": 3},
	})
	if !outcome.Success {
		t.Fatalf("add_item: %s", outcome.Error)
	}
	itemID, _ := outcome.Fields["item_id"].(string)

	item, ok := svc.Store().Get(domain.EntityPurchaseOrderItem, itemID)
	if !ok {
		t.Fatal("item not committed")
	}
	cost, _ := item.Number("unit_cost")
	if cost != 13.99 {
		t.Fatalf("unit_cost = %v, want 13.99", cost)
	}
}

func TestInvokeCancelWithoutReasonDiscoverable(t *testing.T) {
	svc := serviceFixture(t)
	ctx := context.Background()

	delta := domain.Delta{}
	delta.Set(domain.EntitySalesOrder, "1", domain.Record{
		"user_id": "3", "status": domain.SalesOrderPlaced, "total_amount": 42.0,
	})
	if _, err := svc.Store().Commit(ctx, delta); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	outcome := svc.Invoke(ctx, InvokeRequest{
		Tool: "manage_sales_orders", ActorEmail: "manager@example.com",
		Args: map[string]any{"action": "update", "sales_order_id": "1", "status": domain.SalesOrderCancelled},
	})
	if !outcome.Success {
		t.Fatalf("cancel: %s", outcome.Error)
	}

	rec, _ := svc.Store().Get(domain.EntitySalesOrder, "1")
	if _, present := rec["cancel_reason"]; present {
		t.Fatalf("cancel_reason should be absent: %v", rec)
	}

	found := 0
	for range svc.Store().Snapshot().Find(domain.EntitySalesOrder, map[string]any{"status": domain.SalesOrderCancelled}) {
		found++
	}
	if found != 1 {
		t.Fatalf("cancelled order not discoverable: %d", found)
	}
}

func TestInvokeAuditTrailToolNotDoubleAudited(t *testing.T) {
	svc := serviceFixture(t)
	outcome := svc.Invoke(context.Background(), InvokeRequest{
		Tool:       "create_new_audit_trail",
		ActorEmail: "manager@example.com",
		Args: map[string]any{
			"action":     "manual_note",
			"details":    map[string]any{"note": "shift change"},
			"user_email": "manager@example.com",
		},
	})
	if !outcome.Success {
		t.Fatalf("audit tool: %s", outcome.Error)
	}
	if entries := svc.Store().List(domain.EntityAuditLog); len(entries) != 1 {
		t.Fatalf("audit entries = %d, want exactly the manual one", len(entries))
	}
}

func TestInvokeConcurrentCreatesAllocateDistinctIDs(t *testing.T) {
	svc := serviceFixture(t)
	const workers = 64

	var wg sync.WaitGroup
	errs := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome := svc.Invoke(context.Background(), InvokeRequest{
				Tool:       "manage_suppliers",
				ActorEmail: "manager@example.com",
				Args:       map[string]any{"action": "create", "supplier_name": "Supplier " + domain.FormatID(int64(100+i))},
			})
			if !outcome.Success {
				errs[i] = outcome.Error
			}
		}(i)
	}
	wg.Wait()

	for i, msg := range errs {
		if msg != "" {
			t.Fatalf("create %d failed: %s", i, msg)
		}
	}

	suppliers := svc.Store().List(domain.EntitySupplier)
	if len(suppliers) != 10+workers {
		t.Fatalf("suppliers = %d, want %d; colliding IDs merged inserts", len(suppliers), 10+workers)
	}
	seen := map[string]bool{}
	for _, rec := range suppliers {
		id := rec.String("supplier_id")
		if seen[id] {
			t.Fatalf("duplicate supplier_id %q", id)
		}
		seen[id] = true
	}

	entries := svc.Store().List(domain.EntityAuditLog)
	if len(entries) != workers {
		t.Fatalf("audit entries = %d, want one per committed create", len(entries))
	}
}

type captureMetrics struct {
	mu    sync.Mutex
	calls []string
}

func (m *captureMetrics) Observe(_ context.Context, operation string, success bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, operation)
}

func TestInvokeObservesMetrics(t *testing.T) {
	metrics := &captureMetrics{}
	store := NewStore(nil)
	svc := NewService(store, WithMetrics(metrics))

	svc.Invoke(context.Background(), InvokeRequest{Tool: "discover_users", Args: map[string]any{}})
	svc.Invoke(context.Background(), InvokeRequest{Tool: "nope"})

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	if len(metrics.calls) != 2 || metrics.calls[0] != "discover_users" || metrics.calls[1] != "nope" {
		t.Fatalf("observed %v", metrics.calls)
	}
}
