package seed

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcore/pkg/domain"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := Generate(cfg)
	b := Generate(cfg)
	require.True(t, reflect.DeepEqual(a, b), "same config must produce identical snapshots")

	cfg.Seed = 7
	c := Generate(cfg)
	assert.False(t, reflect.DeepEqual(a, c), "different seed should change the dataset")
}

func TestGenerateDenseIdentifiers(t *testing.T) {
	snapshot := Generate(DefaultConfig())
	for _, schema := range domain.Registry() {
		coll := snapshot[schema.Type]
		for i := 1; i <= len(coll); i++ {
			id := domain.FormatID(int64(i))
			_, ok := coll[id]
			require.Truef(t, ok, "%s: identifier %s missing from dense range", schema.Type, id)
		}
	}
}

func TestGenerateStaffRoles(t *testing.T) {
	snapshot := Generate(DefaultConfig())
	users := snapshot[domain.EntityUser]
	require.Len(t, users, 15)

	assert.Equal(t, "Store Manager", users["1"].String("role"))
	assert.Equal(t, "Fulfillment Specialist", users["2"].String("role"))
	assert.Equal(t, "Customer Support", users["3"].String("role"))
	for i := 4; i <= 15; i++ {
		assert.Equal(t, "customer", users[domain.FormatID(int64(i))].String("role"))
	}
}

func TestGenerateReferentialIntegrity(t *testing.T) {
	snapshot := Generate(DefaultConfig())
	for _, schema := range domain.Registry() {
		for id, rec := range snapshot[schema.Type] {
			for _, fk := range schema.ForeignKeys {
				ref := rec.String(fk.Field)
				if ref == "" {
					continue
				}
				_, ok := snapshot[fk.Target][ref]
				assert.Truef(t, ok, "%s %s: dangling %s -> %s %s", schema.Type, id, fk.Field, fk.Target, ref)
			}
		}
	}
}

func TestGenerateTimestampOrder(t *testing.T) {
	snapshot := Generate(DefaultConfig())
	for _, schema := range domain.Registry() {
		if !schema.Timestamps {
			continue
		}
		for id, rec := range snapshot[schema.Type] {
			created, ok := domain.ParseTimestamp(rec[domain.FieldCreatedAt])
			require.Truef(t, ok, "%s %s: created_at unparseable", schema.Type, id)
			updated, ok := domain.ParseTimestamp(rec[domain.FieldUpdatedAt])
			require.Truef(t, ok, "%s %s: updated_at unparseable", schema.Type, id)
			assert.Falsef(t, created.After(updated), "%s %s: created_at after updated_at", schema.Type, id)
		}
	}
}

func TestGeneratePurchaseItemCostRatio(t *testing.T) {
	snapshot := Generate(DefaultConfig())
	items := snapshot[domain.EntityPurchaseOrderItem]
	require.NotEmpty(t, items)

	for id, item := range items {
		product := snapshot[domain.EntityProduct][item.String("product_id")]
		require.NotNilf(t, product, "item %s references missing product", id)
		price, _ := product.Number("unit_price")
		cost, _ := item.Number("unit_cost")
		want, _ := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(0.7)).Round(2).Float64()
		assert.Equalf(t, want, cost, "item %s: cost for price %v", id, price)
	}
}

func TestGenerateShipmentsTrackShippedOrders(t *testing.T) {
	snapshot := Generate(DefaultConfig())
	shipped := map[string]bool{}
	for id, so := range snapshot[domain.EntitySalesOrder] {
		switch so.String("status") {
		case domain.SalesOrderShipped, domain.SalesOrderDelivered, domain.SalesOrderReturned:
			shipped[id] = true
		}
	}
	seen := map[string]bool{}
	for id, ship := range snapshot[domain.EntityShipping] {
		soID := ship.String("sales_order_id")
		assert.Truef(t, shipped[soID], "shipment %s for order %s in status %q", id, soID,
			snapshot[domain.EntitySalesOrder][soID].String("status"))
		assert.False(t, seen[soID], "order %s has multiple shipments", soID)
		seen[soID] = true
		assert.True(t, strings.HasPrefix(ship.String("tracking_number"), "TRK-"))
	}
	assert.Len(t, seen, len(shipped), "every shipped order gets a shipment")
}

func TestGenerateApprovalLedger(t *testing.T) {
	snapshot := Generate(DefaultConfig())
	approvals := snapshot[domain.EntityApproval]
	require.Len(t, approvals, 2)

	byAction := map[string]domain.Record{}
	for _, rec := range approvals {
		byAction[rec.String("action")] = rec
	}
	require.Contains(t, byAction, "force_cancel")
	require.Contains(t, byAction, "update_pii")
	assert.Equal(t, domain.ApprovalApproved, byAction["force_cancel"].String("status"))
	assert.Equal(t, domain.ApprovalPending, byAction["update_pii"].String("status"))

	customerEmails := map[string]bool{}
	for _, user := range snapshot[domain.EntityUser] {
		if user.String("role") == "customer" {
			customerEmails[user.String("email")] = true
		}
	}
	for action, rec := range byAction {
		assert.Truef(t, customerEmails[rec.String("requester_email")],
			"%s approval for non-customer %s", action, rec.String("requester_email"))
		assert.True(t, strings.HasPrefix(rec.String("approval_code"), "APR-"))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snapshot := Generate(DefaultConfig())
	require.NoError(t, Save(dir, snapshot))

	for _, schema := range domain.Registry() {
		_, err := os.Stat(filepath.Join(dir, string(schema.Type)+".json"))
		require.NoErrorf(t, err, "missing file for %s", schema.Type)
	}

	loaded, err := Load(dir)
	require.NoError(t, err)
	for _, schema := range domain.Registry() {
		assert.Lenf(t, loaded[schema.Type], len(snapshot[schema.Type]), "count mismatch for %s", schema.Type)
	}
	assert.Equal(t,
		snapshot[domain.EntityUser]["1"].String("email"),
		loaded[domain.EntityUser]["1"].String("email"))
}

func TestLoadToleratesMissingFiles(t *testing.T) {
	loaded, err := Load(t.TempDir())
	require.NoError(t, err)
	for _, schema := range domain.Registry() {
		assert.Empty(t, loaded[schema.Type])
	}
}

func TestDefaultPolicyEmbedded(t *testing.T) {
	require.NotEmpty(t, DefaultPolicy)
	assert.Contains(t, DefaultPolicy, "Authorization")
}

func TestLoadPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.md")
	require.NoError(t, os.WriteFile(path, []byte("# Custom Policy\n"), 0o600))
	got, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, "# Custom Policy\n", got)
}
