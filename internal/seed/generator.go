// Package seed generates and loads the simulation's initial dataset. The
// generator is fully deterministic for a given configuration, so scored
// simulation runs can be replayed against identical fixtures.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"retailcore/pkg/domain"
)

// Config controls fixture generation. Reference is the "now" the timestamps
// are anchored to; fixing it keeps output byte-stable across runs.
type Config struct {
	Seed      int64
	Suppliers int
	Users     int
	Reference time.Time
}

// DefaultConfig mirrors the canonical simulation dataset: ten suppliers,
// fifteen users, bounded fan-out of children per parent.
func DefaultConfig() Config {
	return Config{
		Seed:      42,
		Suppliers: 10,
		Users:     15,
		Reference: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

type generator struct {
	r   *rand.Rand
	ref time.Time
}

// Generate produces a complete snapshot satisfying the dataset invariants:
// dense string identifiers from "1", created_at <= updated_at, valid foreign
// keys, at most three children per parent.
func Generate(cfg Config) domain.Snapshot {
	if cfg.Suppliers <= 0 {
		cfg.Suppliers = DefaultConfig().Suppliers
	}
	if cfg.Users <= 0 {
		cfg.Users = DefaultConfig().Users
	}
	if cfg.Reference.IsZero() {
		cfg.Reference = DefaultConfig().Reference
	}
	g := &generator{r: rand.New(rand.NewSource(cfg.Seed)), ref: cfg.Reference.UTC()}

	snapshot := domain.Snapshot{}
	for _, schema := range domain.Registry() {
		snapshot[schema.Type] = map[string]domain.Record{}
	}

	g.suppliers(snapshot, cfg.Suppliers)
	g.products(snapshot)
	g.users(snapshot, cfg.Users)
	g.purchaseOrders(snapshot)
	g.salesOrders(snapshot)
	g.approvals(snapshot)
	return snapshot
}

// timestamps returns a (created_at, updated_at) pair with created between
// two years and one month before the reference and updated between created
// and the reference.
func (g *generator) timestamps() (string, string) {
	windowStart := g.ref.AddDate(-2, 0, 0)
	windowEnd := g.ref.AddDate(0, -1, 0)
	created := randomTime(g.r, windowStart, windowEnd)
	updated := randomTime(g.r, created, g.ref)
	return domain.FormatTimestamp(created), domain.FormatTimestamp(updated)
}

func randomTime(r *rand.Rand, from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	span := to.Unix() - from.Unix()
	return time.Unix(from.Unix()+r.Int63n(span+1), 0).UTC()
}

func (g *generator) date(daysBack int) string {
	return g.ref.AddDate(0, 0, -g.r.Intn(daysBack+1)).Format("2006-01-02")
}

func (g *generator) pick(options []string) string {
	return options[g.r.Intn(len(options))]
}

// price returns a retail unit price in [10, 500) rounded to two decimals.
func (g *generator) price() float64 {
	raw := 10.0 + g.r.Float64()*490.0
	p, _ := decimal.NewFromFloat(raw).Round(2).Float64()
	return p
}

func (g *generator) trackingNumber() string {
	id := uuid.Must(uuid.NewRandomFromReader(g.r))
	return fmt.Sprintf("TRK-%s", strings.ToUpper(id.String()[:8]))
}

func (g *generator) suppliers(snapshot domain.Snapshot, count int) {
	for i := 1; i <= count; i++ {
		id := domain.FormatID(int64(i))
		created, updated := g.timestamps()
		name := fmt.Sprintf("%s %s", g.pick(companyStems), g.pick(companySuffixes))
		snapshot[domain.EntitySupplier][id] = domain.Record{
			"supplier_id":   id,
			"name":          name,
			"contact_email": fmt.Sprintf("contact@%s.example.com", slugify(name)),
			"address":       g.streetAddress(),
			"city":          g.pick(cities),
			"state":         g.pick(states),
			"zip_code":      fmt.Sprintf("%05d", 10000+g.r.Intn(89999)),
			"country":       "USA",
			"created_at":    created,
			"updated_at":    updated,
		}
	}
}

func (g *generator) products(snapshot domain.Snapshot) {
	counter := int64(1)
	for _, supplier := range orderedIDs(snapshot[domain.EntitySupplier]) {
		for range g.r.Intn(3) + 1 {
			id := domain.FormatID(counter)
			counter++
			created, updated := g.timestamps()
			description := ""
			if g.r.Float64() > 0.2 {
				description = fmt.Sprintf("A dependable %s for everyday use.", strings.ToLower(g.pick(productNouns)))
			}
			snapshot[domain.EntityProduct][id] = domain.Record{
				"product_id":  id,
				"name":        fmt.Sprintf("%s %s", g.pick(productCategories), g.pick(productNouns)),
				"description": description,
				"supplier_id": supplier,
				"unit_price":  g.price(),
				"created_at":  created,
				"updated_at":  updated,
			}
		}
	}
}

func (g *generator) users(snapshot domain.Snapshot, count int) {
	staffRoles := []string{"Store Manager", "Fulfillment Specialist", "Customer Support"}
	for i := 1; i <= count; i++ {
		id := domain.FormatID(int64(i))
		created, updated := g.timestamps()
		first := g.pick(firstNames)
		last := g.pick(lastNames)
		role := "customer"
		if i <= len(staffRoles) {
			role = staffRoles[i-1]
		}
		snapshot[domain.EntityUser][id] = domain.Record{
			"user_id":    id,
			"first_name": first,
			"last_name":  last,
			"email":      g.email(first, last),
			"role":       role,
			"address":    g.streetAddress(),
			"city":       g.pick(cities),
			"state":      g.pick(states),
			"zip_code":   fmt.Sprintf("%05d", 10000+g.r.Intn(89999)),
			"country":    "USA",
			"created_at": created,
			"updated_at": updated,
		}
	}
}

func (g *generator) purchaseOrders(snapshot domain.Snapshot) {
	poCounter, itemCounter := int64(1), int64(1)
	statuses := []string{domain.PurchaseOrderPending, domain.PurchaseOrderReceived, domain.PurchaseOrderCancelled}
	for _, supplier := range orderedIDs(snapshot[domain.EntitySupplier]) {
		supplierProducts := productsOf(snapshot, supplier)
		for range g.r.Intn(4) {
			poID := domain.FormatID(poCounter)
			poCounter++
			created, updated := g.timestamps()
			snapshot[domain.EntityPurchaseOrder][poID] = domain.Record{
				"purchase_order_id": poID,
				"supplier_id":       supplier,
				"order_date":        g.date(365),
				"status":            g.pick(statuses),
				"created_at":        created,
				"updated_at":        updated,
			}
			if len(supplierProducts) == 0 {
				continue
			}
			for range g.r.Intn(3) + 1 {
				itemID := domain.FormatID(itemCounter)
				itemCounter++
				product := snapshot[domain.EntityProduct][g.pick(supplierProducts)]
				cost, _ := decimal.NewFromFloat(mustNumber(product, "unit_price")).
					Mul(decimal.NewFromFloat(0.7)).Round(2).Float64()
				snapshot[domain.EntityPurchaseOrderItem][itemID] = domain.Record{
					"po_item_id":        itemID,
					"purchase_order_id": poID,
					"product_id":        product.String("product_id"),
					"quantity":          float64(10 + g.r.Intn(91)),
					"unit_cost":         cost,
					"created_at":        created,
					"updated_at":        updated,
				}
			}
		}
	}
}

func (g *generator) salesOrders(snapshot domain.Snapshot) {
	soCounter, itemCounter, shipCounter := int64(1), int64(1), int64(1)
	statuses := []string{
		domain.SalesOrderPlaced, domain.SalesOrderProcessing, domain.SalesOrderShipped,
		domain.SalesOrderDelivered, domain.SalesOrderCancelled, domain.SalesOrderReturned,
	}
	productIDs := orderedIDs(snapshot[domain.EntityProduct])
	for _, userID := range orderedIDs(snapshot[domain.EntityUser]) {
		user := snapshot[domain.EntityUser][userID]
		if user.String("role") != "customer" {
			continue
		}
		for range g.r.Intn(4) {
			soID := domain.FormatID(soCounter)
			soCounter++
			created, updated := g.timestamps()
			status := g.pick(statuses)
			cancelReason := ""
			if status == domain.SalesOrderCancelled {
				cancelReason = g.pick(cancelReasons)
			}
			snapshot[domain.EntitySalesOrder][soID] = domain.Record{
				"sales_order_id": soID,
				"user_id":        userID,
				"order_date":     g.date(180),
				"status":         status,
				"payment_method": g.pick(paymentMethods),
				"cancel_reason":  cancelReason,
				"created_at":     created,
				"updated_at":     updated,
			}
			for range g.r.Intn(3) + 1 {
				itemID := domain.FormatID(itemCounter)
				itemCounter++
				snapshot[domain.EntitySalesOrderItem][itemID] = domain.Record{
					"so_item_id":     itemID,
					"sales_order_id": soID,
					"product_id":     g.pick(productIDs),
					"quantity":       float64(1 + g.r.Intn(5)),
					"created_at":     created,
					"updated_at":     updated,
				}
			}
			if status == domain.SalesOrderShipped || status == domain.SalesOrderDelivered || status == domain.SalesOrderReturned {
				shipID := domain.FormatID(shipCounter)
				shipCounter++
				realDelivery := ""
				if status == domain.SalesOrderDelivered {
					realDelivery = g.date(7)
				}
				snapshot[domain.EntityShipping][shipID] = domain.Record{
					"shipping_id":           shipID,
					"sales_order_id":        soID,
					"address":               fmt.Sprintf("%s, %s, %s", user.String("address"), user.String("city"), user.String("state")),
					"estimate_deliver_date": g.ref.AddDate(0, 0, g.r.Intn(7)+1).Format("2006-01-02"),
					"real_deliver_date":     realDelivery,
					"method":                "Standard",
					"tracking_number":       g.trackingNumber(),
					"status":                status,
					"created_at":            created,
					"updated_at":            updated,
				}
			}
		}
	}
}

// approvals seeds the explicit-grant ledger with a small set of entries so
// out-of-policy actions have a fallback path to exercise.
func (g *generator) approvals(snapshot domain.Snapshot) {
	customers := make([]string, 0)
	for _, id := range orderedIDs(snapshot[domain.EntityUser]) {
		if snapshot[domain.EntityUser][id].String("role") == "customer" {
			customers = append(customers, id)
		}
	}
	if len(customers) == 0 {
		return
	}
	entries := []struct {
		action string
		status string
	}{
		{"force_cancel", domain.ApprovalApproved},
		{"update_pii", domain.ApprovalPending},
	}
	for i, entry := range entries {
		id := domain.FormatID(int64(i + 1))
		user := snapshot[domain.EntityUser][customers[g.r.Intn(len(customers))]]
		created, updated := g.timestamps()
		snapshot[domain.EntityApproval][id] = domain.Record{
			"approval_id":     id,
			"requester_email": user.String("email"),
			"action":          entry.action,
			"status":          entry.status,
			"approval_code":   fmt.Sprintf("APR-%04d", 1000+g.r.Intn(9000)),
			"created_at":      created,
			"updated_at":      updated,
		}
	}
}

func (g *generator) email(first, last string) string {
	sep := g.pick([]string{"", ".", "_", "-"})
	suffix := ""
	if g.r.Float64() > 0.5 {
		suffix = fmt.Sprintf("%d", 1+g.r.Intn(999))
	}
	return strings.ToLower(fmt.Sprintf("%s%s%s%s@%s", first, sep, last, suffix, g.pick(emailDomains)))
}

func (g *generator) streetAddress() string {
	return fmt.Sprintf("%d %s %s", 100+g.r.Intn(9900), g.pick(streetNames), g.pick(streetSuffixes))
}

func productsOf(snapshot domain.Snapshot, supplierID string) []string {
	out := make([]string, 0)
	for _, id := range orderedIDs(snapshot[domain.EntityProduct]) {
		if snapshot[domain.EntityProduct][id].String("supplier_id") == supplierID {
			out = append(out, id)
		}
	}
	return out
}

func mustNumber(rec domain.Record, field string) float64 {
	n, _ := rec.Number(field)
	return n
}

func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}
