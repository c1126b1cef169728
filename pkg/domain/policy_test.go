package domain

import (
	"iter"
	"strings"
	"testing"
)

// snapshotView adapts a Snapshot for gate tests without pulling in the store.
type snapshotView struct {
	snapshot Snapshot
}

func (v snapshotView) Get(t EntityType, id string) (Record, bool) {
	rec, ok := v.snapshot[t][id]
	return rec.Clone(), ok
}

func (v snapshotView) List(t EntityType) []Record {
	out := make([]Record, 0, len(v.snapshot[t]))
	for _, rec := range v.snapshot[t] {
		out = append(out, rec.Clone())
	}
	return out
}

func (v snapshotView) Find(t EntityType, filters map[string]any) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		ids := make([]string, 0, len(v.snapshot[t]))
		for id := range v.snapshot[t] {
			ids = append(ids, id)
		}
		SortIDs(ids)
		for _, id := range ids {
			rec := v.snapshot[t][id]
			match := true
			for field, want := range filters {
				if !ValueEqual(rec[field], want) {
					match = false
					break
				}
			}
			if match && !yield(rec.Clone()) {
				return
			}
		}
	}
}

func (v snapshotView) NextID(t EntityType) string { return "1" }

func gateFixture() snapshotView {
	return snapshotView{snapshot: Snapshot{
		EntityUser: {
			"1": Record{"user_id": "1", "email": "manager@example.com", "role": "Store Manager"},
			"2": Record{"user_id": "2", "email": "ship@example.com", "role": "Fulfillment Specialist"},
			"3": Record{"user_id": "3", "email": "customer@example.com", "role": "customer"},
		},
		EntityApproval: {
			"APR-0001": Record{
				"approval_id":     "APR-0001",
				"approval_code":   "APR-0001",
				"requester_email": "customer@example.com",
				"action":          "force_cancel",
				"status":          ApprovalApproved,
			},
			"APR-0002": Record{
				"approval_id":     "APR-0002",
				"approval_code":   "APR-0002",
				"requester_email": "customer@example.com",
				"action":          "update_pii",
				"status":          ApprovalPending,
			},
		},
	}}
}

func TestAuthorizeWildcardRole(t *testing.T) {
	d := NewGate().Authorize(gateFixture(), "manager@example.com", "onboard_supplier")
	if !d.Approved {
		t.Fatalf("manager denied: %s", d.Reason)
	}
	if d.Reason != "Role authorized (Admin)" {
		t.Fatalf("reason = %q", d.Reason)
	}
}

func TestAuthorizeRoleAction(t *testing.T) {
	gate := NewGate()
	d := gate.Authorize(gateFixture(), "ship@example.com", "create_shipping")
	if !d.Approved || d.Reason != "Role authorized" {
		t.Fatalf("fulfillment create_shipping: %+v", d)
	}
	d = gate.Authorize(gateFixture(), "ship@example.com", "update_pii")
	if d.Approved {
		t.Fatalf("fulfillment update_pii should be denied, got %+v", d)
	}
}

func TestAuthorizeExplicitApproval(t *testing.T) {
	d := NewGate().Authorize(gateFixture(), "customer@example.com", "force_cancel")
	if !d.Approved {
		t.Fatalf("approved ledger entry ignored: %s", d.Reason)
	}
	if d.Reason != "Explicit approval found: APR-0001" {
		t.Fatalf("reason = %q", d.Reason)
	}
}

func TestAuthorizePendingApprovalDenied(t *testing.T) {
	d := NewGate().Authorize(gateFixture(), "customer@example.com", "update_pii")
	if d.Approved {
		t.Fatal("pending approval must not authorize")
	}
	if !strings.Contains(d.Reason, "not authorized for 'update_pii'") {
		t.Fatalf("reason = %q", d.Reason)
	}
}

func TestAuthorizeUnknownUser(t *testing.T) {
	d := NewGate().Authorize(gateFixture(), "ghost@example.com", "update_pii")
	if d.Approved {
		t.Fatal("unknown requester authorized")
	}
	if d.Reason != "User ghost@example.com not found." {
		t.Fatalf("reason = %q", d.Reason)
	}
}

func TestAuthorizeRoleCaseInsensitive(t *testing.T) {
	view := gateFixture()
	view.snapshot[EntityUser]["1"]["role"] = "STORE MANAGER"
	d := NewGate().Authorize(view, "manager@example.com", "anything")
	if !d.Approved {
		t.Fatalf("role matching should ignore case: %s", d.Reason)
	}
}
