package core

import (
	"context"
	"testing"

	"retailcore/pkg/domain"
)

func queryFixture(t *testing.T) *Store {
	t.Helper()
	store := NewStore(nil)
	err := store.Import(domain.Snapshot{
		domain.EntityUser: {
			"1": domain.Record{"user_id": "1", "email": "a@example.com", "role": "customer", "status": "active"},
			"2": domain.Record{"user_id": "2", "email": "b@example.com", "role": "customer", "status": "inactive"},
			"3": domain.Record{"user_id": "3", "email": "c@example.com", "role": "store manager", "status": "active"},
		},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return store
}

func TestFindExactMatchConjunction(t *testing.T) {
	view := queryFixture(t).Snapshot()

	var got []string
	for rec := range view.Find(domain.EntityUser, map[string]any{"role": "customer", "status": "active"}) {
		got = append(got, rec.String("user_id"))
	}
	if len(got) != 1 || got[0] != "1" {
		t.Fatalf("conjunction matched %v, want [1]", got)
	}
}

func TestFindEmptyFilterMatchesAllInOrder(t *testing.T) {
	view := queryFixture(t).Snapshot()

	var got []string
	for rec := range view.Find(domain.EntityUser, nil) {
		got = append(got, rec.String("user_id"))
	}
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("matched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestFindAbsentFieldNeverMatches(t *testing.T) {
	view := queryFixture(t).Snapshot()
	for range view.Find(domain.EntityUser, map[string]any{"nickname": "none"}) {
		t.Fatal("absent field matched")
	}
}

func TestFindNumericFilterNormalization(t *testing.T) {
	store := NewStore(nil)
	err := store.Import(domain.Snapshot{
		domain.EntitySupplier: {"1": domain.Record{"supplier_id": "1", "name": "S"}},
		domain.EntityProduct: {
			"1": domain.Record{"product_id": "1", "supplier_id": "1", "name": "Widget", "unit_price": 12.5},
		},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	view := store.Snapshot()

	count := 0
	for range view.Find(domain.EntityProduct, map[string]any{"unit_price": 12.5}) {
		count++
	}
	if count != 1 {
		t.Fatalf("numeric filter matched %d records", count)
	}
	// "12.5" as a string must not match the numeric field.
	for range view.Find(domain.EntityProduct, map[string]any{"unit_price": "12.5"}) {
		t.Fatal("string filter matched numeric field")
	}
}

func TestFindResultsAreDefensiveCopies(t *testing.T) {
	store := queryFixture(t)
	view := store.Snapshot()

	for rec := range view.Find(domain.EntityUser, map[string]any{"user_id": "1"}) {
		rec["email"] = "mutated@example.com"
	}
	rec, _ := store.Get(domain.EntityUser, "1")
	if rec.String("email") != "a@example.com" {
		t.Fatal("mutating a query result leaked into the store")
	}
}

func TestFindRestartable(t *testing.T) {
	view := queryFixture(t).Snapshot()
	seq := view.Find(domain.EntityUser, map[string]any{"status": "active"})

	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 2 || second != 2 {
		t.Fatalf("sequence not restartable: %d then %d", first, second)
	}
}

func TestFindEarlyBreak(t *testing.T) {
	view := queryFixture(t).Snapshot()
	seen := 0
	for range view.Find(domain.EntityUser, nil) {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("early break yielded %d", seen)
	}
}

func TestViewRunsAgainstConsistentSnapshot(t *testing.T) {
	store := queryFixture(t)
	err := store.View(context.Background(), func(view domain.View) error {
		before := len(view.List(domain.EntityUser))

		delta := domain.Delta{}
		delta.Set(domain.EntityUser, view.NextID(domain.EntityUser), domain.Record{"email": "d@example.com", "role": "customer"})
		if _, err := store.Commit(context.Background(), delta); err != nil {
			t.Fatalf("commit during view: %v", err)
		}

		if after := len(view.List(domain.EntityUser)); after != before {
			t.Fatalf("view observed commit: %d -> %d", before, after)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}
