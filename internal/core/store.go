// Package core implements the canonical in-memory entity store, the
// identifier allocator, the query engine, and the delta merge/commit engine
// for the retail simulation.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"retailcore/pkg/domain"
)

// collection holds one entity type's records, their insertion order, and the
// integer counter backing identifier allocation. The counter is the
// arena+index form of the original max(keys)+1 scan: identifiers stay opaque
// strings at every boundary, allocation is O(1).
type collection struct {
	records map[string]domain.Record
	order   []string
	nextID  int64
}

func newCollection() *collection {
	return &collection{records: make(map[string]domain.Record), nextID: 1}
}

func (c *collection) clone() *collection {
	cp := &collection{
		records: make(map[string]domain.Record, len(c.records)),
		order:   append([]string(nil), c.order...),
		nextID:  c.nextID,
	}
	for id, rec := range c.records {
		cp.records[id] = rec.Clone()
	}
	return cp
}

// insert appends a record and advances the allocation counter past any
// numeric identifier it absorbs.
func (c *collection) insert(id string, rec domain.Record) {
	c.records[id] = rec
	c.order = append(c.order, id)
	if n, ok := domain.ParseID(id); ok && n >= c.nextID {
		c.nextID = n + 1
	}
}

type state map[domain.EntityType]*collection

func newState() state {
	s := make(state, len(domain.Registry()))
	for _, schema := range domain.Registry() {
		s[schema.Type] = newCollection()
	}
	return s
}

func (s state) clone() state {
	cp := make(state, len(s))
	for t, col := range s {
		cp[t] = col.clone()
	}
	return cp
}

// Store is the canonical dataset. It is an explicitly owned instance rather
// than a process-wide singleton, so independent simulation runs never share
// state.
// Commit is the only mutating entry point; every read hands out copies.
type Store struct {
	mu     sync.RWMutex
	state  state
	engine *domain.RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an empty store validated by the provided rules engine.
// A nil engine falls back to the default rule set.
func NewStore(engine *domain.RulesEngine) *Store {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	return &Store{
		state:  newState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the commit clock. Intended for deterministic tests and
// replayed simulation runs.
func (s *Store) SetClock(nowFn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// Import replaces store contents with a seeded snapshot. Collections are
// rebuilt in numeric identifier order, which is the insertion order dense
// seed fixtures were generated in. Seed data is trusted at this boundary;
// rules run only on subsequent commits.
func (s *Store) Import(snapshot domain.Snapshot) error {
	next := newState()
	for t, records := range snapshot {
		col, ok := next[t]
		if !ok {
			return fmt.Errorf("unknown entity type %q in snapshot", t)
		}
		for _, id := range sortedIDs(records) {
			col.insert(id, records[id].Clone())
		}
	}
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return nil
}

// Export returns a full copy of the dataset.
func (s *Store) Export() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Snapshot, len(s.state))
	for t, col := range s.state {
		records := make(map[string]domain.Record, len(col.records))
		for id, rec := range col.records {
			records[id] = rec.Clone()
		}
		out[t] = records
	}
	return out
}

// sortedIDs orders identifiers numerically, falling back to lexical order
// for any non-numeric stragglers.
func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	domain.SortIDs(ids)
	return ids
}

// NextID reports the identifier the next creation of this type will receive.
// It does not reserve: like the original allocator, the value is consumed
// only when a commit inserts it, so a failed commit leaves no gap.
func (s *Store) NextID(t domain.EntityType) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.state[t]
	if !ok {
		return ""
	}
	return domain.FormatID(col.nextID)
}

// Get returns a copy of one committed record.
func (s *Store) Get(t domain.EntityType, id string) (domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateView{s.state}.Get(t, id)
}

// List returns copies of every committed record of a type in insertion order.
func (s *Store) List(t domain.EntityType) []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateView{s.state}.List(t)
}

// View runs fn against a consistent snapshot of the store. The snapshot is
// fully detached: an in-progress commit can never interleave with reads
// taken through it.
func (s *Store) View(ctx context.Context, fn func(domain.View) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()
	return fn(stateView{snapshot})
}

// Snapshot returns a detached read view of the current state.
func (s *Store) Snapshot() domain.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateView{s.state.clone()}
}

// Commit validates and applies a delta atomically: either every sub-change
// lands, or the store is left untouched. New identifiers insert full
// records; existing identifiers merge their payload shallowly and take a
// refreshed updated_at. The candidate state is then evaluated by the rules
// engine (referential integrity, timestamp ordering, audit immutability);
// any blocking violation discards the whole delta.
func (s *Store) Commit(ctx context.Context, delta domain.Delta) (domain.Result, error) {
	if delta.Empty() {
		return domain.Result{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	now := s.nowFn()
	var changes []domain.Change

	// Registry order then numeric identifier order keeps application (and
	// therefore insertion order and audit detail) deterministic.
	for _, schema := range domain.Registry() {
		sub, ok := delta[schema.Type]
		if !ok || len(sub) == 0 {
			continue
		}
		col := next[schema.Type]
		for _, id := range sortedIDs(sub) {
			payload := sub[id]
			if existing, ok := col.records[id]; ok {
				changes = append(changes, applyPatch(schema, col, id, existing, payload, now))
				continue
			}
			changes = append(changes, applyInsert(schema, col, id, payload, now))
		}
	}

	for t, sub := range delta {
		if _, ok := next[t]; !ok && len(sub) > 0 {
			return domain.Result{}, fmt.Errorf("unknown entity type %q in delta", t)
		}
	}

	res, err := s.engine.Evaluate(ctx, stateView{next}, changes)
	if err != nil {
		return domain.Result{}, err
	}
	if res.HasBlocking() {
		return res, domain.RuleViolationError{Result: res}
	}

	s.state = next
	return res, nil
}

func applyInsert(schema domain.Schema, col *collection, id string, payload domain.Record, now time.Time) domain.Change {
	rec := payload.Clone()
	if rec == nil {
		rec = domain.Record{}
	}
	rec[schema.IDField] = id
	if schema.Timestamps {
		stamp := domain.FormatTimestamp(now)
		if _, ok := rec[domain.FieldCreatedAt]; !ok {
			rec[domain.FieldCreatedAt] = stamp
		}
		if _, ok := rec[domain.FieldUpdatedAt]; !ok {
			rec[domain.FieldUpdatedAt] = stamp
		}
	}
	col.insert(id, rec)
	return domain.Change{Entity: schema.Type, Action: domain.ActionCreate, ID: id, After: rec.Clone()}
}

func applyPatch(schema domain.Schema, col *collection, id string, existing, payload domain.Record, now time.Time) domain.Change {
	before := existing.Clone()
	merged := existing.Clone()
	for k, v := range payload {
		merged[k] = v
	}
	merged[schema.IDField] = id
	if schema.Timestamps {
		merged[domain.FieldUpdatedAt] = domain.FormatTimestamp(now)
	}
	col.records[id] = merged
	return domain.Change{Entity: schema.Type, Action: domain.ActionUpdate, ID: id, Before: before, After: merged.Clone()}
}
