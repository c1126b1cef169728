package domain

import (
	"context"
	"iter"
)

// View provides read-only access to dataset state. Query results are
// defensive copies; nothing reachable through a View can mutate the store.
type View interface {
	// Get returns a copy of one record, or false when the identifier is
	// absent from the collection.
	Get(t EntityType, id string) (Record, bool)
	// List returns copies of every record of a type in insertion order.
	List(t EntityType) []Record
	// Find returns a lazy, restartable sequence of records matching every
	// filter field exactly, in insertion order. An empty filter matches all.
	Find(t EntityType, filters map[string]any) iter.Seq[Record]
	// NextID reports the identifier the next creation of this type will
	// receive. It never returns an identifier already present.
	NextID(t EntityType) string
}

// Action indicates the type of modification captured in a Change.
type Action string

// Change actions enumerate the mutations the commit engine can apply. The
// simulation never physically deletes records; status fields model logical
// removal.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Change describes one applied sub-change of a delta, handed to rules for
// validation and recorded for audit detail payloads.
type Change struct {
	Entity EntityType
	Action Action
	ID     string
	Before Record
	After  Record
}

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior.
const (
	// SeverityBlock rejects the whole delta; no partial effects remain.
	SeverityBlock Severity = "block"
	// SeverityWarn surfaces the violation but allows the commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation describes one rule finding.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when a commit is rejected by blocking
// violations.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "commit blocked by rules"
}

// Rule defines a validation executed against the candidate state of a commit
// before it replaces the canonical state.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view View, changes []Change) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an empty engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view View, changes []Change) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, changes)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
