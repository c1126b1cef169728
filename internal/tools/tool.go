// Package tools implements the delta producers of the simulation: pure
// functions that read the dataset through a snapshot view and return a
// proposed delta plus a structured outcome. Producers never touch the store;
// committing is the store's job alone.
package tools

import (
	"encoding/json"
	"time"

	"retailcore/pkg/domain"
)

// Kind distinguishes read-only discovery tools from state-changing ones.
type Kind string

// Tool kinds at the invocation boundary.
const (
	KindGetter Kind = "getter"
	KindSetter Kind = "setter"
)

// Field describes one typed input or output of a tool.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Optional    bool     `json:"optional,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Descriptor is the declarative contract a tool exposes to the outer
// harness: name, free-text description, typed input schema, typed outputs.
type Descriptor struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Kind        Kind    `json:"type"`
	Inputs      []Field `json:"inputs"`
	Outputs     []Field `json:"outputs"`
}

// Tool is one invocable producer. Invoke reads only through the supplied
// view and reports its result, including any proposed delta, as an
// Outcome; it must never mutate shared state.
type Tool interface {
	Descriptor() Descriptor
	Invoke(view domain.View, args map[string]any) Outcome
}

// Outcome is a tool's structured result. It marshals to the stable boundary
// shape {success, ...fields, delta?, error?}.
type Outcome struct {
	Success bool
	Fields  map[string]any
	Delta   domain.Delta
	Error   string
}

// Payload flattens the outcome into the wire mapping.
func (o Outcome) Payload() map[string]any {
	p := map[string]any{"success": o.Success}
	for k, v := range o.Fields {
		p[k] = v
	}
	if !o.Delta.Empty() {
		p["delta"] = o.Delta
	}
	if o.Error != "" {
		p["error"] = o.Error
	}
	return p
}

// MarshalJSON renders the flattened payload.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Payload())
}

func success(fields map[string]any, delta domain.Delta) Outcome {
	return Outcome{Success: true, Fields: fields, Delta: delta}
}

func failure(msg string) Outcome {
	return Outcome{Success: false, Error: msg}
}

// invalidAction is the uniform outcome for unknown verbs.
func invalidAction() Outcome {
	return failure("Invalid action")
}

// timeNow is the producer clock, overridable in tests. Commit stamps its own
// updated_at; producers use this only for fields they originate (order
// dates, audit timestamps, creation stamps).
var timeNow = func() time.Time { return time.Now().UTC() }

// Registry holds tools in a stable listing order.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry builds a registry from the given tools, preserving order.
func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		name := t.Descriptor().Name
		if _, exists := r.tools[name]; exists {
			continue
		}
		r.order = append(r.order, name)
		r.tools[name] = t
	}
	return r
}

// DefaultRegistry wires the full tool set in its canonical listing order.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewCheckApproval(),
		NewCreateAuditTrail(),
		NewDiscoverUsers(),
		NewManageUsers(),
		NewDiscoverSuppliers(),
		NewManageSuppliers(),
		NewDiscoverProducts(),
		NewManageProducts(),
		NewDiscoverPurchaseOrders(),
		NewManagePurchaseOrders(),
		NewDiscoverSalesOrders(),
		NewManageSalesOrders(),
		NewDiscoverShipping(),
		NewManageShipping(),
	)
}

// Get looks a tool up by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns the registered tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Descriptors returns every tool descriptor in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, t := range r.List() {
		out = append(out, t.Descriptor())
	}
	return out
}
