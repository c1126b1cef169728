package core

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"retailcore/internal/tools"
	"retailcore/pkg/domain"
)

// MetricsRecorder observes service operation outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// NopMetricsRecorder discards every observation.
type NopMetricsRecorder struct{}

// Observe implements MetricsRecorder.
func (NopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// Service drives one simulation step end to end: authorize (setter tools),
// produce the delta against a read snapshot, commit, append the audit entry,
// and hand the structured outcome back to the caller. The raw tools stay
// individually invocable for harnesses that orchestrate the advisory flow
// themselves; the service is the enforced path.
type Service struct {
	store    *Store
	registry *tools.Registry
	gate     *domain.Gate
	metrics  MetricsRecorder
	log      *log.Entry

	// mu serializes setter invocations. Producers allocate IDs by peeking at
	// the snapshot's counters and commit consumes them, so snapshot, produce,
	// and commit must form one critical section or two in-flight creates
	// allocate the same ID and the later delta lands as a patch over the
	// earlier record.
	mu sync.Mutex
}

// Option customizes service construction.
type Option func(*Service)

// WithRegistry replaces the default tool registry.
func WithRegistry(registry *tools.Registry) Option {
	return func(s *Service) { s.registry = registry }
}

// WithGate replaces the default authorization gate.
func WithGate(gate *domain.Gate) Option {
	return func(s *Service) { s.gate = gate }
}

// WithMetrics wires a metrics recorder.
func WithMetrics(metrics MetricsRecorder) Option {
	return func(s *Service) { s.metrics = metrics }
}

// WithLogger replaces the default logger entry.
func WithLogger(entry *log.Entry) Option {
	return func(s *Service) { s.log = entry }
}

// NewService constructs a service over the supplied store.
func NewService(store *Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		registry: tools.DefaultRegistry(),
		gate:     domain.NewGate(),
		metrics:  NopMetricsRecorder{},
		log:      log.WithField("component", "service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying dataset, mainly for seeding and export.
func (s *Service) Store() *Store { return s.store }

// Registry exposes the wired tool registry.
func (s *Service) Registry() *tools.Registry { return s.registry }

// Gate exposes the authorization gate.
func (s *Service) Gate() *domain.Gate { return s.gate }

// InvokeRequest names the tool to run, the actor performing it, and the
// tool's named arguments.
type InvokeRequest struct {
	Tool       string
	ActorEmail string
	Args       map[string]any
}

// policyActions maps (tool, verb) to the policy-level action name the gate
// evaluates. Unlisted pairs fall back to the tool name itself.
var policyActions = map[string]map[string]string{
	"manage_suppliers":       {"create": "onboard_supplier", "update": "update_supplier"},
	"manage_products":        {"create": "create_product", "update": "update_product"},
	"manage_users":           {"update": "update_pii"},
	"manage_purchase_orders": {"create": "create_purchase_order", "update": "update_purchase_order", "add_item": "receive_inventory"},
	"manage_sales_orders":    {"update": "update_order_status"},
	"manage_shipping":        {"create": "create_shipping", "update": "update_order_status"},
}

func policyAction(tool string, args map[string]any) string {
	verb, _ := args["action"].(string)
	if verbs, ok := policyActions[tool]; ok {
		if action, ok := verbs[verb]; ok {
			return action
		}
	}
	return tool
}

// Invoke runs one tool invocation through the full pipeline. Failures of
// every kind (unknown tool, denied authorization, producer errors, rejected
// commits) come back as structured outcomes; the store is only ever changed
// by a fully successful setter invocation.
func (s *Service) Invoke(ctx context.Context, req InvokeRequest) tools.Outcome {
	started := time.Now()
	outcome := s.invoke(ctx, req)
	s.metrics.Observe(ctx, req.Tool, outcome.Success, time.Since(started))
	s.log.WithFields(log.Fields{
		"tool":    req.Tool,
		"actor":   req.ActorEmail,
		"success": outcome.Success,
	}).Debug("tool invocation")
	return outcome
}

func (s *Service) invoke(ctx context.Context, req InvokeRequest) tools.Outcome {
	tool, ok := s.registry.Get(req.Tool)
	if !ok {
		return tools.Outcome{Error: domain.InvalidActionError{Action: req.Tool}.Error()}
	}

	desc := tool.Descriptor()

	if desc.Kind == tools.KindGetter {
		return tool.Invoke(s.store.Snapshot(), req.Args)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.store.Snapshot()
	if desc.Name != "create_new_audit_trail" {
		decision := s.gate.Authorize(view, req.ActorEmail, policyAction(desc.Name, req.Args))
		if !decision.Approved {
			return tools.Outcome{Error: decision.Reason}
		}
	}

	outcome := tool.Invoke(view, req.Args)
	if !outcome.Success {
		return outcome
	}

	if _, err := s.store.Commit(ctx, outcome.Delta); err != nil {
		s.log.WithError(err).WithField("tool", desc.Name).Warn("commit rejected")
		return tools.Outcome{Error: err.Error()}
	}

	if desc.Name != "create_new_audit_trail" {
		s.appendAuditEntry(ctx, desc.Name, req)
	}
	return outcome
}

// appendAuditEntry records the committed action as a follow-up delta through
// the same producer/commit path. An audit failure cannot unwind the already
// committed action; it is surfaced in the log instead.
func (s *Service) appendAuditEntry(ctx context.Context, toolName string, req InvokeRequest) {
	details := map[string]any{"tool": toolName}
	if verb, ok := req.Args["action"].(string); ok && verb != "" {
		details["action"] = verb
	}
	audit, _ := s.registry.Get("create_new_audit_trail")
	if audit == nil {
		audit = tools.NewCreateAuditTrail()
	}
	outcome := audit.Invoke(s.store.Snapshot(), map[string]any{
		"action":     policyAction(toolName, req.Args),
		"details":    details,
		"user_email": req.ActorEmail,
	})
	if !outcome.Success {
		s.log.WithField("tool", toolName).Error("audit entry not produced")
		return
	}
	if _, err := s.store.Commit(ctx, outcome.Delta); err != nil {
		s.log.WithError(err).WithField("tool", toolName).Error("audit entry rejected")
	}
}
