package core

import "retailcore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in invariant
// set every store enforces at commit time.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(ReferentialIntegrityRule())
	engine.Register(TimestampOrderRule())
	engine.Register(AuditAppendOnlyRule())
	return engine
}
