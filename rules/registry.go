package rules

import (
	"fmt"
	"sync"
)

// Registry stores rules in registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
	byID  map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Rule)}
}

// Default returns a registry holding the built-in rules: Formatting,
// Citations, Structure, Quotations and Headings.
func Default() *Registry {
	r := NewRegistry()
	for _, rule := range []Rule{Formatting, Citations, Structure, Quotations, Headings} {
		r.MustRegister(rule)
	}
	return r
}

// Register adds a rule. Identifiers must be unique.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rule.ID()]; exists {
		return fmt.Errorf("rule %q already registered", rule.ID())
	}
	r.byID[rule.ID()] = rule
	r.rules = append(r.rules, rule)
	return nil
}

// MustRegister is like Register but panics on a duplicate identifier.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// All returns all registered rules in registration order.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Rule(nil), r.rules...)
}

// Get returns a rule by its ID.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Info returns metadata for every registered rule.
func (r *Registry) Info() []RuleInfo {
	all := r.All()
	infos := make([]RuleInfo, len(all))
	for i, rule := range all {
		infos[i] = GetRuleInfo(rule)
	}
	return infos
}
