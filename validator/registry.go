// Package validator implements the L-Rules: independent structural and
// semantic checks over a parsed PSL document.
//
// Rules are registered in an open registry rather than dispatched through a
// fixed chain, so new rules are added by appending, never by modifying the
// validation pass. Rules must not depend on each other's results; the combined
// report is stable under re-ordering of rule execution.
package validator

import (
	"fmt"
	"sync"

	"github.com/c360studio/pslspec/psl"
)

// Rule is one independent validation check.
type Rule interface {
	// Code returns the rule identifier (e.g. "L-02").
	Code() string

	// Check inspects the document and returns zero or more issues.
	// It must not mutate the document.
	Check(doc *psl.Document) []psl.Issue
}

// Registry manages validation rules.
type Registry struct {
	mu    sync.RWMutex
	rules []Rule
}

// DefaultRegistry is the global rule registry with the default L-Rules.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a registry populated with the default L-Rules.
func NewRegistry() *Registry {
	r := &Registry{}

	r.Register(NewOrderRule())
	r.Register(NewPairingRule())
	r.Register(NewNumbersRule())
	r.Register(NewUnitsRule(nil))
	r.Register(NewPredicateRule())
	r.Register(NewChecklistLinkRule())
	r.Register(NewThreeCCompletenessRule())
	r.Register(NewSafetyRule())
	r.Register(NewDuplicateRule())
	r.Register(NewClarityRule(0))

	return r
}

// Register appends a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule)
}

// Disable removes rules with the given codes.
func (r *Registry) Disable(codes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	disabled := make(map[string]bool, len(codes))
	for _, c := range codes {
		disabled[c] = true
	}
	kept := r.rules[:0]
	for _, rule := range r.rules {
		if !disabled[rule.Code()] {
			kept = append(kept, rule)
		}
	}
	r.rules = kept
}

// Rules returns the registered rules in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Validate runs every registered rule and returns the union of their issues.
// A rule that panics is reported as an issue under its own code; one bad rule
// never aborts the pass.
func (r *Registry) Validate(doc *psl.Document) []psl.Issue {
	var issues []psl.Issue
	for _, rule := range r.Rules() {
		issues = append(issues, runRule(rule, doc)...)
	}
	return issues
}

// Validate runs the default registry against a document.
func Validate(doc *psl.Document) []psl.Issue {
	return DefaultRegistry.Validate(doc)
}

func runRule(rule Rule, doc *psl.Document) (issues []psl.Issue) {
	defer func() {
		if rec := recover(); rec != nil {
			issues = append(issues, psl.Issue{
				Severity: psl.SeverityError,
				Code:     rule.Code(),
				Message:  fmt.Sprintf("rule failed to evaluate: %v", rec),
			})
		}
	}()
	return rule.Check(doc)
}
