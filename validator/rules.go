package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/pslspec/psl"
)

// numberPattern matches a bare numeric token.
var numberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

// unitPattern matches a number adjacent to a short alphabetic token that
// could be a unit (e.g. "90min", "12 usd").
var unitPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\s*([A-Za-z°]{1,4})\b`)

// DefaultUnits is the recognized unit vocabulary used by L-04 when no
// configured set is supplied.
var DefaultUnits = []string{
	"kcal", "g", "kg", "mg",
	"min", "h", "s",
	"usd", "eur",
	"°c", "c", "mm", "cm", "m", "ml", "l",
	"tsp", "tbsp", "pcs",
}

// OrderRule (L-01) checks that sections follow the canonical sequence.
type OrderRule struct{}

// NewOrderRule creates the L-01 rule.
func NewOrderRule() *OrderRule { return &OrderRule{} }

// Code returns the rule identifier.
func (r *OrderRule) Code() string { return "L-01" }

// Check reports the first section whose position deviates from canonical order.
func (r *OrderRule) Check(doc *psl.Document) []psl.Issue {
	tags := make([]psl.SectionTag, len(doc.Sections))
	for i, s := range doc.Sections {
		tags[i] = s.Tag
	}
	tag, actual, expected, deviates := psl.FirstOrderDeviation(tags)
	if !deviates {
		return nil
	}
	issue := psl.Issue{
		Severity: psl.SeverityError,
		Code:     r.Code(),
		Section:  tag,
		Message:  fmt.Sprintf("section [%s] appears at index %d, expected index %d", tag, actual, expected),
	}
	if s := doc.Section(tag); s != nil {
		issue.Line = s.Line
	}
	return []psl.Issue{issue}
}

// PairingRule (L-02) checks that every hypothesis has a paired rollback.
type PairingRule struct{}

// NewPairingRule creates the L-02 rule.
func NewPairingRule() *PairingRule { return &PairingRule{} }

// Code returns the rule identifier.
func (r *PairingRule) Code() string { return "L-02" }

// Check reports an error when rollback entries do not cover the hypotheses.
func (r *PairingRule) Check(doc *psl.Document) []psl.Issue {
	hyp := doc.EntryCount(psl.TagHyp)
	rollback := doc.EntryCount(psl.TagRollback)
	if rollback >= hyp {
		return nil
	}
	issue := psl.Issue{
		Severity: psl.SeverityError,
		Code:     r.Code(),
		Section:  psl.TagRollback,
		Message:  fmt.Sprintf("%d rollback entries for %d hypotheses; every hypothesis needs a paired rollback", rollback, hyp),
	}
	if s := doc.Section(psl.TagRollback); s != nil {
		issue.Line = s.Line
	}
	return []psl.Issue{issue}
}

// NumbersRule (L-03) warns on numeric literals outside [FACT].
// Numbers are verified claims by definition, so they belong in FACT.
type NumbersRule struct{}

// NewNumbersRule creates the L-03 rule.
func NewNumbersRule() *NumbersRule { return &NumbersRule{} }

// Code returns the rule identifier.
func (r *NumbersRule) Code() string { return "L-03" }

// Check warns for every entry outside FACT that contains a numeric literal.
// Severity is fixed at warning; see the config package note on tuning.
func (r *NumbersRule) Check(doc *psl.Document) []psl.Issue {
	var issues []psl.Issue
	for _, s := range doc.Sections {
		if s.Tag == psl.TagFact {
			continue
		}
		for _, entry := range s.Entries() {
			if numberPattern.MatchString(entry) {
				issues = append(issues, psl.Issue{
					Severity: psl.SeverityWarning,
					Code:     r.Code(),
					Section:  s.Tag,
					Line:     s.Line,
					Message:  fmt.Sprintf("numeric literal outside [FACT]: %q", entry),
				})
			}
		}
	}
	return issues
}

// UnitsRule (L-04) warns when a number is adjacent to an unrecognized unit token.
type UnitsRule struct {
	units map[string]bool
}

// NewUnitsRule creates the L-04 rule. A nil or empty set selects DefaultUnits.
func NewUnitsRule(units []string) *UnitsRule {
	if len(units) == 0 {
		units = DefaultUnits
	}
	set := make(map[string]bool, len(units))
	for _, u := range units {
		set[strings.ToLower(u)] = true
	}
	return &UnitsRule{units: set}
}

// Code returns the rule identifier.
func (r *UnitsRule) Code() string { return "L-04" }

// Check warns for number+token pairs whose token is not a recognized unit.
func (r *UnitsRule) Check(doc *psl.Document) []psl.Issue {
	var issues []psl.Issue
	for _, s := range doc.Sections {
		for _, entry := range s.Entries() {
			for _, m := range unitPattern.FindAllStringSubmatch(entry, -1) {
				unit := strings.ToLower(m[1])
				if !r.units[unit] {
					issues = append(issues, psl.Issue{
						Severity: psl.SeverityWarning,
						Code:     r.Code(),
						Section:  s.Tag,
						Line:     s.Line,
						Message:  fmt.Sprintf("unrecognized unit %q in %q", m[1], m[0]),
					})
				}
			}
		}
	}
	return issues
}

// PredicateRule (L-05) checks that every header constraint parses into a
// ConstraintPredicate.
type PredicateRule struct{}

// NewPredicateRule creates the L-05 rule.
func NewPredicateRule() *PredicateRule { return &PredicateRule{} }

// Code returns the rule identifier.
func (r *PredicateRule) Code() string { return "L-05" }

// Check reports an error per constraint string that fails predicate parsing.
func (r *PredicateRule) Check(doc *psl.Document) []psl.Issue {
	var issues []psl.Issue
	for _, raw := range doc.Header.Constraints {
		if _, err := psl.ParsePredicate(raw); err != nil {
			issues = append(issues, psl.Issue{
				Severity: psl.SeverityError,
				Code:     r.Code(),
				Message:  err.Error(),
			})
		}
	}
	return issues
}
