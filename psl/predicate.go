package psl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Comparator is one of the fixed predicate comparison operators.
type Comparator string

const (
	CmpLE Comparator = "<="
	CmpGE Comparator = ">="
	CmpLT Comparator = "<"
	CmpGT Comparator = ">"
	CmpEQ Comparator = "="
)

// ConstraintPredicate is the parsed form of one header constraint string,
// e.g. "time<=90min" -> {Ident: "time", Comparator: "<=", Value: 90, Unit: "min"}.
// Predicates are derived lazily from raw strings: a constraint that fails to
// parse is an L-05 issue, not a header parse failure.
type ConstraintPredicate struct {
	// Ident is the constrained quantity name.
	Ident string `json:"ident"`

	// Comparator is the comparison operator.
	Comparator Comparator `json:"comparator"`

	// Value is the numeric bound.
	Value float64 `json:"value"`

	// Unit is the optional unit token following the number.
	Unit string `json:"unit,omitempty"`
}

// Satisfied reports whether an actual value meets the predicate.
func (p ConstraintPredicate) Satisfied(actual float64) bool {
	switch p.Comparator {
	case CmpLE:
		return actual <= p.Value
	case CmpGE:
		return actual >= p.Value
	case CmpLT:
		return actual < p.Value
	case CmpGT:
		return actual > p.Value
	case CmpEQ:
		return actual == p.Value
	}
	return false
}

// String renders the predicate back to constraint-string form.
func (p ConstraintPredicate) String() string {
	return fmt.Sprintf("%s%s%g%s", p.Ident, p.Comparator, p.Value, p.Unit)
}

// predicatePattern matches "ident <cmp> number [unit]". Two-character
// comparators are listed before their one-character prefixes.
var predicatePattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.-]*)\s*(<=|>=|<|>|=)\s*(\d+(?:\.\d+)?)\s*([A-Za-z°%$]*)$`)

// ParsePredicate parses one raw constraint string into a ConstraintPredicate.
func ParsePredicate(raw string) (ConstraintPredicate, error) {
	m := predicatePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return ConstraintPredicate{}, fmt.Errorf("constraint %q does not match ident<cmp>number[unit]", raw)
	}

	value, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return ConstraintPredicate{}, fmt.Errorf("constraint %q: parse value: %w", raw, err)
	}

	return ConstraintPredicate{
		Ident:      m[1],
		Comparator: Comparator(m[2]),
		Value:      value,
		Unit:       m[4],
	}, nil
}
