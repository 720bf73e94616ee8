// Package metrics computes the PSL acceptance metrics from a parsed document.
//
// The four metrics are independent: partial inputs degrade one metric to an
// explicit "not computed" state without blocking the others. Constraint
// satisfaction in particular is never derivable from the text alone, so CSR
// requires caller-supplied judgment data and is reported as not computed
// rather than fabricated when that data is absent.
package metrics

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/pslspec/psl"
)

// Value is one metric result. Computed distinguishes a real score from a
// metric whose inputs were unavailable.
type Value struct {
	Score    float64
	Computed bool
}

// Computed wraps a score in a computed Value.
func Computed(score float64) Value {
	return Value{Score: score, Computed: true}
}

// NotComputed is the explicit absent-inputs state.
var NotComputed = Value{}

// String renders the value for terminal output.
func (v Value) String() string {
	if !v.Computed {
		return "not computed"
	}
	return fmt.Sprintf("%.2f", v.Score)
}

// MarshalJSON emits the score, or null when not computed.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Computed {
		return []byte("null"), nil
	}
	return json.Marshal(v.Score)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = NotComputed
		return nil
	}
	if err := json.Unmarshal(data, &v.Score); err != nil {
		return err
	}
	v.Computed = true
	return nil
}

// Report holds the four acceptance metrics.
type Report struct {
	// Coverage is the fraction of mandatory sections present and non-empty.
	Coverage Value `json:"psl_coverage"`

	// HRR is the hallucination rejection rate: rollback coverage of hypotheses.
	HRR Value `json:"hrr"`

	// CSR is the constraint satisfaction rate; requires a judgment vector.
	CSR Value `json:"csr"`

	// ThreeCScore is the normalized count of true clear/cheap/safe flags.
	ThreeCScore Value `json:"three_c_score"`
}

// Option configures a metrics computation.
type Option func(*options)

type options struct {
	satisfaction []bool
	hasVector    bool
}

// WithSatisfaction supplies the per-constraint judgment vector for CSR, in
// header constraint order.
func WithSatisfaction(satisfied []bool) Option {
	return func(o *options) {
		o.satisfaction = satisfied
		o.hasVector = true
	}
}

// Compute calculates all metrics for a document.
func Compute(doc *psl.Document, opts ...Option) Report {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return Report{
		Coverage:    coverage(doc),
		HRR:         hrr(doc),
		CSR:         csr(doc, o),
		ThreeCScore: threeCScore(doc),
	}
}

// coverage is count(mandatory sections present and non-empty) / count(mandatory).
func coverage(doc *psl.Document) Value {
	mandatory := psl.MandatoryTags()
	present := 0
	for _, tag := range mandatory {
		if s := doc.Section(tag); s != nil && !s.IsEmpty() {
			present++
		}
	}
	return Computed(float64(present) / float64(len(mandatory)))
}

// hrr is min(1.0, rollback/hyp), vacuously 1.0 when there are no hypotheses.
func hrr(doc *psl.Document) Value {
	hyp := doc.EntryCount(psl.TagHyp)
	if hyp == 0 {
		return Computed(1.0)
	}
	ratio := float64(doc.EntryCount(psl.TagRollback)) / float64(hyp)
	return Computed(min(1.0, ratio))
}

// csr is the fraction of constraints judged satisfied. Without a judgment
// vector of matching length it is not computed.
func csr(doc *psl.Document, o options) Value {
	if !o.hasVector {
		return NotComputed
	}
	total := len(doc.Header.Constraints)
	if total == 0 {
		return Computed(1.0)
	}
	if len(o.satisfaction) != total {
		return NotComputed
	}
	satisfied := 0
	for _, ok := range o.satisfaction {
		if ok {
			satisfied++
		}
	}
	return Computed(float64(satisfied) / float64(total))
}

// threeCScore is true-flag count / 3; not computed when [3C] is absent
// (which coverage and MissingMandatorySection already surface).
func threeCScore(doc *psl.Document) Value {
	if doc.ThreeC == nil {
		return NotComputed
	}
	return Computed(float64(doc.ThreeC.TrueCount()) / 3.0)
}
