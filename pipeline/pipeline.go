// Package pipeline ties the PSL stages together: text -> document ->
// {issues, metrics}.
//
// A run either fails with a fatal parse error, or completes with a document,
// the merged parse and validation issues, and a metrics report. There is no
// silent partial result: callers always see the full diagnosis of one pass.
// Runs share no state, so documents may be processed concurrently from
// independent goroutines without coordination.
package pipeline

import (
	"github.com/c360studio/pslspec/metrics"
	"github.com/c360studio/pslspec/psl"
	"github.com/c360studio/pslspec/psl/parser"
	"github.com/c360studio/pslspec/validator"
)

// Result is the complete outcome of one pipeline run.
type Result struct {
	// Document is the parsed document.
	Document *psl.Document `json:"document"`

	// Issues is the union of parse-time structural issues and L-Rule issues.
	Issues []psl.Issue `json:"issues"`

	// Metrics is the acceptance metrics report.
	Metrics metrics.Report `json:"metrics"`
}

// HasErrors reports whether the run surfaced any error-severity issue.
func (r *Result) HasErrors() bool {
	return psl.HasErrors(r.Issues)
}

// Option configures a pipeline run.
type Option func(*options)

type options struct {
	registry    *validator.Registry
	metricsOpts []metrics.Option
}

// WithRegistry selects the rule registry for the validation stage.
// The default is validator.DefaultRegistry.
func WithRegistry(reg *validator.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithSatisfaction supplies the per-constraint judgment vector for CSR.
func WithSatisfaction(satisfied []bool) Option {
	return func(o *options) {
		o.metricsOpts = append(o.metricsOpts, metrics.WithSatisfaction(satisfied))
	}
}

// Run processes one PSL text end to end.
func Run(text string, opts ...Option) (*Result, error) {
	o := options{registry: validator.DefaultRegistry}
	for _, opt := range opts {
		opt(&o)
	}

	doc, issues, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}

	issues = append(issues, o.registry.Validate(doc)...)

	return &Result{
		Document: doc,
		Issues:   issues,
		Metrics:  metrics.Compute(doc, o.metricsOpts...),
	}, nil
}
