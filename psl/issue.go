package psl

import "fmt"

// Severity classifies how serious an issue is.
type Severity string

const (
	// SeverityError indicates a structural defect that should block acceptance.
	SeverityError Severity = "error"

	// SeverityWarning indicates a defect the author should address.
	SeverityWarning Severity = "warning"
)

// Structural issue codes emitted by the section parser. Validator rules use
// their L-xx codes instead.
const (
	CodeUnknownSectionTag       = "UnknownSectionTag"
	CodeMissingMandatorySection = "MissingMandatorySection"
	CodeSectionsOutOfOrder      = "SectionsOutOfOrder"
)

// Issue is one structural or semantic defect found in a document.
// Issues are data, never control flow: collecting them does not abort a run.
type Issue struct {
	// Severity is error or warning.
	Severity Severity `json:"severity"`

	// Code identifies the originating check (e.g. "L-02", "UnknownSectionTag").
	Code string `json:"code"`

	// Section is the tag the issue refers to, empty when not section-specific.
	Section SectionTag `json:"section,omitempty"`

	// Line is the 1-based source line, zero when unknown.
	Line int `json:"line,omitempty"`

	// Message is the human-readable description.
	Message string `json:"message"`
}

// String formats the issue for terminal output.
func (i Issue) String() string {
	loc := ""
	if i.Section != "" {
		loc = fmt.Sprintf(" [%s]", i.Section)
	}
	if i.Line > 0 {
		loc += fmt.Sprintf(" line %d", i.Line)
	}
	return fmt.Sprintf("%s %s%s: %s", i.Severity, i.Code, loc, i.Message)
}

// HasErrors reports whether any issue in the list is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
