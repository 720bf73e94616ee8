package psl

import (
	"errors"
	"fmt"
)

// ParseErrorKind discriminates the fatal parse failures. Parse errors abort a
// single parse attempt and never produce a partial document; everything else
// is surfaced as an Issue.
type ParseErrorKind string

const (
	// KindEmptyDocument means the input was empty or whitespace-only.
	KindEmptyDocument ParseErrorKind = "EmptyDocument"

	// KindMissingHeaderField means a mandatory header field line was absent
	// or had an empty value.
	KindMissingHeaderField ParseErrorKind = "MissingHeaderField"

	// KindMalformedVersionDeclaration means the leading !psl line did not
	// match the expected "!psl v<version>" shape.
	KindMalformedVersionDeclaration ParseErrorKind = "MalformedVersionDeclaration"
)

// ParseError is a fatal failure of one parse attempt.
type ParseError struct {
	// Kind discriminates the failure class.
	Kind ParseErrorKind

	// Field names the header field involved, when applicable.
	Field string

	// Line is the 1-based source line, zero when unknown.
	Line int

	// Message is the human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %q)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsParseError reports whether err is (or wraps) a ParseError of the given kind.
func IsParseError(err error, kind ParseErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
