// Package parser turns raw PSL text into the document model.
//
// Parsing is split the way the grammar is: a header region (everything before
// the first bracket-tagged line) parsed strictly, and a sections region parsed
// resiliently, collecting structural issues instead of stopping at the first
// one. Both halves are pure functions of their input.
package parser

import (
	"regexp"
	"strings"

	"github.com/c360studio/pslspec/psl"
)

// versionPattern matches the leading declaration line, e.g. "!psl v0.1".
var versionPattern = regexp.MustCompile(`^!psl\s+v(\S+)$`)

// ParseHeader parses the header region into a Header.
// It fails with MissingHeaderField when a mandatory field line is absent or
// empty, and MalformedVersionDeclaration when the !psl line has the wrong shape.
func ParseHeader(text string) (psl.Header, error) {
	return parseHeaderLines(strings.Split(text, "\n"), 0)
}

func parseHeaderLines(lines []string, offset int) (psl.Header, error) {
	var header psl.Header
	sawVersion := false

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "!psl"):
			m := versionPattern.FindStringSubmatch(line)
			if m == nil {
				return psl.Header{}, &psl.ParseError{
					Kind:    psl.KindMalformedVersionDeclaration,
					Line:    offset + i + 1,
					Message: "declaration line must match \"!psl v<version>\"",
				}
			}
			header.Version = m[1]
			sawVersion = true
		case strings.HasPrefix(line, "context:"):
			header.Context = fieldValue(line)
		case strings.HasPrefix(line, "goal:"):
			header.Goal = fieldValue(line)
		case strings.HasPrefix(line, "constraints:"):
			header.Constraints = splitConstraints(fieldValue(line))
		case strings.HasPrefix(line, "resources:"):
			header.Resources = fieldValue(line)
		case strings.HasPrefix(line, "skill:"):
			header.Skill = fieldValue(line)
		}
	}

	if !sawVersion {
		return psl.Header{}, missingField("version")
	}
	if header.Context == "" {
		return psl.Header{}, missingField("context")
	}
	if header.Goal == "" {
		return psl.Header{}, missingField("goal")
	}
	if len(header.Constraints) == 0 {
		return psl.Header{}, missingField("constraints")
	}

	return header, nil
}

func missingField(field string) *psl.ParseError {
	return &psl.ParseError{
		Kind:    psl.KindMissingHeaderField,
		Field:   field,
		Message: "mandatory header field is absent or empty",
	}
}

// fieldValue returns the trimmed text after the first colon.
func fieldValue(line string) string {
	_, rest, _ := strings.Cut(line, ":")
	return strings.TrimSpace(rest)
}

// splitConstraints splits the constraints value on semicolons. Individual
// strings are trimmed but not parsed; predicate parsing is deferred.
func splitConstraints(value string) []string {
	var out []string
	for _, c := range strings.Split(value, ";") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
