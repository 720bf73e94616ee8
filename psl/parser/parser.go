package parser

import (
	"regexp"
	"strings"

	"github.com/c360studio/pslspec/psl"
)

// threeCFlagPattern matches one "flag: yes/no" assignment inside [3C].
var threeCFlagPattern = regexp.MustCompile(`(?i)\b(clear|cheap|safe):\s*(yes|no|true|false)`)

// Parse parses a complete PSL document.
//
// It returns a fatal ParseError only when no meaningful document can be
// produced (empty input, unparseable header). Otherwise it returns the
// document together with every structural issue found in one pass; callers
// merge these with validator issues into a single report.
func Parse(text string) (*psl.Document, []psl.Issue, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, &psl.ParseError{
			Kind:    psl.KindEmptyDocument,
			Message: "input is empty",
		}
	}

	lines := strings.Split(text, "\n")
	headerEnd := len(lines)
	for i, raw := range lines {
		if tagLinePattern.MatchString(strings.TrimSpace(raw)) {
			headerEnd = i
			break
		}
	}

	header, err := parseHeaderLines(lines[:headerEnd], 0)
	if err != nil {
		return nil, nil, err
	}

	sections, issues := parseSectionLines(lines[headerEnd:], headerEnd)

	doc := &psl.Document{
		Header:   header,
		Sections: sections,
	}
	if s := doc.Section(psl.TagThreeC); s != nil {
		doc.ThreeC = parseThreeC(s.Lines)
	}
	if s := doc.Section(psl.TagGloss); s != nil {
		doc.Gloss = strings.Join(s.Lines, "\n")
	}

	return doc, issues, nil
}

// parseThreeC extracts the clear/cheap/safe flags from the [3C] section lines.
// The flags may share one line or occupy one line each; absent flags default
// to false (completeness is the L-07 rule's concern).
func parseThreeC(lines []string) *psl.ThreeC {
	c := &psl.ThreeC{}
	for _, line := range lines {
		for _, m := range threeCFlagPattern.FindAllStringSubmatch(line, -1) {
			set := strings.EqualFold(m[2], "yes") || strings.EqualFold(m[2], "true")
			switch strings.ToLower(m[1]) {
			case "clear":
				c.Clear = set
			case "cheap":
				c.Cheap = set
			case "safe":
				c.Safe = set
			}
		}
	}
	return c
}
