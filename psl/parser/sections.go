package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/pslspec/psl"
)

// tagLinePattern matches a line consisting of exactly one bracketed tag.
var tagLinePattern = regexp.MustCompile(`^\[([A-Za-z0-9_-]+)\]$`)

// parseSectionLines walks the sections region line by line. A recognized tag
// line opens a section; every following non-tag line belongs to it. An
// unrecognized tag opens an unlabeled region that is skipped, recorded as an
// UnknownSectionTag issue. A duplicated tag merges into its first occurrence
// so tags stay unique within the document.
//
// offset is the number of lines preceding the region, used for source positions.
func parseSectionLines(lines []string, offset int) ([]psl.Section, []psl.Issue) {
	var (
		sections []psl.Section
		issues   []psl.Issue
		current  = -1   // index into sections, -1 when outside any section
		skipping bool   // inside an unrecognized section
	)

	indexOf := func(tag psl.SectionTag) int {
		for i := range sections {
			if sections[i].Tag == tag {
				return i
			}
		}
		return -1
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := tagLinePattern.FindStringSubmatch(line)
		if m == nil {
			if skipping || current < 0 {
				continue
			}
			sections[current].Lines = append(sections[current].Lines, line)
			continue
		}

		tag, ok := psl.ParseSectionTag(m[1])
		if !ok {
			issues = append(issues, psl.Issue{
				Severity: psl.SeverityWarning,
				Code:     psl.CodeUnknownSectionTag,
				Line:     offset + i + 1,
				Message:  fmt.Sprintf("unknown section tag [%s]; region skipped", m[1]),
			})
			current, skipping = -1, true
			continue
		}

		skipping = false
		if existing := indexOf(tag); existing >= 0 {
			current = existing
			continue
		}
		sections = append(sections, psl.Section{Tag: tag, Line: offset + i + 1})
		current = len(sections) - 1
	}

	issues = append(issues, checkStructure(sections)...)
	return sections, issues
}

// checkStructure records missing mandatory sections and out-of-canonical-order
// placement as issues. Parsing is never aborted for these: one pass surfaces
// every structural defect.
func checkStructure(sections []psl.Section) []psl.Issue {
	var issues []psl.Issue

	for _, tag := range psl.MandatoryTags() {
		found := false
		for _, s := range sections {
			if s.Tag == tag {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, psl.Issue{
				Severity: psl.SeverityError,
				Code:     psl.CodeMissingMandatorySection,
				Section:  tag,
				Message:  fmt.Sprintf("mandatory section [%s] is missing", tag),
			})
		}
	}

	if tag, actual, expected, ok := psl.FirstOrderDeviation(sectionTags(sections)); ok {
		issues = append(issues, psl.Issue{
			Severity: psl.SeverityError,
			Code:     psl.CodeSectionsOutOfOrder,
			Section:  tag,
			Message:  fmt.Sprintf("section [%s] appears at index %d, expected index %d", tag, actual, expected),
		})
	}

	return issues
}

func sectionTags(sections []psl.Section) []psl.SectionTag {
	tags := make([]psl.SectionTag, len(sections))
	for i, s := range sections {
		tags[i] = s.Tag
	}
	return tags
}
