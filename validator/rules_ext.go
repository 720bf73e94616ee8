package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/pslspec/psl"
)

// DefaultMaxEntryLength is the L-10 clarity threshold when none is configured.
const DefaultMaxEntryLength = 200

// riskKeywords trigger the L-08 safety check when they appear anywhere in the
// document outside [SAFETY].
var riskKeywords = []string{"allerg", "danger", "risk", "toxic", "harm", "hazard", "warn"}

var flagFieldPattern = regexp.MustCompile(`(?i)\b(clear|cheap|safe):`)

// ChecklistLinkRule (L-06) checks that every constraint identifier is
// referenced somewhere in [CHECKLIST], so acceptance criteria stay tied to
// the declared constraints.
type ChecklistLinkRule struct{}

// NewChecklistLinkRule creates the L-06 rule.
func NewChecklistLinkRule() *ChecklistLinkRule { return &ChecklistLinkRule{} }

// Code returns the rule identifier.
func (r *ChecklistLinkRule) Code() string { return "L-06" }

// Check warns per parseable constraint whose identifier the checklist never mentions.
// Absence of the checklist itself is already a MissingMandatorySection issue.
func (r *ChecklistLinkRule) Check(doc *psl.Document) []psl.Issue {
	checklist := doc.Section(psl.TagChecklist)
	if checklist == nil {
		return nil
	}
	text := strings.ToLower(strings.Join(checklist.Lines, "\n"))

	var issues []psl.Issue
	for _, raw := range doc.Header.Constraints {
		pred, err := psl.ParsePredicate(raw)
		if err != nil {
			continue // L-05's concern
		}
		if !strings.Contains(text, strings.ToLower(pred.Ident)) {
			issues = append(issues, psl.Issue{
				Severity: psl.SeverityWarning,
				Code:     r.Code(),
				Section:  psl.TagChecklist,
				Line:     checklist.Line,
				Message:  fmt.Sprintf("constraint %q is not referenced in [CHECKLIST]", pred.Ident),
			})
		}
	}
	return issues
}

// ThreeCCompletenessRule (L-07) checks that the [3C] section assigns all
// three flags explicitly.
type ThreeCCompletenessRule struct{}

// NewThreeCCompletenessRule creates the L-07 rule.
func NewThreeCCompletenessRule() *ThreeCCompletenessRule { return &ThreeCCompletenessRule{} }

// Code returns the rule identifier.
func (r *ThreeCCompletenessRule) Code() string { return "L-07" }

// Check warns when a clear/cheap/safe field is missing from [3C].
func (r *ThreeCCompletenessRule) Check(doc *psl.Document) []psl.Issue {
	section := doc.Section(psl.TagThreeC)
	if section == nil {
		return nil
	}

	seen := map[string]bool{}
	for _, line := range section.Lines {
		for _, m := range flagFieldPattern.FindAllStringSubmatch(line, -1) {
			seen[strings.ToLower(m[1])] = true
		}
	}

	var missing []string
	for _, flag := range []string{"clear", "cheap", "safe"} {
		if !seen[flag] {
			missing = append(missing, flag)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []psl.Issue{{
		Severity: psl.SeverityWarning,
		Code:     r.Code(),
		Section:  psl.TagThreeC,
		Line:     section.Line,
		Message:  fmt.Sprintf("[3C] is missing flags: %s", strings.Join(missing, ", ")),
	}}
}

// SafetyRule (L-08) checks that risk-bearing documents carry safety notes.
type SafetyRule struct{}

// NewSafetyRule creates the L-08 rule.
func NewSafetyRule() *SafetyRule { return &SafetyRule{} }

// Code returns the rule identifier.
func (r *SafetyRule) Code() string { return "L-08" }

// Check warns when risk keywords appear outside [SAFETY] but the safety
// section is absent or empty.
func (r *SafetyRule) Check(doc *psl.Document) []psl.Issue {
	safety := doc.Section(psl.TagSafety)
	if safety != nil && !safety.IsEmpty() {
		return nil
	}
	if !r.hasRiskMentions(doc) {
		return nil
	}
	issue := psl.Issue{
		Severity: psl.SeverityWarning,
		Code:     r.Code(),
		Section:  psl.TagSafety,
		Message:  "document mentions risks but [SAFETY] is empty",
	}
	if safety != nil {
		issue.Line = safety.Line
	}
	return []psl.Issue{issue}
}

func (r *SafetyRule) hasRiskMentions(doc *psl.Document) bool {
	contains := func(text string) bool {
		text = strings.ToLower(text)
		for _, kw := range riskKeywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}

	for _, raw := range doc.Header.Constraints {
		if contains(raw) {
			return true
		}
	}
	for _, s := range doc.Sections {
		if s.Tag == psl.TagSafety {
			continue
		}
		for _, line := range s.Lines {
			if contains(line) {
				return true
			}
		}
	}
	return false
}

// DuplicateRule (L-09) checks for repeated entries within one section.
type DuplicateRule struct{}

// NewDuplicateRule creates the L-09 rule.
func NewDuplicateRule() *DuplicateRule { return &DuplicateRule{} }

// Code returns the rule identifier.
func (r *DuplicateRule) Code() string { return "L-09" }

// Check warns per entry that repeats an earlier entry in the same section.
// Comparison is case-insensitive after bullet stripping.
func (r *DuplicateRule) Check(doc *psl.Document) []psl.Issue {
	var issues []psl.Issue
	for _, s := range doc.Sections {
		seen := map[string]bool{}
		for _, entry := range s.Entries() {
			key := strings.ToLower(entry)
			if seen[key] {
				issues = append(issues, psl.Issue{
					Severity: psl.SeverityWarning,
					Code:     r.Code(),
					Section:  s.Tag,
					Line:     s.Line,
					Message:  fmt.Sprintf("duplicate entry in [%s]: %q", s.Tag, entry),
				})
			}
			seen[key] = true
		}
	}
	return issues
}

// ClarityRule (L-10) checks that entries stay within a readable length.
type ClarityRule struct {
	maxLen int
}

// NewClarityRule creates the L-10 rule. A non-positive maxLen selects
// DefaultMaxEntryLength.
func NewClarityRule(maxLen int) *ClarityRule {
	if maxLen <= 0 {
		maxLen = DefaultMaxEntryLength
	}
	return &ClarityRule{maxLen: maxLen}
}

// Code returns the rule identifier.
func (r *ClarityRule) Code() string { return "L-10" }

// Check warns per entry exceeding the length threshold.
func (r *ClarityRule) Check(doc *psl.Document) []psl.Issue {
	var issues []psl.Issue
	for _, s := range doc.Sections {
		for _, entry := range s.Entries() {
			if len(entry) > r.maxLen {
				issues = append(issues, psl.Issue{
					Severity: psl.SeverityWarning,
					Code:     r.Code(),
					Section:  s.Tag,
					Line:     s.Line,
					Message:  fmt.Sprintf("entry in [%s] is %d characters long (max %d)", s.Tag, len(entry), r.maxLen),
				})
			}
		}
	}
	return issues
}
