package psl

// SectionTag identifies one of the fixed PSL section kinds.
type SectionTag string

const (
	// TagFact holds verified claims; the only section where numbers are expected.
	TagFact SectionTag = "FACT"

	// TagTechnique describes the execution sequence and control points.
	TagTechnique SectionTag = "TECHNIQUE"

	// TagHyp holds speculative claims awaiting verification.
	TagHyp SectionTag = "HYP"

	// TagRollback holds the recovery path paired with each hypothesis.
	TagRollback SectionTag = "ROLLBACK"

	// TagSafety holds hazard warnings and storage/handling notes.
	TagSafety SectionTag = "SAFETY"

	// TagAssumptions is the only optional section kind.
	TagAssumptions SectionTag = "ASSUMPTIONS"

	// TagChecklist holds acceptance criteria tied back to the constraints.
	TagChecklist SectionTag = "CHECKLIST"

	// TagThreeC holds the clear/cheap/safe self-assessment flags.
	TagThreeC SectionTag = "3C"

	// TagGloss holds the closing glossary note.
	TagGloss SectionTag = "GLOSS"
)

// canonicalOrder is the required section sequence when all sections are present.
var canonicalOrder = []SectionTag{
	TagFact,
	TagTechnique,
	TagHyp,
	TagRollback,
	TagSafety,
	TagAssumptions,
	TagChecklist,
	TagThreeC,
	TagGloss,
}

// CanonicalOrder returns the required section sequence.
// The returned slice is a copy and safe to modify.
func CanonicalOrder() []SectionTag {
	out := make([]SectionTag, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// MandatoryTags returns the section kinds that must be present in every document.
func MandatoryTags() []SectionTag {
	out := make([]SectionTag, 0, len(canonicalOrder)-1)
	for _, t := range canonicalOrder {
		if t.Mandatory() {
			out = append(out, t)
		}
	}
	return out
}

// CanonicalIndex returns the position of a tag in the canonical order,
// or -1 for unknown tags.
func CanonicalIndex(tag SectionTag) int {
	for i, t := range canonicalOrder {
		if t == tag {
			return i
		}
	}
	return -1
}

// FirstOrderDeviation compares a sequence of present tags against the
// canonical order restricted to the same set. It returns the first tag whose
// position deviates, with its actual and expected indices. ok is false when
// the sequence is canonically ordered.
func FirstOrderDeviation(actual []SectionTag) (tag SectionTag, actualIdx, expectedIdx int, ok bool) {
	present := make(map[SectionTag]bool, len(actual))
	for _, t := range actual {
		present[t] = true
	}
	expected := make([]SectionTag, 0, len(actual))
	for _, t := range canonicalOrder {
		if present[t] {
			expected = append(expected, t)
		}
	}
	for i, t := range actual {
		if i < len(expected) && expected[i] != t {
			for j, e := range expected {
				if e == t {
					return t, i, j, true
				}
			}
		}
	}
	return "", 0, 0, false
}

// ParseSectionTag converts a raw tag name (the text between brackets) to a
// SectionTag. The second return value reports whether the tag is known.
func ParseSectionTag(s string) (SectionTag, bool) {
	tag := SectionTag(s)
	if tag.IsValid() {
		return tag, true
	}
	return "", false
}

// IsValid checks if the tag is one of the fixed section kinds.
func (t SectionTag) IsValid() bool {
	return CanonicalIndex(t) >= 0
}

// Mandatory reports whether the section kind must be present.
// ASSUMPTIONS is the only optional kind.
func (t SectionTag) Mandatory() bool {
	return t.IsValid() && t != TagAssumptions
}

// String returns the string representation of the tag.
func (t SectionTag) String() string {
	return string(t)
}
