// Package psl provides the document model for PSL contracts.
//
// A PSL document describes a task as a header (version, context, goal,
// constraints) followed by ordered bracket-tagged sections that mechanically
// separate verified facts from hypotheses and pair every hypothesis with a
// rollback. The model here is produced by psl/parser and consumed by the
// validator, metrics, and ast packages; it is never mutated after parsing.
package psl

import "strings"

// Header holds the parsed declaration block that precedes the sections.
type Header struct {
	// Version is the declared PSL version (e.g. "0.1").
	Version string `json:"version"`

	// Context names the task domain (e.g. "kitchen").
	Context string `json:"context"`

	// Goal is the free-text task goal.
	Goal string `json:"goal"`

	// Constraints are the raw constraint strings in declaration order.
	// Duplicates are allowed; predicate parsing is deferred to the
	// validator/metrics layer.
	Constraints []string `json:"constraints"`

	// Resources optionally lists available resources as free text.
	Resources string `json:"resources,omitempty"`

	// Skill optionally declares the operator skill level.
	Skill string `json:"skill,omitempty"`
}

// Section is one bracket-tagged region of the document. Sections are opaque
// text containers: lines are captured verbatim and not interpreted beyond
// line splitting.
type Section struct {
	// Tag is the section kind.
	Tag SectionTag `json:"tag"`

	// Lines are the section's non-empty lines, trimmed, in source order.
	Lines []string `json:"lines"`

	// Line is the 1-based source line of the [TAG] marker.
	// Diagnostic only; not part of the serialization contract.
	Line int `json:"-"`
}

// Entries returns the section's lines with bullet markers stripped.
// Used wherever entry counts matter (hypothesis/rollback pairing, metrics).
func (s Section) Entries() []string {
	out := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		out = append(out, stripBullet(line))
	}
	return out
}

// IsEmpty reports whether the section has no content lines.
func (s Section) IsEmpty() bool {
	return len(s.Lines) == 0
}

// stripBullet removes a leading "- " or "1) " style list marker.
func stripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(trimmed, "- "); ok {
		return strings.TrimSpace(rest)
	}
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && (trimmed[i] == ')' || trimmed[i] == '.') {
		return strings.TrimSpace(trimmed[i+1:])
	}
	return trimmed
}

// ThreeC holds the three self-assessment flags from the [3C] section.
type ThreeC struct {
	Clear bool `json:"clear"`
	Cheap bool `json:"cheap"`
	Safe  bool `json:"safe"`
}

// TrueCount returns how many of the three flags are set.
func (c ThreeC) TrueCount() int {
	n := 0
	for _, f := range []bool{c.Clear, c.Cheap, c.Safe} {
		if f {
			n++
		}
	}
	return n
}

// Document is the immutable in-memory representation of one PSL contract.
// It is owned by the pipeline invocation that created it; nothing downstream
// mutates it, so documents may be shared across goroutines freely.
type Document struct {
	// Header is the parsed declaration block.
	Header Header `json:"header"`

	// Sections are the recognized sections in source order.
	Sections []Section `json:"sections"`

	// ThreeC is the parsed [3C] assessment, nil when the section is absent.
	ThreeC *ThreeC `json:"three_c,omitempty"`

	// Gloss is the [GLOSS] section text, empty when the section is absent.
	Gloss string `json:"gloss,omitempty"`
}

// Section returns the section with the given tag, or nil when absent.
func (d *Document) Section(tag SectionTag) *Section {
	for i := range d.Sections {
		if d.Sections[i].Tag == tag {
			return &d.Sections[i]
		}
	}
	return nil
}

// HasSection reports whether a section with the given tag is present.
func (d *Document) HasSection(tag SectionTag) bool {
	return d.Section(tag) != nil
}

// EntryCount returns the number of entries in the given section,
// zero when the section is absent.
func (d *Document) EntryCount(tag SectionTag) int {
	if s := d.Section(tag); s != nil {
		return len(s.Entries())
	}
	return 0
}

// Equal reports field-for-field equality on the serialization contract:
// header, section tags and lines in order, 3C flags, and gloss.
// Source positions are diagnostic only and excluded.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !headerEqual(d.Header, other.Header) {
		return false
	}
	if len(d.Sections) != len(other.Sections) {
		return false
	}
	for i := range d.Sections {
		if d.Sections[i].Tag != other.Sections[i].Tag {
			return false
		}
		if !stringsEqual(d.Sections[i].Lines, other.Sections[i].Lines) {
			return false
		}
	}
	if (d.ThreeC == nil) != (other.ThreeC == nil) {
		return false
	}
	if d.ThreeC != nil && *d.ThreeC != *other.ThreeC {
		return false
	}
	return d.Gloss == other.Gloss
}

func headerEqual(a, b Header) bool {
	return a.Version == b.Version &&
		a.Context == b.Context &&
		a.Goal == b.Goal &&
		a.Resources == b.Resources &&
		a.Skill == b.Skill &&
		stringsEqual(a.Constraints, b.Constraints)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
