// Package ast provides the canonical nested key-value representation of a
// PSL document: the boundary format consumed by anything downstream of the
// pipeline.
//
// Serialization is deterministic and round-trip safe: identical documents
// produce identical canonical structures, and deserializing the structure
// produced from a document yields a document equal on every contract field.
// The sections mapping keeps its key order, which for conforming documents is
// the canonical section order.
package ast

import (
	"fmt"

	"github.com/c360studio/pslspec/psl"
)

// ThreeC mirrors the parsed [3C] flags in the canonical structure.
type ThreeC struct {
	Clear bool `json:"clear"`
	Cheap bool `json:"cheap"`
	Safe  bool `json:"safe"`
}

// Document is the canonical AST form with the stable contract keys.
type Document struct {
	Version     string     `json:"version"`
	Context     string     `json:"context"`
	Goal        string     `json:"goal"`
	Constraints []string   `json:"constraints"`
	Resources   string     `json:"resources,omitempty"`
	Skill       string     `json:"skill,omitempty"`
	Sections    SectionMap `json:"sections"`
	ThreeC      *ThreeC    `json:"threeC,omitempty"`
	Gloss       string     `json:"gloss,omitempty"`
}

// FromDocument converts a parsed document to its canonical AST form.
func FromDocument(doc *psl.Document) *Document {
	out := &Document{
		Version:     doc.Header.Version,
		Context:     doc.Header.Context,
		Goal:        doc.Header.Goal,
		Constraints: append([]string(nil), doc.Header.Constraints...),
		Resources:   doc.Header.Resources,
		Skill:       doc.Header.Skill,
		Gloss:       doc.Gloss,
	}
	for _, s := range doc.Sections {
		out.Sections = append(out.Sections, SectionEntry{
			Tag:   s.Tag.String(),
			Lines: append([]string(nil), s.Lines...),
		})
	}
	if doc.ThreeC != nil {
		out.ThreeC = &ThreeC{
			Clear: doc.ThreeC.Clear,
			Cheap: doc.ThreeC.Cheap,
			Safe:  doc.ThreeC.Safe,
		}
	}
	return out
}

// ToDocument performs the inverse conversion. Section entries are restored in
// their listed order; unknown tags in the sections mapping are rejected.
func (d *Document) ToDocument() (*psl.Document, error) {
	if d.Version == "" || d.Context == "" || d.Goal == "" || len(d.Constraints) == 0 {
		return nil, fmt.Errorf("canonical structure is missing a mandatory header field")
	}

	doc := &psl.Document{
		Header: psl.Header{
			Version:     d.Version,
			Context:     d.Context,
			Goal:        d.Goal,
			Constraints: append([]string(nil), d.Constraints...),
			Resources:   d.Resources,
			Skill:       d.Skill,
		},
		Gloss: d.Gloss,
	}

	for _, entry := range d.Sections {
		tag, ok := psl.ParseSectionTag(entry.Tag)
		if !ok {
			return nil, fmt.Errorf("unknown section tag %q in canonical structure", entry.Tag)
		}
		doc.Sections = append(doc.Sections, psl.Section{
			Tag:   tag,
			Lines: append([]string(nil), entry.Lines...),
		})
	}

	if d.ThreeC != nil {
		doc.ThreeC = &psl.ThreeC{
			Clear: d.ThreeC.Clear,
			Cheap: d.ThreeC.Cheap,
			Safe:  d.ThreeC.Safe,
		}
	}

	return doc, nil
}
