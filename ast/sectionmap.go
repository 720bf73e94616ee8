package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionEntry is one tag -> lines binding in the sections mapping.
type SectionEntry struct {
	Tag   string
	Lines []string
}

// SectionMap is the ordered tag -> line-list mapping of the canonical
// structure. It serializes as a JSON object whose key order is preserved;
// encoding through a plain map would lose the order that the round-trip
// invariant depends on.
type SectionMap []SectionEntry

// Get returns the line list for a tag, nil when absent.
func (m SectionMap) Get(tag string) []string {
	for _, e := range m {
		if e.Tag == tag {
			return e.Lines
		}
	}
	return nil
}

// MarshalJSON encodes the mapping as a JSON object in entry order.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Tag)
		if err != nil {
			return nil, err
		}
		lines := e.Lines
		if lines == nil {
			lines = []string{}
		}
		value, err := json.Marshal(lines)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping its key order.
func (m *SectionMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections: expected JSON object, got %v", tok)
	}

	var out SectionMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sections: expected string key, got %v", tok)
		}
		var lines []string
		if err := dec.Decode(&lines); err != nil {
			return fmt.Errorf("sections[%s]: %w", key, err)
		}
		out = append(out, SectionEntry{Tag: key, Lines: lines})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}
