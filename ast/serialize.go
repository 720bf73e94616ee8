package ast

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/pslspec/psl"
)

// Marshal serializes a document to canonical JSON.
func Marshal(doc *psl.Document) ([]byte, error) {
	data, err := json.Marshal(FromDocument(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal canonical structure: %w", err)
	}
	return data, nil
}

// MarshalIndent serializes a document to indented canonical JSON.
func MarshalIndent(doc *psl.Document) ([]byte, error) {
	data, err := json.MarshalIndent(FromDocument(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal canonical structure: %w", err)
	}
	return data, nil
}

// Unmarshal deserializes canonical JSON back into a document.
func Unmarshal(data []byte) (*psl.Document, error) {
	var node Document
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("unmarshal canonical structure: %w", err)
	}
	return node.ToDocument()
}
