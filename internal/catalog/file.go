// internal/catalog/file.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"gastro-triage/internal/common/logger"
)

// Document is the decoded form of a catalog file.
type Document struct {
	Symptoms  []Symptom  `json:"symptoms"`
	Diseases  []Disease  `json:"diseases"`
	Relations []Relation `json:"relations"`
}

// LoadFile reads, schema-validates and indexes a catalog JSON file.
func LoadFile(path string, log logger.Logger) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(raw, log)
}

// Parse builds a snapshot from raw catalog JSON.
func Parse(raw []byte, log logger.Logger) (*Snapshot, error) {
	if err := ValidateDocument(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return Build(doc.Symptoms, doc.Diseases, doc.Relations, log)
}
