// internal/catalog/file_test.go
package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastro-triage/internal/common/logger"
)

const validCatalogJSON = `{
  "symptoms": [
    {"id": "s-1", "name": "Dolor abdominal", "keywords": ["dolor de estómago"], "isEmergencySymptom": false, "severity": "moderate"},
    {"id": "s-2", "name": "Vómito con sangre", "keywords": ["vomitando sangre"], "isEmergencySymptom": true, "severity": "severe"}
  ],
  "diseases": [
    {"id": "d-1", "name": "Gastritis", "category": "estomacal", "severityLevel": "moderate"}
  ],
  "relations": [
    {"diseaseId": "d-1", "symptomId": "s-1", "weight": 0.9, "probability": 0.8, "severity": "moderate"}
  ]
}`

func TestParse_ValidDocument(t *testing.T) {
	snap, err := Parse([]byte(validCatalogJSON), logger.NewTestLogger(t))
	require.NoError(t, err)

	symptoms, diseases, relations := snap.Counts()
	assert.Equal(t, 2, symptoms)
	assert.Equal(t, 1, diseases)
	assert.Equal(t, 1, relations)

	sym, ok := snap.Symptom("s-2")
	require.True(t, ok)
	assert.True(t, sym.Emergency)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "not json",
			raw:  "not json at all",
		},
		{
			name: "missing top-level sections",
			raw:  `{"symptoms": []}`,
		},
		{
			name: "weight above one",
			raw: `{"symptoms": [{"id": "s-1", "name": "X", "severity": "mild"}],
			       "diseases": [{"id": "d-1", "name": "Y", "severityLevel": "mild"}],
			       "relations": [{"diseaseId": "d-1", "symptomId": "s-1", "weight": 2, "probability": 0.5, "severity": "mild"}]}`,
		},
		{
			name: "unknown severity enum value",
			raw: `{"symptoms": [{"id": "s-1", "name": "X", "severity": "catastrophic"}],
			       "diseases": [], "relations": []}`,
		},
		{
			name: "symptom with emergency severity",
			raw: `{"symptoms": [{"id": "s-1", "name": "X", "severity": "emergency"}],
			       "diseases": [], "relations": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw), logger.NewTestLogger(t))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(validCatalogJSON), 0o644))

	snap, err := LoadFile(path, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"d-1"}, snap.MatchableDiseaseIDs())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), logger.NewTestLogger(t))
	assert.Error(t, err)
}

func TestValidateDocument_ReportsEveryViolation(t *testing.T) {
	raw := `{"symptoms": [{"id": "", "name": "", "severity": "mild"}],
	         "diseases": [{"id": "d-1", "name": "Y", "severityLevel": "wrong"}],
	         "relations": []}`

	err := ValidateDocument([]byte(raw))
	require.Error(t, err)
	// One pass reports both the empty id and the bad enum.
	assert.Contains(t, err.Error(), "id")
	assert.Contains(t, err.Error(), "severityLevel")
}
