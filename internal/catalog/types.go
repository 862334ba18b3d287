// internal/catalog/types.go
package catalog

// Severity grades how serious a symptom or disease is. The emergency grade
// only applies to diseases; symptom-level and relation-level severities top
// out at severe.
type Severity string

const (
	SeverityMild      Severity = "mild"
	SeverityModerate  Severity = "moderate"
	SeveritySevere    Severity = "severe"
	SeverityEmergency Severity = "emergency"
)

// Rank maps a severity onto a fixed total order used for tie-breaking:
// emergency > severe > moderate > mild. Unknown values rank below mild so a
// malformed catalog entry can never outrank a well-formed one.
func (s Severity) Rank() int {
	switch s {
	case SeverityEmergency:
		return 4
	case SeveritySevere:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMild:
		return 1
	}
	return 0
}

// Valid reports whether s is one of the known severity grades.
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// Symptom is a single catalog symptom. Keywords hold the lowercase aliases
// and synonyms the extractor matches against free text.
type Symptom struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Keywords  []string `json:"keywords"`
	Emergency bool     `json:"isEmergencySymptom"`
	Severity  Severity `json:"severity"`
}

// Disease is a single catalog disease.
type Disease struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Severity Severity `json:"severityLevel"`
}

// Relation links a disease to one of its symptoms. Weight expresses how
// important the symptom is to the disease and Probability how often it
// appears; both live in [0,1] and weights for one disease do not need to sum
// to 1.
type Relation struct {
	DiseaseID   string   `json:"diseaseId"`
	SymptomID   string   `json:"symptomId"`
	Weight      float64  `json:"weight"`
	Probability float64  `json:"probability"`
	Severity    Severity `json:"severity"`
}
