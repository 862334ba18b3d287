// internal/triage/types.go
package triage

// RiskLevel is the coarse concern bucket of one decision.
type RiskLevel string

const (
	RiskLow       RiskLevel = "low"
	RiskMedium    RiskLevel = "medium"
	RiskHigh      RiskLevel = "high"
	RiskEmergency RiskLevel = "emergency"
)

// UrgencyLevel is the recommended response timing, derived jointly with the
// risk level.
type UrgencyLevel string

const (
	UrgencyRoutine   UrgencyLevel = "routine"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyImmediate UrgencyLevel = "immediate"
)

// DurationBuckets is the fixed list of accepted symptom duration values,
// matching what the chat UI offers.
var DurationBuckets = []string{
	"minutos",
	"horas",
	"1 día",
	"2-3 días",
	"1 semana",
	"2-4 semanas",
	"1 mes",
	"más de 1 mes",
	"crónico",
}

// UserContext is the optional structured context accompanying one message.
// All fields are optional; a nil pointer means "not reported".
type UserContext struct {
	AgeYears         *int     `json:"ageYears,omitempty"`
	PainLevel        *int     `json:"painLevel,omitempty"` // 1..10
	DurationBucket   string   `json:"durationBucket,omitempty"`
	ReportedSymptoms []string `json:"reportedSymptoms,omitempty"`
}

// Candidate is one ranked disease in a decision.
type Candidate struct {
	DiseaseID         string   `json:"diseaseId"`
	DiseaseName       string   `json:"diseaseName"`
	MatchScore        float64  `json:"matchScore"`
	MatchingSymptoms  []string `json:"matchingSymptoms"`
	UrgencyIndicators []string `json:"urgencyIndicators"`
}

// Decision is the complete structured output of one engine evaluation. It is
// created fresh per message, has no identity of its own, and is fully
// determined by the inputs and the active catalog snapshot.
type Decision struct {
	ExtractedSymptoms        []string     `json:"extractedSymptoms"`
	EmergencyDetected        bool         `json:"emergencyDetected"`
	MatchedEmergencyKeywords []string     `json:"matchedEmergencyKeywords"`
	Candidates               []Candidate  `json:"candidates"`
	RiskLevel                RiskLevel    `json:"riskLevel"`
	UrgencyLevel             UrgencyLevel `json:"urgencyLevel"`
	Recommendations          []string     `json:"recommendations"`
	Disclaimer               string       `json:"disclaimer"`
}

// Disclaimer accompanies every decision. The chat layer appends it to each
// reply verbatim.
const Disclaimer = "Esta orientación no sustituye una consulta médica profesional. " +
	"Ante cualquier duda sobre tu salud, consulta a un médico."
