// internal/workers/triage/evaluate-triage/models.go
package evaluatetriage

import "gastro-triage/internal/triage"

type Input struct {
	ConversationID string              `json:"conversationId"`
	Message        string              `json:"message"`
	Context        *triage.UserContext `json:"context,omitempty"`
}

// Output flattens the decision fields the workflow branches on next to the
// full decision object.
type Output struct {
	Triage            *triage.Decision `json:"triage"`
	RiskLevel         string           `json:"riskLevel"`
	UrgencyLevel      string           `json:"urgencyLevel"`
	EmergencyDetected bool             `json:"emergencyDetected"`
}
