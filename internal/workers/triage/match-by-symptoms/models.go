// internal/workers/triage/match-by-symptoms/models.go
package matchbysymptoms

import "gastro-triage/internal/triage"

type Input struct {
	ConversationID string              `json:"conversationId"`
	Symptoms       []string            `json:"symptoms"`
	Context        *triage.UserContext `json:"context,omitempty"`
}

type Output struct {
	Triage       *triage.Decision `json:"triage"`
	RiskLevel    string           `json:"riskLevel"`
	UrgencyLevel string           `json:"urgencyLevel"`
}
