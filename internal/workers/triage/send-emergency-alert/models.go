// internal/workers/triage/send-emergency-alert/models.go
package sendemergencyalert

type Input struct {
	ConversationID  string   `json:"conversationId"`
	RiskLevel       string   `json:"riskLevel"`
	UrgencyLevel    string   `json:"urgencyLevel"`
	MatchedKeywords []string `json:"matchedEmergencyKeywords"`
}

type Output struct {
	AlertID string `json:"alertId"`
	Status  string `json:"alertStatus"`
	SentAt  string `json:"alertSentAt"`
}

const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"
)
