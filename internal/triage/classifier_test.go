// internal/triage/classifier_test.go
package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskClassifier_GuardOrder(t *testing.T) {
	snap := buildTestSnapshot(t)
	classifier := NewRiskClassifier()

	severeTop := []Candidate{{DiseaseID: "d-ulcer", MatchScore: 0.5}}
	moderateTop := []Candidate{{DiseaseID: "d-gastritis", MatchScore: 0.5}}
	emergencyTop := []Candidate{{DiseaseID: "d-appendicitis", MatchScore: 0.5}}

	tests := []struct {
		name              string
		emergencyDetected bool
		symptomIDs        []string
		candidates        []Candidate
		uctx              *UserContext
		expectedRisk      RiskLevel
		expectedUrgency   UrgencyLevel
	}{
		{
			name:              "emergency phrase wins over everything",
			emergencyDetected: true,
			symptomIDs:        []string{"s-nausea"},
			candidates:        moderateTop,
			uctx:              &UserContext{PainLevel: intPtr(2)},
			expectedRisk:      RiskEmergency,
			expectedUrgency:   UrgencyImmediate,
		},
		{
			name:            "emergency-flagged symptom",
			symptomIDs:      []string{"s-nausea", "s-blood-vomit"},
			candidates:      moderateTop,
			expectedRisk:    RiskHigh,
			expectedUrgency: UrgencyImmediate,
		},
		{
			name:            "pain eight",
			symptomIDs:      []string{"s-nausea"},
			candidates:      moderateTop,
			uctx:            &UserContext{PainLevel: intPtr(8)},
			expectedRisk:    RiskHigh,
			expectedUrgency: UrgencyImmediate,
		},
		{
			name:            "top candidate severe",
			symptomIDs:      []string{"s-pain"},
			candidates:      severeTop,
			expectedRisk:    RiskHigh,
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "top candidate emergency severity",
			symptomIDs:      []string{"s-nausea"},
			candidates:      emergencyTop,
			expectedRisk:    RiskHigh,
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "top candidate moderate",
			symptomIDs:      []string{"s-pain"},
			candidates:      moderateTop,
			expectedRisk:    RiskMedium,
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "pain six without candidates",
			uctx:            &UserContext{PainLevel: intPtr(6)},
			expectedRisk:    RiskMedium,
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "pain seven without candidates",
			uctx:            &UserContext{PainLevel: intPtr(7)},
			expectedRisk:    RiskMedium,
			expectedUrgency: UrgencyUrgent,
		},
		{
			name:            "nothing matches",
			expectedRisk:    RiskLow,
			expectedUrgency: UrgencyRoutine,
		},
		{
			name:            "mild pain alone stays low",
			uctx:            &UserContext{PainLevel: intPtr(5)},
			expectedRisk:    RiskLow,
			expectedUrgency: UrgencyRoutine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			risk, urgency := classifier.Classify(snap, tt.emergencyDetected, tt.symptomIDs, tt.candidates, tt.uctx)
			assert.Equal(t, tt.expectedRisk, risk)
			assert.Equal(t, tt.expectedUrgency, urgency)
		})
	}
}

func TestRiskClassifier_OnlyTopCandidateMatters(t *testing.T) {
	snap := buildTestSnapshot(t)
	classifier := NewRiskClassifier()

	// A severe disease below the top slot must not escalate the level.
	candidates := []Candidate{
		{DiseaseID: "d-gastritis", MatchScore: 0.8},
		{DiseaseID: "d-ulcer", MatchScore: 0.4},
	}

	risk, urgency := classifier.Classify(snap, false, []string{"s-pain"}, candidates, nil)
	assert.Equal(t, RiskMedium, risk)
	assert.Equal(t, UrgencyUrgent, urgency)
}

func TestRiskClassifier_NilContext(t *testing.T) {
	snap := buildTestSnapshot(t)

	risk, urgency := NewRiskClassifier().Classify(snap, false, nil, nil, nil)
	assert.Equal(t, RiskLow, risk)
	assert.Equal(t, UrgencyRoutine, urgency)
}
