// internal/triage/classifier.go
package triage

import (
	"gastro-triage/internal/catalog"
)

// RiskClassifier folds the emergency flag, the reported symptoms, the top
// candidate and the structured context into one risk/urgency pair.
type RiskClassifier struct{}

func NewRiskClassifier() *RiskClassifier {
	return &RiskClassifier{}
}

// Classify evaluates an ordered set of guards, first match wins:
//
//  1. detected emergency phrase            → emergency / immediate
//  2. emergency-flagged symptom or pain≥8  → high / immediate
//  3. top candidate severe                 → high / urgent
//  4. top candidate moderate or pain 6-7   → medium / urgent
//  5. otherwise                            → low / routine
//
// The order encodes the design rule that an explicit emergency signal always
// dominates statistical disease matching: one critical keyword outranks any
// number of low-confidence matches. An empty candidate list skips guards 3
// and 4.
func (c *RiskClassifier) Classify(snap *catalog.Snapshot, emergencyDetected bool, symptomIDs []string, candidates []Candidate, uctx *UserContext) (RiskLevel, UrgencyLevel) {
	if emergencyDetected {
		return RiskEmergency, UrgencyImmediate
	}

	painLevel := 0
	if uctx != nil && uctx.PainLevel != nil {
		painLevel = *uctx.PainLevel
	}

	if anyEmergencySymptom(snap, symptomIDs) || painLevel >= 8 {
		return RiskHigh, UrgencyImmediate
	}

	if len(candidates) > 0 {
		if top, ok := snap.Disease(candidates[0].DiseaseID); ok {
			switch top.Severity {
			case catalog.SeveritySevere, catalog.SeverityEmergency:
				return RiskHigh, UrgencyUrgent
			case catalog.SeverityModerate:
				return RiskMedium, UrgencyUrgent
			}
		}
	}

	if painLevel >= 6 && painLevel <= 7 {
		return RiskMedium, UrgencyUrgent
	}

	return RiskLow, UrgencyRoutine
}

func anyEmergencySymptom(snap *catalog.Snapshot, symptomIDs []string) bool {
	for _, id := range symptomIDs {
		if sym, ok := snap.Symptom(id); ok && sym.Emergency {
			return true
		}
	}
	return false
}
