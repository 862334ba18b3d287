// internal/triage/recommend_test.go
package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_EveryLevelHasActions(t *testing.T) {
	for _, level := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskEmergency} {
		assert.NotEmpty(t, Recommend(level), "level %s", level)
	}
}

func TestRecommend_UnknownLevelFallsBackToLow(t *testing.T) {
	assert.Equal(t, Recommend(RiskLow), Recommend(RiskLevel("desconocido")))
}

func TestRecommend_ReturnsACopy(t *testing.T) {
	first := Recommend(RiskHigh)
	require.NotEmpty(t, first)
	first[0] = "mutado"

	assert.NotEqual(t, "mutado", Recommend(RiskHigh)[0])
}

func TestRecommend_EmergencyTellsUserToCall(t *testing.T) {
	actions := Recommend(RiskEmergency)
	require.NotEmpty(t, actions)
	assert.Contains(t, actions[0], "emergencia")
}
