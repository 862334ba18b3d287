// internal/workers/triage/match-by-symptoms/handler_test.go
package matchbysymptoms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastro-triage/internal/catalog"
	"gastro-triage/internal/common/logger"
	"gastro-triage/internal/triage"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createTestEngine(t *testing.T) *triage.Engine {
	t.Helper()

	symptoms := []catalog.Symptom{
		{ID: "s-pain", Name: "Dolor abdominal", Keywords: []string{"dolor abdominal"}, Severity: catalog.SeverityModerate},
		{ID: "s-diarrhea", Name: "Diarrea", Keywords: []string{"diarrea"}, Severity: catalog.SeverityModerate},
		{ID: "s-severe-pain", Name: "Dolor abdominal severo", Keywords: []string{"dolor abdominal severo"}, Emergency: true, Severity: catalog.SeveritySevere},
	}
	diseases := []catalog.Disease{
		{ID: "d-gastritis", Name: "Gastritis", Category: "estomacal", Severity: catalog.SeverityModerate},
		{ID: "d-gastroenteritis", Name: "Gastroenteritis", Category: "infecciosa", Severity: catalog.SeverityModerate},
	}
	relations := []catalog.Relation{
		{DiseaseID: "d-gastritis", SymptomID: "s-pain", Weight: 0.9, Probability: 0.85, Severity: catalog.SeverityModerate},
		{DiseaseID: "d-gastroenteritis", SymptomID: "s-pain", Weight: 0.7, Probability: 0.7, Severity: catalog.SeverityModerate},
		{DiseaseID: "d-gastroenteritis", SymptomID: "s-diarrhea", Weight: 0.9, Probability: 0.9, Severity: catalog.SeverityModerate},
	}

	snap, err := catalog.Build(symptoms, diseases, relations, logger.NewTestLogger(t))
	require.NoError(t, err)

	return triage.NewEngine(snap, triage.Options{Logger: logger.NewTestLogger(t)})
}

func createTestInput(symptoms ...string) *Input {
	return &Input{
		ConversationID: "conv-002",
		Symptoms:       symptoms,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput("diarrea"))
	require.NoError(t, err)

	require.NotNil(t, output.Triage)
	assert.Equal(t, []string{"s-diarrhea"}, output.Triage.ExtractedSymptoms)

	require.NotEmpty(t, output.Triage.Candidates)
	assert.Equal(t, "d-gastroenteritis", output.Triage.Candidates[0].DiseaseID)
	assert.InDelta(t, 0.5, output.Triage.Candidates[0].MatchScore, 1e-9)
	assert.Equal(t, "medium", output.RiskLevel)
	assert.Equal(t, "urgent", output.UrgencyLevel)
}

func TestHandler_Execute_EmergencyFlaggedSymptom(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput("dolor abdominal severo"))
	require.NoError(t, err)

	// No raw message means no phrase detection, but the flagged symptom
	// still forces high/immediate.
	assert.False(t, output.Triage.EmergencyDetected)
	assert.Equal(t, "high", output.RiskLevel)
	assert.Equal(t, "immediate", output.UrgencyLevel)
}

func TestHandler_Execute_UnresolvedTermsUseOverlap(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput("dolor fuerte"))
	require.NoError(t, err)

	assert.Empty(t, output.Triage.ExtractedSymptoms)
	require.NotEmpty(t, output.Triage.Candidates)
}

func TestHandler_Execute_EmptyList(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestEngine(t), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Empty(t, output.Triage.Candidates)
	assert.Equal(t, "low", output.RiskLevel)
	assert.Equal(t, "routine", output.UrgencyLevel)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_TooManyEntries(t *testing.T) {
	engine := triage.NewEngine(newSnapshotWithLimitCheck(t), triage.Options{
		Limits: triage.Limits{MaxTextLength: 4000, MaxSymptomCount: 2},
		Logger: logger.NewTestLogger(t),
	})
	handler := NewHandler(createTestConfig(), engine, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput("uno", "dos", "tres"))
	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, triage.IsValidationError(err))
}

func newSnapshotWithLimitCheck(t *testing.T) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.Build(nil, nil, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	return snap
}
