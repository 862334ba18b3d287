// internal/triage/matcher_test.go
package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastro-triage/internal/catalog"
	"gastro-triage/internal/common/logger"
)

func TestDiseaseMatcher_ScoreIsMatchingOverRepertoire(t *testing.T) {
	snap := buildTestSnapshot(t)
	matcher := NewDiseaseMatcher(10)

	candidates := matcher.Match(snap, []string{"s-pain", "s-nausea"}, nil)
	require.NotEmpty(t, candidates)

	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.DiseaseID] = c
	}

	assert.InDelta(t, 2.0/3.0, byID["d-gastritis"].MatchScore, 1e-9)
	assert.InDelta(t, 2.0/4.0, byID["d-gastroenteritis"].MatchScore, 1e-9)
	assert.InDelta(t, 1.0/3.0, byID["d-ulcer"].MatchScore, 1e-9)
}

func TestDiseaseMatcher_RankingOrder(t *testing.T) {
	snap := buildTestSnapshot(t)
	matcher := NewDiseaseMatcher(10)

	candidates := matcher.Match(snap, []string{"s-pain", "s-nausea"}, nil)
	require.Len(t, candidates, 4)

	// Scores descend; the 1/3 tie between ulcer and appendicitis resolves by
	// disease severity (emergency before severe).
	assert.Equal(t, []string{"d-gastritis", "d-gastroenteritis", "d-appendicitis", "d-ulcer"}, candidateIDs(candidates))
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].MatchScore, candidates[i].MatchScore)
	}
}

func TestDiseaseMatcher_SeverityThenIDTieBreak(t *testing.T) {
	symptoms := []catalog.Symptom{
		{ID: "s-1", Name: "Síntoma uno", Severity: catalog.SeverityMild},
	}
	diseases := []catalog.Disease{
		{ID: "d-b", Name: "B", Severity: catalog.SeverityMild},
		{ID: "d-a", Name: "A", Severity: catalog.SeverityMild},
		{ID: "d-c", Name: "C", Severity: catalog.SeveritySevere},
	}
	relations := []catalog.Relation{
		{DiseaseID: "d-b", SymptomID: "s-1", Weight: 0.5, Probability: 0.5, Severity: catalog.SeverityMild},
		{DiseaseID: "d-a", SymptomID: "s-1", Weight: 0.5, Probability: 0.5, Severity: catalog.SeverityMild},
		{DiseaseID: "d-c", SymptomID: "s-1", Weight: 0.5, Probability: 0.5, Severity: catalog.SeverityMild},
	}
	snap, err := catalog.Build(symptoms, diseases, relations, logger.NewTestLogger(t))
	require.NoError(t, err)

	candidates := NewDiseaseMatcher(10).Match(snap, []string{"s-1"}, nil)

	// All score 1.0: severe first, then lexicographic id.
	assert.Equal(t, []string{"d-c", "d-a", "d-b"}, candidateIDs(candidates))
}

func TestDiseaseMatcher_ZeroRelationDiseaseExcluded(t *testing.T) {
	snap := buildTestSnapshot(t)

	candidates := NewDiseaseMatcher(10).Match(snap, []string{"s-pain", "s-nausea", "s-diarrhea", "s-fever"}, nil)
	assert.NotContains(t, candidateIDs(candidates), "d-isolated")
}

func TestDiseaseMatcher_TruncatesAfterSorting(t *testing.T) {
	snap := buildTestSnapshot(t)

	candidates := NewDiseaseMatcher(2).Match(snap, []string{"s-pain", "s-nausea"}, nil)
	require.Len(t, candidates, 2)

	// The best two survive the cut, not the first two encountered.
	assert.Equal(t, []string{"d-gastritis", "d-gastroenteritis"}, candidateIDs(candidates))
}

func TestDiseaseMatcher_NoSymptomsNoCandidates(t *testing.T) {
	snap := buildTestSnapshot(t)

	candidates := NewDiseaseMatcher(10).Match(snap, nil, nil)
	assert.Empty(t, candidates)
}

func TestDiseaseMatcher_OverlapModeSharesDenominator(t *testing.T) {
	snap := buildTestSnapshot(t)
	matcher := NewDiseaseMatcher(10)

	// The free term overlaps pain keywords via the shared "dolor" token, so
	// the pain relation counts exactly as a resolved id would.
	candidates := matcher.Match(snap, nil, []string{"dolor severo"})
	require.NotEmpty(t, candidates)

	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.DiseaseID] = c
	}
	assert.InDelta(t, 1.0/3.0, byID["d-gastritis"].MatchScore, 1e-9)
	assert.InDelta(t, 1.0/4.0, byID["d-gastroenteritis"].MatchScore, 1e-9)
}

func TestDiseaseMatcher_UrgencyIndicators(t *testing.T) {
	snap := buildTestSnapshot(t)

	candidates := NewDiseaseMatcher(10).Match(snap, []string{"s-blood-vomit"}, nil)
	require.Len(t, candidates, 1)

	ulcer := candidates[0]
	assert.Equal(t, "d-ulcer", ulcer.DiseaseID)
	assert.Contains(t, ulcer.UrgencyIndicators, "síntoma grave: Vómito con sangre")
	assert.Contains(t, ulcer.UrgencyIndicators, "condición que requiere atención prioritaria")
}

func TestSharesToken(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{name: "shared long token", a: "dolor severo", b: "dolor abdominal", expected: true},
		{name: "no shared token", a: "fiebre alta", b: "dolor abdominal", expected: false},
		{name: "short tokens ignored", a: "me da", b: "da igual", expected: false},
		{name: "accented token counts runes", a: "náuseas fuertes", b: "náuseas", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sharesToken(tt.a, tt.b))
		})
	}
}
