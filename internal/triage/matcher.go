// internal/triage/matcher.go
package triage

import (
	"sort"
	"strings"

	"gastro-triage/internal/catalog"
)

// DiseaseMatcher scores catalog diseases against reported symptoms and
// returns a ranked candidate list.
//
// Two scoring modes feed one ranking. The canonical mode counts symptoms
// resolved to catalog ids. The overlap mode covers free-text terms that
// resolved to nothing, crediting a disease when a term textually overlaps one
// of its related symptoms. Both count matches against the same denominator —
// the disease's full symptom repertoire — so scores from either mode are
// directly comparable within one call.
type DiseaseMatcher struct {
	maxCandidates int
}

// NewDiseaseMatcher builds a matcher that truncates ranked results to
// maxCandidates, after sorting.
func NewDiseaseMatcher(maxCandidates int) *DiseaseMatcher {
	if maxCandidates <= 0 {
		maxCandidates = 10
	}
	return &DiseaseMatcher{maxCandidates: maxCandidates}
}

// Match scores every eligible disease against the resolved symptom ids plus
// any unresolved free-text terms. Diseases without relations never appear:
// with no repertoire there is no denominator, so they are ineligible rather
// than scored zero.
func (m *DiseaseMatcher) Match(snap *catalog.Snapshot, symptomIDs []string, freeTerms []string) []Candidate {
	idSet := make(map[string]bool, len(symptomIDs))
	for _, id := range symptomIDs {
		idSet[id] = true
	}

	terms := make([]string, 0, len(freeTerms))
	for _, t := range freeTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}

	var candidates []Candidate
	for _, diseaseID := range snap.MatchableDiseaseIDs() {
		relations := snap.Relations(diseaseID)

		var matching []catalog.Relation
		for _, rel := range relations {
			if idSet[rel.SymptomID] {
				matching = append(matching, rel)
				continue
			}
			if sym, ok := snap.Symptom(rel.SymptomID); ok && termOverlapsSymptom(terms, sym) {
				matching = append(matching, rel)
			}
		}

		if len(matching) == 0 {
			continue
		}

		disease, _ := snap.Disease(diseaseID)
		candidates = append(candidates, m.buildCandidate(snap, disease, matching, len(relations)))
	}

	m.rank(snap, candidates)

	if len(candidates) > m.maxCandidates {
		candidates = candidates[:m.maxCandidates]
	}
	return candidates
}

func (m *DiseaseMatcher) buildCandidate(snap *catalog.Snapshot, disease catalog.Disease, matching []catalog.Relation, totalRelated int) Candidate {
	names := make([]string, 0, len(matching))
	var indicators []string

	// Relations arrive in catalog order; sort names for a stable payload.
	sort.Slice(matching, func(i, j int) bool {
		return matching[i].SymptomID < matching[j].SymptomID
	})
	for _, rel := range matching {
		sym, _ := snap.Symptom(rel.SymptomID)
		names = append(names, sym.Name)
		if rel.Severity == catalog.SeveritySevere {
			indicators = append(indicators, "síntoma grave: "+sym.Name)
		}
	}
	if disease.Severity == catalog.SeveritySevere || disease.Severity == catalog.SeverityEmergency {
		indicators = append(indicators, "condición que requiere atención prioritaria")
	}

	return Candidate{
		DiseaseID:         disease.ID,
		DiseaseName:       disease.Name,
		MatchScore:        float64(len(matching)) / float64(totalRelated),
		MatchingSymptoms:  names,
		UrgencyIndicators: indicators,
	}
}

// rank orders candidates by score descending; equal scores fall back to
// disease severity (emergency > severe > moderate > mild) so the more
// dangerous disease surfaces first, then to id for full determinism.
func (m *DiseaseMatcher) rank(snap *catalog.Snapshot, candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].MatchScore != candidates[j].MatchScore {
			return candidates[i].MatchScore > candidates[j].MatchScore
		}
		di, _ := snap.Disease(candidates[i].DiseaseID)
		dj, _ := snap.Disease(candidates[j].DiseaseID)
		if di.Severity.Rank() != dj.Severity.Rank() {
			return di.Severity.Rank() > dj.Severity.Rank()
		}
		return candidates[i].DiseaseID < candidates[j].DiseaseID
	})
}

// termOverlapsSymptom reports whether any free-text term textually overlaps
// one of the symptom's keywords: containment in either direction, or a shared
// token of meaningful length ("dolor abdominal severo" overlaps
// "dolor abdominal").
func termOverlapsSymptom(terms []string, sym catalog.Symptom) bool {
	for _, term := range terms {
		for _, kw := range sym.Keywords {
			if strings.Contains(term, kw) || strings.Contains(kw, term) {
				return true
			}
			if sharesToken(term, kw) {
				return true
			}
		}
	}
	return false
}

const minOverlapTokenLen = 4

func sharesToken(a, b string) bool {
	bTokens := make(map[string]bool)
	for _, tok := range strings.Fields(b) {
		if len([]rune(tok)) >= minOverlapTokenLen {
			bTokens[tok] = true
		}
	}
	for _, tok := range strings.Fields(a) {
		if len([]rune(tok)) >= minOverlapTokenLen && bTokens[tok] {
			return true
		}
	}
	return false
}
