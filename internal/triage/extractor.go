// internal/triage/extractor.go
package triage

import (
	"sort"
	"strings"

	"gastro-triage/internal/catalog"
)

// KeywordMatcher decides whether a piece of lowercase text mentions a
// keyword. It exists so the plain substring matcher can later be swapped for
// something negation- or stemming-aware without touching scoring or
// classification.
type KeywordMatcher interface {
	Matches(text, keyword string) bool
}

// SubstringMatcher matches by plain substring containment. It knows nothing
// about negation: "no tengo dolor abdominal" still matches "dolor abdominal".
// That imprecision is accepted; the classifier is tuned to fail toward
// caution, not away from it.
type SubstringMatcher struct{}

func (SubstringMatcher) Matches(text, keyword string) bool {
	return strings.Contains(text, keyword)
}

// SymptomExtractor maps free text onto catalog symptom ids.
type SymptomExtractor struct {
	matcher KeywordMatcher
}

// NewSymptomExtractor builds an extractor. A nil matcher defaults to
// substring containment.
func NewSymptomExtractor(matcher KeywordMatcher) *SymptomExtractor {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &SymptomExtractor{matcher: matcher}
}

// Extract returns the ids of every catalog symptom with at least one keyword
// present in the text. Output is deduplicated and sorted so identical inputs
// always produce an identical set. Empty or unmatched text yields an empty
// set, which is a weak signal, not an error.
func (e *SymptomExtractor) Extract(snap *catalog.Snapshot, text string) []string {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	var ids []string
	for _, sym := range snap.Symptoms() {
		for _, kw := range sym.Keywords {
			if e.matcher.Matches(lower, kw) {
				ids = append(ids, sym.ID)
				break
			}
		}
	}

	sort.Strings(ids)
	return ids
}

// ResolveTerm maps one reported symptom string onto catalog symptom ids.
// Containment runs both ways: the term may quote a keyword with extra words
// ("dolor abdominal severo") or abbreviate one.
func (e *SymptomExtractor) ResolveTerm(snap *catalog.Snapshot, term string) []string {
	lower := strings.ToLower(strings.TrimSpace(term))
	if lower == "" {
		return nil
	}

	var ids []string
	for _, sym := range snap.Symptoms() {
		for _, kw := range sym.Keywords {
			if e.matcher.Matches(lower, kw) || e.matcher.Matches(kw, lower) {
				ids = append(ids, sym.ID)
				break
			}
		}
	}

	sort.Strings(ids)
	return ids
}
