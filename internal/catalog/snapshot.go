// internal/catalog/snapshot.go
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"gastro-triage/internal/common/logger"
)

// Snapshot is an immutable, fully indexed view of the symptom catalog. All
// engine evaluations read from one snapshot; reloads build a fresh snapshot
// and swap it in atomically, so a snapshot is never mutated after Build
// returns.
type Snapshot struct {
	symptoms []Symptom
	diseases []Disease

	symptomByID  map[string]Symptom
	diseaseByID  map[string]Disease
	byDisease    map[string][]Relation
	diseaseIDs   []string // diseases with at least one relation, stable order
	relationsLen int
}

// Build validates the raw catalog rows and assembles the lookup indexes.
//
// Referential problems are load-time concerns: a relation pointing at an
// unknown disease or symptom is skipped with a warning instead of failing the
// whole load, so one bad seed row cannot take triage down. Structural
// problems (duplicate ids, out-of-range weights) fail the build.
func Build(symptoms []Symptom, diseases []Disease, relations []Relation, log logger.Logger) (*Snapshot, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Snapshot{
		symptoms:    make([]Symptom, 0, len(symptoms)),
		diseases:    make([]Disease, 0, len(diseases)),
		symptomByID: make(map[string]Symptom, len(symptoms)),
		diseaseByID: make(map[string]Disease, len(diseases)),
		byDisease:   make(map[string][]Relation),
	}

	for _, sym := range symptoms {
		if sym.ID == "" || sym.Name == "" {
			return nil, fmt.Errorf("symptom with empty id or name")
		}
		if _, dup := s.symptomByID[sym.ID]; dup {
			return nil, fmt.Errorf("duplicate symptom id %q", sym.ID)
		}
		if !sym.Severity.Valid() || sym.Severity == SeverityEmergency {
			return nil, fmt.Errorf("symptom %q: invalid severity %q", sym.ID, sym.Severity)
		}
		sym.Keywords = normalizeKeywords(sym.Name, sym.Keywords)
		s.symptomByID[sym.ID] = sym
		s.symptoms = append(s.symptoms, sym)
	}

	for _, d := range diseases {
		if d.ID == "" || d.Name == "" {
			return nil, fmt.Errorf("disease with empty id or name")
		}
		if _, dup := s.diseaseByID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate disease id %q", d.ID)
		}
		if !d.Severity.Valid() {
			return nil, fmt.Errorf("disease %q: invalid severity %q", d.ID, d.Severity)
		}
		s.diseaseByID[d.ID] = d
		s.diseases = append(s.diseases, d)
	}

	seen := make(map[string]bool, len(relations))
	for _, rel := range relations {
		if _, ok := s.diseaseByID[rel.DiseaseID]; !ok {
			log.Warn("relation references unknown disease, skipping", map[string]interface{}{
				"diseaseId": rel.DiseaseID,
				"symptomId": rel.SymptomID,
			})
			continue
		}
		if _, ok := s.symptomByID[rel.SymptomID]; !ok {
			log.Warn("relation references unknown symptom, skipping", map[string]interface{}{
				"diseaseId": rel.DiseaseID,
				"symptomId": rel.SymptomID,
			})
			continue
		}
		pair := rel.DiseaseID + "\x00" + rel.SymptomID
		if seen[pair] {
			return nil, fmt.Errorf("duplicate relation (%s, %s)", rel.DiseaseID, rel.SymptomID)
		}
		seen[pair] = true
		if rel.Weight < 0 || rel.Weight > 1 {
			return nil, fmt.Errorf("relation (%s, %s): weight %v outside [0,1]", rel.DiseaseID, rel.SymptomID, rel.Weight)
		}
		if rel.Probability < 0 || rel.Probability > 1 {
			return nil, fmt.Errorf("relation (%s, %s): probability %v outside [0,1]", rel.DiseaseID, rel.SymptomID, rel.Probability)
		}
		if !rel.Severity.Valid() || rel.Severity == SeverityEmergency {
			return nil, fmt.Errorf("relation (%s, %s): invalid severity %q", rel.DiseaseID, rel.SymptomID, rel.Severity)
		}
		s.byDisease[rel.DiseaseID] = append(s.byDisease[rel.DiseaseID], rel)
		s.relationsLen++
	}

	// Diseases without a single relation are ineligible for matching: there
	// is no denominator to score them against.
	s.diseaseIDs = make([]string, 0, len(s.byDisease))
	for id := range s.byDisease {
		s.diseaseIDs = append(s.diseaseIDs, id)
	}
	sort.Strings(s.diseaseIDs)

	return s, nil
}

func normalizeKeywords(name string, keywords []string) []string {
	out := make([]string, 0, len(keywords)+1)
	seen := make(map[string]bool, len(keywords)+1)
	for _, kw := range append([]string{name}, keywords...) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// Symptoms returns the catalog symptoms in load order.
func (s *Snapshot) Symptoms() []Symptom { return s.symptoms }

// Diseases returns the catalog diseases in load order.
func (s *Snapshot) Diseases() []Disease { return s.diseases }

// Symptom looks up a symptom by id.
func (s *Snapshot) Symptom(id string) (Symptom, bool) {
	sym, ok := s.symptomByID[id]
	return sym, ok
}

// Disease looks up a disease by id.
func (s *Snapshot) Disease(id string) (Disease, bool) {
	d, ok := s.diseaseByID[id]
	return d, ok
}

// Relations returns the relations of one disease. The returned slice is
// shared; callers must not modify it.
func (s *Snapshot) Relations(diseaseID string) []Relation {
	return s.byDisease[diseaseID]
}

// MatchableDiseaseIDs returns the ids of every disease with at least one
// relation, in a stable (sorted) order so repeated evaluations rank
// identically.
func (s *Snapshot) MatchableDiseaseIDs() []string { return s.diseaseIDs }

// Counts reports catalog sizes for logging and gauges.
func (s *Snapshot) Counts() (symptoms, diseases, relations int) {
	return len(s.symptoms), len(s.diseases), s.relationsLen
}
