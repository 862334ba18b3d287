// internal/triage/engine.go

// Package triage implements the symptom analysis and triage pipeline: a
// deterministic engine that turns one user message (plus optional structured
// context) into an emergency decision, a ranked candidate list and a
// risk/urgency classification.
//
// The engine is pure computation. It performs no I/O, holds no per-request
// state, and reads only an immutable catalog snapshot, so concurrent
// evaluations need no locking. Catalog reloads swap the snapshot atomically;
// in-flight evaluations keep the snapshot they started with.
package triage

import (
	"sort"
	"sync/atomic"

	"gastro-triage/internal/catalog"
	"gastro-triage/internal/common/errors"
	"gastro-triage/internal/common/logger"
)

// Engine is the triage entry point. Construct once with a loaded catalog and
// share freely across goroutines.
type Engine struct {
	snapshot atomic.Pointer[catalog.Snapshot]

	detector   *EmergencyDetector
	extractor  *SymptomExtractor
	matcher    *DiseaseMatcher
	classifier *RiskClassifier
	limits     Limits
	logger     logger.Logger
}

// Options tune engine construction. Zero values fall back to defaults.
type Options struct {
	Limits           Limits
	MaxCandidates    int
	EmergencyPhrases []string       // overrides the built-in phrase list
	Matcher          KeywordMatcher // overrides substring keyword matching
	Logger           logger.Logger
}

// NewEngine builds an engine over a catalog snapshot.
func NewEngine(snap *catalog.Snapshot, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Limits.MaxTextLength == 0 {
		opts.Limits.MaxTextLength = DefaultLimits.MaxTextLength
	}
	if opts.Limits.MaxSymptomCount == 0 {
		opts.Limits.MaxSymptomCount = DefaultLimits.MaxSymptomCount
	}

	detector := NewEmergencyDetector()
	if len(opts.EmergencyPhrases) > 0 {
		detector = NewEmergencyDetectorWithPhrases(opts.EmergencyPhrases)
	}

	e := &Engine{
		detector:   detector,
		extractor:  NewSymptomExtractor(opts.Matcher),
		matcher:    NewDiseaseMatcher(opts.MaxCandidates),
		classifier: NewRiskClassifier(),
		limits:     opts.Limits,
		logger:     opts.Logger,
	}
	e.snapshot.Store(snap)
	return e
}

// Reload swaps in a new catalog snapshot atomically. Evaluations already in
// flight keep reading their original snapshot.
func (e *Engine) Reload(snap *catalog.Snapshot) {
	e.snapshot.Store(snap)
	symptoms, diseases, relations := snap.Counts()
	e.logger.Info("catalog snapshot swapped", map[string]interface{}{
		"symptoms":  symptoms,
		"diseases":  diseases,
		"relations": relations,
	})
}

// Snapshot returns the active catalog snapshot.
func (e *Engine) Snapshot() *catalog.Snapshot {
	return e.snapshot.Load()
}

// Evaluate runs the full pipeline over one free-text message.
//
// The emergency detector runs first and, on a hit, short-circuits: the
// decision is pinned to emergency/immediate and disease matching is skipped.
// Symptoms are still extracted so the decision carries its evidence. Once
// inputs validate, Evaluate always returns a decision — a message that fails
// to classify would itself be a safety hazard.
func (e *Engine) Evaluate(text string, uctx *UserContext) (*Decision, error) {
	if err := e.limits.validateText(text); err != nil {
		return nil, err
	}
	if err := e.limits.validateContext(uctx); err != nil {
		return nil, err
	}

	snap := e.snapshot.Load()

	isEmergency, matchedPhrases := e.detector.Detect(text)
	symptomIDs := e.extractor.Extract(snap, text)

	if isEmergency {
		risk, urgency := e.classifier.Classify(snap, true, symptomIDs, nil, uctx)
		return e.decision(symptomIDs, true, matchedPhrases, nil, risk, urgency), nil
	}

	candidates := e.matcher.Match(snap, symptomIDs, nil)
	risk, urgency := e.classifier.Classify(snap, false, symptomIDs, candidates, uctx)
	return e.decision(symptomIDs, false, matchedPhrases, candidates, risk, urgency), nil
}

// MatchBySymptomList bypasses free-text extraction for callers that already
// hold a discrete symptom list. Entries that resolve to catalog symptoms go
// through canonical scoring; the rest are carried into the matcher's textual
// overlap mode. The phrase detector does not run — there is no raw message —
// but emergency-flagged symptoms still escalate through the classifier.
func (e *Engine) MatchBySymptomList(symptoms []string, uctx *UserContext) (*Decision, error) {
	if err := e.limits.validateSymptomList(symptoms); err != nil {
		return nil, err
	}
	if err := e.limits.validateContext(uctx); err != nil {
		return nil, err
	}

	snap := e.snapshot.Load()

	idSet := make(map[string]bool)
	var unresolved []string
	for _, term := range symptoms {
		ids := e.extractor.ResolveTerm(snap, term)
		if len(ids) == 0 {
			unresolved = append(unresolved, term)
			continue
		}
		for _, id := range ids {
			idSet[id] = true
		}
	}

	symptomIDs := make([]string, 0, len(idSet))
	for id := range idSet {
		symptomIDs = append(symptomIDs, id)
	}
	sort.Strings(symptomIDs)

	candidates := e.matcher.Match(snap, symptomIDs, unresolved)
	risk, urgency := e.classifier.Classify(snap, false, symptomIDs, candidates, uctx)
	return e.decision(symptomIDs, false, nil, candidates, risk, urgency), nil
}

func (e *Engine) decision(symptomIDs []string, emergency bool, matchedPhrases []string, candidates []Candidate, risk RiskLevel, urgency UrgencyLevel) *Decision {
	if symptomIDs == nil {
		symptomIDs = []string{}
	}
	if matchedPhrases == nil {
		matchedPhrases = []string{}
	}
	if candidates == nil {
		candidates = []Candidate{}
	}
	return &Decision{
		ExtractedSymptoms:        symptomIDs,
		EmergencyDetected:        emergency,
		MatchedEmergencyKeywords: matchedPhrases,
		Candidates:               candidates,
		RiskLevel:                risk,
		UrgencyLevel:             urgency,
		Recommendations:          Recommend(risk),
		Disclaimer:               Disclaimer,
	}
}

// IsValidationError reports whether err is an input validation failure the
// caller should map to a client error rather than retry.
func IsValidationError(err error) bool {
	stdErr, ok := err.(*errors.StandardError)
	return ok && stdErr.Code == errors.ErrCodeTriageValidationFailed
}
