// internal/triage/emergency.go
package triage

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// defaultEmergencyPhrases is the built-in critical phrase list. It is
// safety-critical configuration: additions are cheap, removals need an
// independent review. The list is matched by lowercase substring containment,
// so every entry must be lowercase.
var defaultEmergencyPhrases = []string{
	"no puedo respirar",
	"dificultad para respirar",
	"vómito con sangre",
	"vomito con sangre",
	"vomitando sangre",
	"sangre en el vómito",
	"sangre en las heces",
	"heces negras",
	"dolor abdominal severo",
	"dolor abdominal intenso",
	"dolor insoportable",
	"dolor en el pecho",
	"pérdida de conciencia",
	"perdida de conciencia",
	"desmayo",
	"convulsiones",
	"abdomen rígido",
	"abdomen rigido",
	"fiebre muy alta",
	"deshidratación severa",
	"deshidratacion severa",
	"can't breathe",
	"cannot breathe",
	"vomiting blood",
	"blood in stool",
	"severe abdominal pain",
	"chest pain",
	"unconscious",
}

// EmergencyDetector scans raw text for critical phrases. It is pure: the
// phrase list is fixed at construction and Detect has no side effects.
type EmergencyDetector struct {
	phrases []string
}

// NewEmergencyDetector builds a detector over the built-in phrase list.
func NewEmergencyDetector() *EmergencyDetector {
	return &EmergencyDetector{phrases: defaultEmergencyPhrases}
}

// NewEmergencyDetectorWithPhrases builds a detector over an explicit phrase
// list, lowercased defensively. An empty list falls back to the built-in one
// rather than silently disabling detection.
func NewEmergencyDetectorWithPhrases(phrases []string) *EmergencyDetector {
	cleaned := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return NewEmergencyDetector()
	}
	return &EmergencyDetector{phrases: cleaned}
}

// LoadEmergencyPhrases reads a phrase override file: one phrase per line,
// blank lines and #-comments ignored.
func LoadEmergencyPhrases(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open phrase file: %w", err)
	}
	defer f.Close()

	var phrases []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		phrases = append(phrases, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read phrase file: %w", err)
	}
	return phrases, nil
}

// Detect scans the text for every critical phrase. The scan is exhaustive —
// all phrases are checked even after a hit — so the decision carries the
// complete evidence list. Matching is case-insensitive substring containment
// with no other preprocessing.
func (d *EmergencyDetector) Detect(text string) (bool, []string) {
	lower := strings.ToLower(text)

	var matched []string
	for _, phrase := range d.phrases {
		if strings.Contains(lower, phrase) {
			matched = append(matched, phrase)
		}
	}

	return len(matched) > 0, matched
}
