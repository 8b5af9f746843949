package services

import "strings"

// AnswerGate decides whether a generated answer may be shown to a patient.
// Rejection is a policy outcome, not an error.
type AnswerGate interface {
	Evaluate(answer string) GateResult
}

// GateResult is the outcome of one evaluation. Violations name the rules
// that fired and exist for logging only.
type GateResult struct {
	Passed     bool
	Violations []string
}

// IsAcceptable is shorthand for gate.Evaluate(answer).Passed.
func IsAcceptable(gate AnswerGate, answer string) bool {
	return gate.Evaluate(answer).Passed
}

// DisqualifyingPhrases are matched as lower-case substrings, not words:
// "interact" also rejects "interaction" and "interactive". The over-match is
// accepted; the list steers interaction questions to search.
var DisqualifyingPhrases = []string{
	"webmd",
	"check online",
	"i'm not sure",
	"consult your doctor",
	"not provided",
	"not mentioned",
	"john's wort",
	"over the counter",
	"drug interaction",
	"interact",
}

// PhraseGate rejects blank answers and answers containing any of its phrases.
type PhraseGate struct {
	phrases []string
}

// NewPhraseGate returns a gate over DisqualifyingPhrases.
func NewPhraseGate() *PhraseGate {
	return NewPhraseGateWith(DisqualifyingPhrases)
}

// NewPhraseGateWith returns a gate over a custom phrase list.
func NewPhraseGateWith(phrases []string) *PhraseGate {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = strings.ToLower(p); p != "" {
			lowered = append(lowered, p)
		}
	}
	return &PhraseGate{phrases: lowered}
}

func (g *PhraseGate) Evaluate(answer string) GateResult {
	if strings.TrimSpace(answer) == "" {
		return GateResult{Passed: false, Violations: []string{"empty"}}
	}
	lower := strings.ToLower(answer)
	var violations []string
	for _, phrase := range g.phrases {
		if strings.Contains(lower, phrase) {
			violations = append(violations, phrase)
		}
	}
	return GateResult{Passed: len(violations) == 0, Violations: violations}
}
