package models

import (
	"sort"
	"strings"
)

// AllowedLabels is the fixed allow-list for UserJudgment.ChosenLabel. It is a
// superset of the triage labels: generic classifications plus the sentiment
// labels emitted by the PDF reader surface.
var AllowedLabels = map[string]struct{}{
	"Core Concept":        {},
	"Not Relevant":        {},
	"Method Weakness":     {},
	"Generate New Search": {},
	"Search Result":       {},
	"PDF Highlight":       {},
	"thumbsup":            {},
	"thumbsdown":          {},
	"neutral_information": {},
}

// LabelList returns the allow-list sorted for stable error messages.
func LabelList() []string {
	labels := make([]string, 0, len(AllowedLabels))
	for l := range AllowedLabels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// UserJudgment is the expert's classification and rationale for a highlight.
// Replaced wholesale on update, never patched field by field.
type UserJudgment struct {
	ChosenLabel          string   `json:"chosen_label"`
	Reasoning            string   `json:"reasoning,omitempty"`
	Confidence           *float64 `json:"confidence,omitempty"`
	Decision             string   `json:"decision,omitempty"`
	DecisionReason       string   `json:"decision_reason,omitempty"`
	DecisionContribution string   `json:"decision_contribution,omitempty"`
	ReadingContribution  string   `json:"reading_contribution,omitempty"`
}

// Validate checks the label against the allow-list and the confidence range.
func (j UserJudgment) Validate() error {
	if _, ok := AllowedLabels[j.ChosenLabel]; !ok {
		return Validationf("chosen_label must be one of: %s", strings.Join(LabelList(), ", "))
	}
	if j.Confidence != nil && (*j.Confidence < 0 || *j.Confidence > 1) {
		return Validationf("confidence must be within [0, 1], got %g", *j.Confidence)
	}
	return nil
}
