package domain

import (
	"fmt"
	"strings"
)

// Stage is a position in a hiring or internship pipeline.
type Stage string

// Job application stages
const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageAccepted  Stage = "accepted"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

// Internship-only stage. applied, interview, accepted and rejected are shared spellings.
const (
	StageReviewed Stage = "reviewed"
)

// Vocabulary is a closed, ordered set of stages with display metadata.
// Job and internship vocabularies must never be cross-applied.
type Vocabulary struct {
	kind   string
	stages []Stage
	labels map[Stage]string
	colors map[Stage]string
	final  map[Stage]bool
}

// JobVocabulary: applied → screening → interview → offer → accepted → hired / rejected
var JobVocabulary = Vocabulary{
	kind:   "job",
	stages: []Stage{StageApplied, StageScreening, StageInterview, StageOffer, StageAccepted, StageHired, StageRejected},
	labels: map[Stage]string{
		StageApplied:   "Applied",
		StageScreening: "Screening",
		StageInterview: "Interview",
		StageOffer:     "Offer",
		StageAccepted:  "Accepted",
		StageHired:     "Hired",
		StageRejected:  "Rejected",
	},
	colors: map[Stage]string{
		StageApplied:   "blue",
		StageScreening: "yellow",
		StageInterview: "purple",
		StageOffer:     "orange",
		StageAccepted:  "green",
		StageHired:     "emerald",
		StageRejected:  "red",
	},
	final: map[Stage]bool{StageHired: true, StageRejected: true},
}

// InternshipVocabulary: applied → reviewed → interview → accepted / rejected
var InternshipVocabulary = Vocabulary{
	kind:   "internship",
	stages: []Stage{StageApplied, StageReviewed, StageInterview, StageAccepted, StageRejected},
	labels: map[Stage]string{
		StageApplied:   "Applied",
		StageReviewed:  "Reviewed",
		StageInterview: "Interview",
		StageAccepted:  "Accepted",
		StageRejected:  "Rejected",
	},
	colors: map[Stage]string{
		StageApplied:   "blue",
		StageReviewed:  "yellow",
		StageInterview: "purple",
		StageAccepted:  "green",
		StageRejected:  "red",
	},
	final: map[Stage]bool{StageAccepted: true, StageRejected: true},
}

// Kind returns "job" or "internship".
func (v Vocabulary) Kind() string {
	return v.kind
}

// Stages returns the stages in pipeline order. The returned slice is a copy.
func (v Vocabulary) Stages() []Stage {
	out := make([]Stage, len(v.stages))
	copy(out, v.stages)
	return out
}

func (v Vocabulary) Contains(s Stage) bool {
	_, ok := v.labels[s]
	return ok
}

// IsFinal reports whether s ends the pipeline. Candidates cannot withdraw from a final stage.
func (v Vocabulary) IsFinal(s Stage) bool {
	return v.final[s]
}

// LabelOf returns the display label of s, or s itself when it is not part of the vocabulary.
func (v Vocabulary) LabelOf(s Stage) string {
	if label, ok := v.labels[s]; ok {
		return label
	}
	if s == "" {
		return "Unknown"
	}
	return string(s)
}

// ColorOf returns the presentation tag of s, with the same fallback as LabelOf.
func (v Vocabulary) ColorOf(s Stage) string {
	if color, ok := v.colors[s]; ok {
		return color
	}
	if s == "" {
		return "gray"
	}
	return string(s)
}

// NormalizeStage lowercases and trims raw stage input without checking it.
func NormalizeStage(raw string) Stage {
	return Stage(strings.ToLower(strings.TrimSpace(raw)))
}

// Parse normalizes raw input and checks it against the vocabulary.
func (v Vocabulary) Parse(raw string) (Stage, error) {
	s := NormalizeStage(raw)
	if !v.Contains(s) {
		return "", fmt.Errorf("invalid %s application status %q, must be one of: %s", v.kind, raw, v.String())
	}
	return s, nil
}

// String lists the stages separated by ", ".
func (v Vocabulary) String() string {
	names := make([]string, len(v.stages))
	for i, s := range v.stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// OneOf renders the stages in validator "oneof" parameter form.
func (v Vocabulary) OneOf() string {
	names := make([]string, len(v.stages))
	for i, s := range v.stages {
		names[i] = string(s)
	}
	return strings.Join(names, " ")
}
