// Package pipeline holds the application-pipeline logic shared by the API server and the client:
// stage policy, in-memory filtering, aggregation and ranking, and the refetch-after-write cache.
package pipeline

import (
	"strings"

	"simhire-backend/internal/domain"
)

// Filterable is satisfied by job and internship applications.
type Filterable interface {
	StageValue() domain.Stage
	PostingID() string
	Name() string
	Email() string
	Skills() []string
	GPA() (float64, bool)
	School() string
}

// Filter returns the items matching every non-empty field of f, in input order.
// The input slice is never modified.
func Filter[T Filterable](items []T, f domain.ApplicationFilter) []T {
	match := Predicate[T](f)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Predicate compiles f into a single AND-composed predicate.
func Predicate[T Filterable](f domain.ApplicationFilter) func(T) bool {
	var preds []func(T) bool

	if f.Stage != "" {
		stage := domain.Stage(strings.ToLower(strings.TrimSpace(string(f.Stage))))
		preds = append(preds, func(item T) bool { return item.StageValue() == stage })
	}
	if jobID := strings.TrimSpace(f.JobID); jobID != "" {
		preds = append(preds, func(item T) bool { return item.PostingID() == jobID })
	}
	if q := strings.ToLower(strings.TrimSpace(f.TextQuery)); q != "" {
		preds = append(preds, func(item T) bool { return matchesText(item, q) })
	}
	if f.MinGPA != nil {
		minGPA := *f.MinGPA
		preds = append(preds, func(item T) bool {
			gpa, ok := item.GPA()
			return ok && gpa >= minGPA
		})
	}
	if uni := strings.ToLower(strings.TrimSpace(f.University)); uni != "" {
		preds = append(preds, func(item T) bool {
			return strings.Contains(strings.ToLower(item.School()), uni)
		})
	}

	return func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// matchesText does a case-insensitive substring match over name, email and skills.
// q must already be lower-cased.
func matchesText(item Filterable, q string) bool {
	if strings.Contains(strings.ToLower(item.Name()), q) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Email()), q) {
		return true
	}
	for _, skill := range item.Skills() {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether f accepts everything.
func IsEmpty(f domain.ApplicationFilter) bool {
	return strings.TrimSpace(string(f.Stage)) == "" &&
		strings.TrimSpace(f.JobID) == "" &&
		strings.TrimSpace(f.TextQuery) == "" &&
		f.MinGPA == nil &&
		strings.TrimSpace(f.University) == ""
}
