package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"simhire-backend/internal/domain"
)

// Staged is anything carrying a pipeline stage.
type Staged interface {
	StageValue() domain.Stage
}

// CountByStage counts items per stage. Every stage of vocab is present in the result,
// with zero when nothing matched. Items whose stage is outside vocab are not counted.
func CountByStage[T Staged](vocab domain.Vocabulary, items []T) map[domain.Stage]int {
	counts := make(map[domain.Stage]int, len(vocab.Stages()))
	for _, s := range vocab.Stages() {
		counts[s] = 0
	}
	for _, item := range items {
		s := item.StageValue()
		if _, ok := counts[s]; ok {
			counts[s]++
		}
	}
	return counts
}

// StageCounts renders CountByStage in vocabulary order with labels and integer percentages of total.
func StageCounts[T Staged](vocab domain.Vocabulary, items []T) []domain.StageCount {
	counts := CountByStage(vocab, items)
	total := len(items)
	rows := make([]domain.StageCount, 0, len(counts))
	for _, s := range vocab.Stages() {
		rows = append(rows, domain.StageCount{
			Stage:      s,
			Label:      vocab.LabelOf(s),
			Color:      vocab.ColorOf(s),
			Count:      counts[s],
			Percentage: Percentage(float64(counts[s]), float64(total)),
		})
	}
	return rows
}

// Average returns the arithmetic mean rounded to decimals places, or 0 for no values.
func Average(values []float64, decimals int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Round(sum/float64(len(values)), decimals)
}

// Round rounds half away from zero to decimals places.
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// Percentage returns round(part/whole*100), or 0 when whole is not positive.
func Percentage(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// AverageGPA returns the mean GPA (2 decimals) of items that carry one.
func AverageGPA[T Filterable](items []T) float64 {
	values := make([]float64, 0, len(items))
	for _, item := range items {
		if gpa, ok := item.GPA(); ok {
			values = append(values, gpa)
		}
	}
	return Average(values, 2)
}

// FormatGPA renders a GPA the way it is displayed: always two decimals.
func FormatGPA(gpa float64) string {
	return fmt.Sprintf("%.2f", gpa)
}

// AverageScore returns the mean of the scores that are set, rounded to 2 decimals.
func AverageScore(scores []*float64) float64 {
	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		if s != nil {
			values = append(values, *s)
		}
	}
	return Average(values, 2)
}

// AveragePercentage returns the mean percentage of results as an integer.
func AveragePercentage(results []domain.SimulasiResult) int {
	values := make([]float64, len(results))
	for i, r := range results {
		values[i] = float64(r.Percentage)
	}
	return int(Average(values, 0))
}

// CountByUniversity groups internship applicants by university, largest group first.
// Universities are matched case-insensitively; the first spelling seen is kept.
func CountByUniversity(items []domain.InternshipApplication) []domain.UniversityCount {
	index := make(map[string]int)
	var out []domain.UniversityCount
	for _, item := range items {
		name := strings.TrimSpace(item.University)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, domain.UniversityCount{University: name, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
