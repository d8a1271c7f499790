package pipeline

import (
	"sort"

	"simhire-backend/internal/domain"
)

// BadgeThreshold is the percentage at which a result earns a badge and certificate.
const BadgeThreshold = 80

var rankBands = []struct {
	min    float64
	letter string
}{
	{95, "S"},
	{90, "A+"},
	{85, "A"},
	{80, "B+"},
	{75, "B"},
	{70, "C+"},
}

// RankLetter classifies a percentage for display. Lower bounds are inclusive.
func RankLetter(percentage float64) string {
	for _, band := range rankBands {
		if percentage >= band.min {
			return band.letter
		}
	}
	return "C"
}

// BadgeEligible reports whether percentage reaches the badge threshold.
func BadgeEligible(percentage float64) bool {
	return percentage >= BadgeThreshold
}

// Rank sorts a copy of results by percentage, highest first, and numbers them 1..N.
// Equal percentages are ordered by earlier completion, then by input order.
// Any rank already present in the input is ignored.
func Rank(results []domain.SimulasiResult) []domain.LeaderboardEntry {
	sorted := make([]domain.SimulasiResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Percentage != sorted[j].Percentage {
			return sorted[i].Percentage > sorted[j].Percentage
		}
		return sorted[i].CompletedAt.Before(sorted[j].CompletedAt)
	})

	entries := make([]domain.LeaderboardEntry, len(sorted))
	for i, r := range sorted {
		entries[i] = domain.LeaderboardEntry{
			Rank:        i + 1,
			ResultID:    r.ID,
			UserID:      r.UserID,
			UserName:    r.UserName,
			CategoryID:  r.CategoryID,
			TotalScore:  r.TotalScore,
			Percentage:  r.Percentage,
			RankLetter:  RankLetter(float64(r.Percentage)),
			Badge:       r.Badge,
			CompletedAt: r.CompletedAt,
		}
	}
	return entries
}

// TopN ranks results and keeps the first n. Fewer than n results are all returned.
func TopN(results []domain.SimulasiResult, n int) []domain.LeaderboardEntry {
	if n <= 0 {
		return []domain.LeaderboardEntry{}
	}
	ranked := Rank(results)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Rerank renumbers entries 1..N after sorting them like Rank.
func Rerank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	sorted := make([]domain.LeaderboardEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Percentage != sorted[j].Percentage {
			return sorted[i].Percentage > sorted[j].Percentage
		}
		return sorted[i].CompletedAt.Before(sorted[j].CompletedAt)
	})
	for i := range sorted {
		sorted[i].Rank = i + 1
	}
	return sorted
}
