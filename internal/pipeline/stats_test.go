package pipeline_test

import (
	"testing"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobApps(stages ...domain.Stage) []domain.Application {
	apps := make([]domain.Application, len(stages))
	for i, s := range stages {
		apps[i] = domain.Application{JobID: "job", CandidateName: "c", Stage: s}
	}
	return apps
}

func TestCountByStage(t *testing.T) {
	apps := jobApps(domain.StageApplied, domain.StageApplied, domain.StageInterview, domain.StageOffer, domain.StageHired)

	counts := pipeline.CountByStage(domain.JobVocabulary, apps)

	assert.Equal(t, map[domain.Stage]int{
		domain.StageApplied:   2,
		domain.StageScreening: 0,
		domain.StageInterview: 1,
		domain.StageOffer:     1,
		domain.StageAccepted:  0,
		domain.StageHired:     1,
		domain.StageRejected:  0,
	}, counts)
}

func TestCountByStageCoversVocabulary(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		counts := pipeline.CountByStage(domain.InternshipVocabulary, []domain.InternshipApplication{})
		require.Len(t, counts, len(domain.InternshipVocabulary.Stages()))
		for _, s := range domain.InternshipVocabulary.Stages() {
			assert.Contains(t, counts, s)
			assert.Zero(t, counts[s])
		}
	})

	t.Run("sum equals length", func(t *testing.T) {
		apps := jobApps(domain.StageRejected, domain.StageScreening, domain.StageScreening, domain.StageAccepted)
		counts := pipeline.CountByStage(domain.JobVocabulary, apps)
		sum := 0
		for _, n := range counts {
			sum += n
		}
		assert.Equal(t, len(apps), sum)
	})
}

func TestStageCounts(t *testing.T) {
	apps := jobApps(domain.StageApplied, domain.StageApplied, domain.StageApplied, domain.StageRejected)

	rows := pipeline.StageCounts(domain.JobVocabulary, apps)

	require.Len(t, rows, 7)
	assert.Equal(t, domain.StageApplied, rows[0].Stage)
	assert.Equal(t, "Applied", rows[0].Label)
	assert.Equal(t, 75, rows[0].Percentage)
	assert.Equal(t, domain.StageRejected, rows[6].Stage)
	assert.Equal(t, 25, rows[6].Percentage)
	assert.Equal(t, 0, rows[1].Percentage)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, pipeline.Average(nil, 2))
	assert.Equal(t, 3.5, pipeline.Average([]float64{3.0, 4.0}, 2))
	assert.Equal(t, 3.33, pipeline.Average([]float64{3.0, 3.0, 4.0}, 2))
	assert.Equal(t, 67.0, pipeline.Average([]float64{66, 67, 67}, 0))
}

func TestAverageGPA(t *testing.T) {
	assert.Equal(t, "0.00", pipeline.FormatGPA(pipeline.AverageGPA([]domain.InternshipApplication{})))

	apps := []domain.InternshipApplication{{GPAValue: 3.0}, {GPAValue: 4.0}}
	assert.Equal(t, "3.50", pipeline.FormatGPA(pipeline.AverageGPA(apps)))
}

func TestAverageScoreSkipsUnset(t *testing.T) {
	seven, nine := 7.0, 9.0
	assert.Equal(t, 8.0, pipeline.AverageScore([]*float64{&seven, nil, &nine}))
	assert.Equal(t, 0.0, pipeline.AverageScore([]*float64{nil}))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, pipeline.Percentage(5, 0))
	assert.Equal(t, 83, pipeline.Percentage(83, 100))
	assert.Equal(t, 67, pipeline.Percentage(2, 3))
	assert.Equal(t, 100, pipeline.Percentage(40, 40))
}

func TestCountByUniversity(t *testing.T) {
	counts := pipeline.CountByUniversity(internshipFixtures())

	require.Len(t, counts, 3)
	assert.Equal(t, domain.UniversityCount{University: "Universitas Indonesia", Count: 2}, counts[0])
}
