package domain_test

import (
	"testing"

	"simhire-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelOfIsNonEmptyForEveryStage(t *testing.T) {
	for _, vocab := range []domain.Vocabulary{domain.JobVocabulary, domain.InternshipVocabulary} {
		for _, s := range vocab.Stages() {
			label := vocab.LabelOf(s)
			assert.NotEmpty(t, label, "%s/%s", vocab.Kind(), s)
			assert.Equal(t, label, vocab.LabelOf(s))
			assert.NotEqual(t, string(s), vocab.ColorOf(s))
		}
	}
}

func TestLabelOfFallsBackToRawValue(t *testing.T) {
	assert.Equal(t, "on_hold", domain.JobVocabulary.LabelOf("on_hold"))
	assert.Equal(t, "on_hold", domain.JobVocabulary.ColorOf("on_hold"))
	assert.Equal(t, "Unknown", domain.JobVocabulary.LabelOf(""))
}

func TestVocabulariesAreNotCrossApplied(t *testing.T) {
	assert.False(t, domain.InternshipVocabulary.Contains(domain.StageScreening))
	assert.False(t, domain.InternshipVocabulary.Contains(domain.StageHired))
	assert.False(t, domain.JobVocabulary.Contains(domain.StageReviewed))
	assert.True(t, domain.JobVocabulary.Contains(domain.StageInterview))
	assert.True(t, domain.InternshipVocabulary.Contains(domain.StageInterview))
}

func TestParse(t *testing.T) {
	s, err := domain.JobVocabulary.Parse("  Offer ")
	require.NoError(t, err)
	assert.Equal(t, domain.StageOffer, s)

	_, err = domain.InternshipVocabulary.Parse("offer")
	assert.ErrorContains(t, err, "applied, reviewed, interview, accepted, rejected")
}

func TestStagesReturnsCopy(t *testing.T) {
	stages := domain.JobVocabulary.Stages()
	stages[0] = "tampered"

	assert.Equal(t, domain.StageApplied, domain.JobVocabulary.Stages()[0])
}

func TestApplicationValidate(t *testing.T) {
	app := domain.Application{JobID: "j1", CandidateName: "Budi", Stage: domain.StageApplied}
	assert.NoError(t, app.Validate())

	app.Stage = domain.StageReviewed
	assert.Error(t, app.Validate())

	app = domain.Application{CandidateName: "Budi", Stage: domain.StageApplied}
	assert.Error(t, app.Validate())
}

func TestInternshipApplicationValidate(t *testing.T) {
	app := domain.InternshipApplication{InternshipID: "i1", CandidateName: "Sari", Stage: domain.StageReviewed, GPAValue: 3.9, Semester: 6}
	assert.NoError(t, app.Validate())

	app.GPAValue = 4.1
	assert.Error(t, app.Validate())

	app.GPAValue = 3.0
	app.Semester = 0
	assert.Error(t, app.Validate())
}

func TestIsFinal(t *testing.T) {
	assert.True(t, domain.JobVocabulary.IsFinal(domain.StageHired))
	assert.False(t, domain.JobVocabulary.IsFinal(domain.StageAccepted))
	assert.True(t, domain.InternshipVocabulary.IsFinal(domain.StageAccepted))
	assert.True(t, domain.InternshipVocabulary.IsFinal(domain.StageRejected))
	assert.False(t, domain.InternshipVocabulary.IsFinal(domain.StageInterview))
}
