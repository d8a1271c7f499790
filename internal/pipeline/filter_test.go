package pipeline_test

import (
	"testing"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"

	"github.com/stretchr/testify/assert"
)

func gpa(v float64) *float64 { return &v }

func internshipFixtures() []domain.InternshipApplication {
	return []domain.InternshipApplication{
		{ID: "1", InternshipID: "i1", CandidateName: "Budi Santoso", CandidateEmail: "budi@ui.ac.id", CandidateSkills: []string{"Go", "SQL"}, Stage: domain.StageInterview, University: "Universitas Indonesia", GPAValue: 3.8},
		{ID: "2", InternshipID: "i1", CandidateName: "Sari Dewi", CandidateEmail: "sari@itb.ac.id", CandidateSkills: []string{"Figma"}, Stage: domain.StageApplied, University: "Institut Teknologi Bandung", GPAValue: 3.2},
		{ID: "3", InternshipID: "i2", CandidateName: "Andi Wijaya", CandidateEmail: "andi@ugm.ac.id", CandidateSkills: []string{"React", "TypeScript"}, Stage: domain.StageInterview, University: "Universitas Gadjah Mada", GPAValue: 3.4},
		{ID: "4", InternshipID: "i2", CandidateName: "Rina", CandidateEmail: "rina@ui.ac.id", CandidateSkills: []string{"golang"}, Stage: domain.StageAccepted, University: "universitas indonesia", GPAValue: 3.5},
	}
}

func ids(items []domain.InternshipApplication) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	items := internshipFixtures()

	tests := []struct {
		name   string
		filter domain.ApplicationFilter
		want   []string
	}{
		{"empty filter accepts all", domain.ApplicationFilter{}, []string{"1", "2", "3", "4"}},
		{"by stage", domain.ApplicationFilter{Stage: domain.StageInterview}, []string{"1", "3"}},
		{"by posting", domain.ApplicationFilter{JobID: "i2"}, []string{"3", "4"}},
		{"text matches name case-insensitively", domain.ApplicationFilter{TextQuery: "SARI"}, []string{"2"}},
		{"text matches email", domain.ApplicationFilter{TextQuery: "@ui.ac"}, []string{"1", "4"}},
		{"text matches skill substring", domain.ApplicationFilter{TextQuery: "go"}, []string{"1", "4"}},
		{"min gpa is inclusive", domain.ApplicationFilter{MinGPA: gpa(3.5)}, []string{"1", "4"}},
		{"university substring", domain.ApplicationFilter{University: "Indonesia"}, []string{"1", "4"}},
		{"fields are ANDed", domain.ApplicationFilter{Stage: domain.StageInterview, MinGPA: gpa(3.5)}, []string{"1"}},
		{"no match", domain.ApplicationFilter{TextQuery: "rust"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(pipeline.Filter(items, tt.filter)))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := internshipFixtures()
	before := ids(items)

	_ = pipeline.Filter(items, domain.ApplicationFilter{Stage: domain.StageAccepted})

	assert.Equal(t, before, ids(items))
}

func TestFilterIsIdempotent(t *testing.T) {
	f := domain.ApplicationFilter{TextQuery: "ui", MinGPA: gpa(3.0)}
	once := pipeline.Filter(internshipFixtures(), f)
	twice := pipeline.Filter(once, f)

	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterFieldsCommute(t *testing.T) {
	items := internshipFixtures()
	stage := domain.ApplicationFilter{Stage: domain.StageInterview}
	minGPA := domain.ApplicationFilter{MinGPA: gpa(3.5)}
	both := domain.ApplicationFilter{Stage: domain.StageInterview, MinGPA: gpa(3.5)}

	stageThenGPA := pipeline.Filter(pipeline.Filter(items, stage), minGPA)
	gpaThenStage := pipeline.Filter(pipeline.Filter(items, minGPA), stage)
	together := pipeline.Filter(items, both)

	assert.Equal(t, ids(together), ids(stageThenGPA))
	assert.Equal(t, ids(together), ids(gpaThenStage))
}

func TestFilterMinGPAExcludesJobApplications(t *testing.T) {
	apps := []domain.Application{
		{ID: "a", JobID: "j", CandidateName: "No GPA", Stage: domain.StageApplied},
	}

	assert.Empty(t, pipeline.Filter(apps, domain.ApplicationFilter{MinGPA: gpa(0)}))
	assert.Len(t, pipeline.Filter(apps, domain.ApplicationFilter{}), 1)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, pipeline.IsEmpty(domain.ApplicationFilter{TextQuery: "   "}))
	assert.False(t, pipeline.IsEmpty(domain.ApplicationFilter{MinGPA: gpa(0)}))
}
