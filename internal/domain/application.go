package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Application represents one candidate's application to one job
type Application struct {
	ID              string    `json:"id"`
	JobID           string    `json:"jobId"`
	CandidateID     string    `json:"candidateId"`
	CandidateName   string    `json:"candidateName"`
	CandidateEmail  string    `json:"candidateEmail"`
	CandidateSkills []string  `json:"candidateSkills"`
	Stage           Stage     `json:"stage"` // applied → screening → interview → offer → accepted → hired / rejected
	AppliedDate     time.Time `json:"appliedDate"`
	Notes           *string   `json:"notes,omitempty"`
	Score           *float64  `json:"score,omitempty"`        // 0-10
	ScoreOverall    *float64  `json:"scoreOverall,omitempty"` // 0-10
	CoverLetter     *string   `json:"coverLetter,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Joined data for list responses
	JobTitle  *string `json:"jobTitle,omitempty"`
	CompanyID *string `json:"companyId,omitempty"`
}

// Validate checks the record invariants: a known job stage, a job reference and a candidate name.
func (a *Application) Validate() error {
	if strings.TrimSpace(a.JobID) == "" {
		return errors.New("application must reference a job")
	}
	if strings.TrimSpace(a.CandidateName) == "" {
		return errors.New("application must have a candidate name")
	}
	if !JobVocabulary.Contains(a.Stage) {
		return errors.New("application stage must be one of: " + JobVocabulary.String())
	}
	return nil
}

func (a Application) StageValue() Stage { return a.Stage }
func (a Application) PostingID() string { return a.JobID }
func (a Application) Name() string { return a.CandidateName }
func (a Application) Email() string { return a.CandidateEmail }
func (a Application) Skills() []string { return a.CandidateSkills }
func (a Application) GPA() (float64, bool) { return 0, false }
func (a Application) School() string { return "" }

// ApplicationFilter narrows an application collection. Empty fields accept everything.
type ApplicationFilter struct {
	Stage      Stage    `json:"stage,omitempty" form:"stage"`
	JobID      string   `json:"jobId,omitempty" form:"jobId"`
	TextQuery  string   `json:"q,omitempty" form:"q"`
	MinGPA     *float64 `json:"minGpa,omitempty" form:"minGpa"`
	University string   `json:"university,omitempty" form:"university"`
}

// StageCount is one row of a stage breakdown, in vocabulary order.
type StageCount struct {
	Stage      Stage  `json:"stage"`
	Label      string `json:"label"`
	Color      string `json:"color"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// ApplicationStats summarizes a set of job applications
type ApplicationStats struct {
	Total        int           `json:"total"`
	ByStage      map[Stage]int `json:"byStage"`
	Stages       []StageCount  `json:"stages"`
	AverageScore float64       `json:"averageScore"`
}

// StatusChange is a request to move an application to another stage
type StatusChange struct {
	Stage Stage    `json:"status" validate:"required"`
	Note  string   `json:"notes,omitempty" validate:"max=1000"`
	Score *float64 `json:"score,omitempty" validate:"omitempty,min=0,max=10"`
}

// ApplicationRepository defines data access methods for job applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByCandidateID(ctx context.Context, candidateID string) ([]Application, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID, candidateID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, change StatusChange) (*Application, error)
	Delete(ctx context.Context, id string) error
}

// ApplicationUsecase defines business logic for job applications
type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, user *User, req ApplyRequest) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)
	Withdraw(ctx context.Context, userID, applicationID string) error

	// Company operations
	ListForCompany(ctx context.Context, companyID string, filter ApplicationFilter) ([]Application, error)
	UpdateStatus(ctx context.Context, companyID, applicationID string, change StatusChange) (*Application, error)
	Stats(ctx context.Context, user *User) (*ApplicationStats, error)
}

// ApplyRequest carries the candidate-supplied part of a new job application
type ApplyRequest struct {
	JobID       string   `json:"jobId" validate:"required,uuid"`
	Skills      []string `json:"candidateSkills" validate:"max=30,dive,min=1,max=200"`
	CoverLetter string   `json:"coverLetter" validate:"max=5000"`
}
