package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Internship posting status constants
const (
	InternshipStatusOpen   = "open"
	InternshipStatusDraft  = "draft"
	InternshipStatusClosed = "closed"
)

// Internship is an internship posting owned by a company
type Internship struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"companyId"`
	CompanyName      string    `json:"companyName,omitempty"`
	Position         string    `json:"position" validate:"required,min=3,max=200,no_emoji"`
	Department       string    `json:"department" validate:"omitempty,min=2,max=100"`
	Description      string    `json:"description" validate:"required,min=50,max=5000"`
	DurationMonths   int       `json:"durationMonths" validate:"required,min=1,max=24"`
	LocationMode     string    `json:"locationMode" validate:"required,oneof=onsite remote hybrid"`
	Location         string    `json:"location" validate:"max=200"`
	Stipend          Salary    `json:"stipend"`
	Requirements     []string  `json:"requirements" validate:"max=30,dive,min=1,max=200"`
	Skills           []string  `json:"skills" validate:"max=30,dive,min=1,max=200"`
	Benefits         []string  `json:"benefits" validate:"max=30,dive,min=1,max=200"`
	Quota            int       `json:"quota" validate:"omitempty,min=1,max=1000"`
	Status           string    `json:"status" validate:"omitempty,oneof=open draft closed"`
	ApplicationCount int64     `json:"applicationCount"` // derived by query
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// InternshipApplication is a student's application to an internship posting
type InternshipApplication struct {
	ID              string    `json:"id"`
	InternshipID    string    `json:"internshipId"`
	CandidateID     string    `json:"candidateId"`
	CandidateName   string    `json:"candidateName"`
	CandidateEmail  string    `json:"candidateEmail"`
	CandidateSkills []string  `json:"candidateSkills"`
	Stage           Stage     `json:"stage"` // applied → reviewed → interview → accepted / rejected
	AppliedDate     time.Time `json:"appliedDate"`
	Notes           *string   `json:"notes,omitempty"`
	Score           *float64  `json:"score,omitempty"`
	ScoreOverall    *float64  `json:"scoreOverall,omitempty"`
	University      string    `json:"university"`
	Major           string    `json:"major"`
	Semester        int       `json:"semester"`
	GPAValue        float64   `json:"gpa"`
	CoverLetter     *string   `json:"coverLetter,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Joined data for list responses
	Position  *string `json:"position,omitempty"`
	CompanyID *string `json:"companyId,omitempty"`
}

// Validate checks the record invariants of an internship application.
func (a *InternshipApplication) Validate() error {
	if strings.TrimSpace(a.InternshipID) == "" {
		return errors.New("application must reference an internship")
	}
	if strings.TrimSpace(a.CandidateName) == "" {
		return errors.New("application must have a candidate name")
	}
	if !InternshipVocabulary.Contains(a.Stage) {
		return errors.New("application stage must be one of: " + InternshipVocabulary.String())
	}
	if a.GPAValue < 0 || a.GPAValue > 4 {
		return errors.New("gpa must be between 0.00 and 4.00")
	}
	if a.Semester < 1 {
		return errors.New("semester must be a positive number")
	}
	return nil
}

func (a InternshipApplication) StageValue() Stage { return a.Stage }
func (a InternshipApplication) PostingID() string { return a.InternshipID }
func (a InternshipApplication) Name() string { return a.CandidateName }
func (a InternshipApplication) Email() string { return a.CandidateEmail }
func (a InternshipApplication) Skills() []string { return a.CandidateSkills }
func (a InternshipApplication) GPA() (float64, bool) { return a.GPAValue, true }
func (a InternshipApplication) School() string { return a.University }

// UniversityCount is the number of applicants from one university
type UniversityCount struct {
	University string `json:"university"`
	Count      int    `json:"count"`
}

// InternshipStats summarizes a set of internship applications
type InternshipStats struct {
	Total        int               `json:"total"`
	ByStage      map[Stage]int     `json:"byStage"`
	Stages       []StageCount      `json:"stages"`
	AverageGPA   string            `json:"averageGpa"`
	Universities []UniversityCount `json:"universities"`
}

// InternshipApplyRequest carries the candidate-supplied part of an internship application
type InternshipApplyRequest struct {
	InternshipID string   `json:"internshipId" validate:"required,uuid"`
	University   string   `json:"university" validate:"required,min=2,max=200"`
	Major        string   `json:"major" validate:"required,min=2,max=100"`
	Semester     int      `json:"semester" validate:"required,min=1,max=14"`
	GPA          *float64 `json:"gpa" validate:"required,min=0,max=4"`
	Skills       []string `json:"candidateSkills" validate:"max=30,dive,min=1,max=200"`
	CoverLetter  string   `json:"coverLetter" validate:"max=5000"`
}

// InternshipRepository defines data access for internship postings
type InternshipRepository interface {
	Create(ctx context.Context, in *Internship) error
	GetByID(ctx context.Context, id string) (*Internship, error)
	Fetch(ctx context.Context, status string, limit, offset int) ([]Internship, int64, error)
	FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]Internship, int64, error)
	Update(ctx context.Context, in *Internship) error
	Delete(ctx context.Context, id string) error
}

// InternshipApplicationRepository defines data access for internship applications
type InternshipApplicationRepository interface {
	Create(ctx context.Context, app *InternshipApplication) error
	GetByID(ctx context.Context, id string) (*InternshipApplication, error)
	GetByCandidateID(ctx context.Context, candidateID string) ([]InternshipApplication, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]InternshipApplication, error)
	CheckExists(ctx context.Context, internshipID, candidateID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, change StatusChange) (*InternshipApplication, error)
	Delete(ctx context.Context, id string) error
}

// InternshipUsecase defines business logic for internship postings
type InternshipUsecase interface {
	Create(ctx context.Context, companyID string, in *Internship) error
	Get(ctx context.Context, id string) (*Internship, error)
	ListOpen(ctx context.Context, page Page) (*PaginatedResult[Internship], error)
	ListByCompany(ctx context.Context, companyID string, page Page) (*PaginatedResult[Internship], error)
	Update(ctx context.Context, companyID string, in *Internship) error
	Delete(ctx context.Context, companyID, id string) error
}

// InternshipApplicationUsecase defines business logic for internship applications
type InternshipApplicationUsecase interface {
	Apply(ctx context.Context, user *User, req InternshipApplyRequest) (*InternshipApplication, error)
	GetMyApplications(ctx context.Context, userID string) ([]InternshipApplication, error)
	Withdraw(ctx context.Context, userID, applicationID string) error

	ListForCompany(ctx context.Context, companyID string, filter ApplicationFilter) ([]InternshipApplication, error)
	UpdateStatus(ctx context.Context, companyID, applicationID string, change StatusChange) (*InternshipApplication, error)
	CompanyStats(ctx context.Context, companyID string) (*InternshipStats, error)
	Export(ctx context.Context, companyID string, filter ApplicationFilter) ([]byte, string, error)
}
