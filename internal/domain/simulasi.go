package domain

import (
	"context"
	"time"
)

// Breakdown is the four-part sub-score of an assessment
type Breakdown struct {
	Technical     float64 `json:"technical" validate:"min=0,max=100"`
	Creativity    float64 `json:"creativity" validate:"min=0,max=100"`
	Efficiency    float64 `json:"efficiency" validate:"min=0,max=100"`
	Communication float64 `json:"communication" validate:"min=0,max=100"`
}

// SimulasiResult is the outcome of one simulated-work assessment attempt
type SimulasiResult struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	UserName         string    `json:"userName,omitempty"`
	CategoryID       string    `json:"categoryId"`
	TotalScore       float64   `json:"totalScore"`
	MaxScore         float64   `json:"maxScore"`
	Percentage       int       `json:"percentage"` // round(totalScore/maxScore*100)
	Breakdown        Breakdown `json:"breakdown"`
	Badge            *string   `json:"badge,omitempty"`
	CertificateID    *string   `json:"certificateId,omitempty"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	CompletedAt      time.Time `json:"completedAt"`
}

// LeaderboardEntry is one ranked row of a category leaderboard
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	ResultID    string    `json:"resultId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	CategoryID  string    `json:"categoryId"`
	TotalScore  float64   `json:"totalScore"`
	Percentage  int       `json:"percentage"`
	RankLetter  string    `json:"rankLetter"`
	Badge       *string   `json:"badge,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

// Leaderboard is the ranked view of one category
type Leaderboard struct {
	CategoryID        string             `json:"categoryId"`
	Participants      int                `json:"participants"`
	AveragePercentage int                `json:"averagePercentage"`
	Entries           []LeaderboardEntry `json:"entries"`
}

// SubmitRequest is a completed assessment sent by a candidate
type SubmitRequest struct {
	CategoryID       string    `json:"categoryId" validate:"required,min=2,max=50"`
	TotalScore       float64   `json:"totalScore" validate:"min=0,ltefield=MaxScore"`
	MaxScore         float64   `json:"maxScore" validate:"required,gt=0"`
	Breakdown        Breakdown `json:"breakdown" validate:"required"`
	TimeSpentSeconds int       `json:"timeSpentSeconds" validate:"min=0"`
}

// SimulasiRepository defines data access for assessment results
type SimulasiRepository interface {
	Create(ctx context.Context, result *SimulasiResult) error
	GetByID(ctx context.Context, id string) (*SimulasiResult, error)
	GetByUserID(ctx context.Context, userID string) ([]SimulasiResult, error)
	// BestByCategory returns the best attempt of every user in the category
	BestByCategory(ctx context.Context, categoryID string) ([]SimulasiResult, error)
	Categories(ctx context.Context) ([]string, error)
}

// LeaderboardCache stores computed leaderboards between submissions
type LeaderboardCache interface {
	Get(ctx context.Context, categoryID string) (*Leaderboard, error)
	Set(ctx context.Context, board *Leaderboard) error
	Invalidate(ctx context.Context, categoryID string) error
}

// SimulasiUsecase defines business logic for assessments and leaderboards
type SimulasiUsecase interface {
	Submit(ctx context.Context, user *User, req SubmitRequest) (*SimulasiResult, error)
	MyResults(ctx context.Context, userID string) ([]SimulasiResult, error)
	GetResult(ctx context.Context, userID, id string) (*SimulasiResult, error)
	Leaderboard(ctx context.Context, categoryID string, limit int) (*Leaderboard, error)
	Leaderboards(ctx context.Context, limit int) ([]Leaderboard, error)
	ExportLeaderboard(ctx context.Context, categoryID string) ([]byte, string, error)
}
