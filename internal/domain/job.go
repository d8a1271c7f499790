package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// Job posting status constants
const (
	JobStatusActive = "active"
	JobStatusDraft  = "draft"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

// Currency constants
const (
	CurrencyIDR = "IDR"
	CurrencyUSD = "USD"
)

// Salary is a compensation range. Max is never below Min.
type Salary struct {
	Min      float64 `json:"min" validate:"min=0"`
	Max      float64 `json:"max" validate:"min=0,gtefield=Min"`
	Currency string  `json:"currency" validate:"required,oneof=IDR USD"`
}

type Job struct {
	ID               string    `json:"id"`
	CompanyID        string    `json:"companyId"`
	CompanyName      string    `json:"companyName,omitempty"`
	Title            string    `json:"title" validate:"required,min=3,max=200,no_emoji"`
	Department       string    `json:"department" validate:"omitempty,min=2,max=100"`
	Description      string    `json:"description" validate:"required,min=50,max=5000"`
	EmploymentType   string    `json:"employmentType" validate:"required,oneof=full-time part-time contract freelance"`
	ExperienceLevel  string    `json:"experienceLevel" validate:"omitempty,oneof=entry junior mid senior lead"`
	LocationMode     string    `json:"locationMode" validate:"required,oneof=onsite remote hybrid"`
	Location         string    `json:"location" validate:"max=200"`
	Salary           Salary    `json:"salary"`
	Requirements     []string  `json:"requirements" validate:"max=30,dive,min=1,max=200"`
	Skills           []string  `json:"skills" validate:"max=30,dive,min=1,max=200"`
	Benefits         []string  `json:"benefits" validate:"max=30,dive,min=1,max=200"`
	Status           string    `json:"status" validate:"omitempty,oneof=active draft paused closed"`
	ApplicationCount int64     `json:"applicationCount"` // derived by query
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Page is a validated page/limit pair
type Page struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// Normalize applies defaults (page 1, limit 10) and the limit cap.
func (p *Page) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginatedResult computes the page count for total rows.
func NewPaginatedResult[T any](data []T, total int64, page Page) *PaginatedResult[T] {
	totalPages := int(total) / page.Limit
	if int(total)%page.Limit > 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return &PaginatedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Fetch(ctx context.Context, status string, limit, offset int) ([]Job, int64, error)
	FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, companyID string, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	ListActiveJobs(ctx context.Context, page Page) (*PaginatedResult[Job], error)
	ListCompanyJobs(ctx context.Context, companyID string, page Page) (*PaginatedResult[Job], error)
	UpdateJob(ctx context.Context, companyID string, job *Job) error
	DeleteJob(ctx context.Context, companyID, id string) error
}
