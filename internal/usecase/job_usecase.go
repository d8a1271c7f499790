package usecase

import (
	"context"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, companyID string, job *domain.Job) error {
	if job.Salary.Currency == "" {
		job.Salary.Currency = domain.CurrencyIDR
	}
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	if err := validation.Struct(u.validate, job); err != nil {
		return err
	}

	job.CompanyID = companyID
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	return job, nil
}

// ListActiveJobs only ever returns active postings
func (u *jobUsecase) ListActiveJobs(ctx context.Context, page domain.Page) (*domain.PaginatedResult[domain.Job], error) {
	if err := validation.Struct(u.validate, &page); err != nil {
		return nil, err
	}
	page.Normalize()

	jobs, total, err := u.jobRepo.Fetch(ctx, domain.JobStatusActive, page.Limit, page.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, page), nil
}

func (u *jobUsecase) ListCompanyJobs(ctx context.Context, companyID string, page domain.Page) (*domain.PaginatedResult[domain.Job], error) {
	if err := validation.Struct(u.validate, &page); err != nil {
		return nil, err
	}
	page.Normalize()

	jobs, total, err := u.jobRepo.FetchByCompanyID(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, page), nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, companyID string, job *domain.Job) error {
	existing, err := u.owned(ctx, companyID, job.ID)
	if err != nil {
		return err
	}
	if job.Salary.Currency == "" {
		job.Salary.Currency = existing.Salary.Currency
	}
	if job.Status == "" {
		job.Status = existing.Status
	}
	if err := validation.Struct(u.validate, job); err != nil {
		return err
	}

	job.CompanyID = existing.CompanyID
	job.CompanyName = existing.CompanyName
	job.CreatedAt = existing.CreatedAt
	job.ApplicationCount = existing.ApplicationCount
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return repoError(err, "Job not found")
	}
	return nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, companyID, id string) error {
	if _, err := u.owned(ctx, companyID, id); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return repoError(err, "Job not found")
	}
	return nil
}

// owned loads the job and checks that companyID posted it
func (u *jobUsecase) owned(ctx context.Context, companyID, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.CompanyID != companyID {
		return nil, apperror.Forbidden("You can only manage your own job postings")
	}
	return job, nil
}
