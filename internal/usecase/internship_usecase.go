package usecase

import (
	"context"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type internshipUsecase struct {
	repo     domain.InternshipRepository
	validate *validator.Validate
}

func NewInternshipUsecase(repo domain.InternshipRepository, validate *validator.Validate) domain.InternshipUsecase {
	return &internshipUsecase{repo: repo, validate: validate}
}

func (u *internshipUsecase) Create(ctx context.Context, companyID string, in *domain.Internship) error {
	if in.Stipend.Currency == "" {
		in.Stipend.Currency = domain.CurrencyIDR
	}
	if in.Status == "" {
		in.Status = domain.InternshipStatusOpen
	}
	if in.Quota == 0 {
		in.Quota = 1
	}
	if err := validation.Struct(u.validate, in); err != nil {
		return err
	}

	in.CompanyID = companyID
	in.CreatedAt = time.Now()
	in.UpdatedAt = in.CreatedAt

	if err := u.repo.Create(ctx, in); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *internshipUsecase) Get(ctx context.Context, id string) (*domain.Internship, error) {
	in, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Internship not found")
	}
	return in, nil
}

func (u *internshipUsecase) ListOpen(ctx context.Context, page domain.Page) (*domain.PaginatedResult[domain.Internship], error) {
	if err := validation.Struct(u.validate, &page); err != nil {
		return nil, err
	}
	page.Normalize()

	items, total, err := u.repo.Fetch(ctx, domain.InternshipStatusOpen, page.Limit, page.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(items, total, page), nil
}

func (u *internshipUsecase) ListByCompany(ctx context.Context, companyID string, page domain.Page) (*domain.PaginatedResult[domain.Internship], error) {
	if err := validation.Struct(u.validate, &page); err != nil {
		return nil, err
	}
	page.Normalize()

	items, total, err := u.repo.FetchByCompanyID(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(items, total, page), nil
}

func (u *internshipUsecase) Update(ctx context.Context, companyID string, in *domain.Internship) error {
	existing, err := u.owned(ctx, companyID, in.ID)
	if err != nil {
		return err
	}
	if in.Stipend.Currency == "" {
		in.Stipend.Currency = existing.Stipend.Currency
	}
	if in.Status == "" {
		in.Status = existing.Status
	}
	if in.Quota == 0 {
		in.Quota = existing.Quota
	}
	if err := validation.Struct(u.validate, in); err != nil {
		return err
	}

	in.CompanyID = existing.CompanyID
	in.CompanyName = existing.CompanyName
	in.CreatedAt = existing.CreatedAt
	in.ApplicationCount = existing.ApplicationCount
	in.UpdatedAt = time.Now()

	if err := u.repo.Update(ctx, in); err != nil {
		return repoError(err, "Internship not found")
	}
	return nil
}

func (u *internshipUsecase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := u.owned(ctx, companyID, id); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return repoError(err, "Internship not found")
	}
	return nil
}

func (u *internshipUsecase) owned(ctx context.Context, companyID, id string) (*domain.Internship, error) {
	in, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Internship not found")
	}
	if in.CompanyID != companyID {
		return nil, apperror.Forbidden("You can only manage your own internship postings")
	}
	return in, nil
}
