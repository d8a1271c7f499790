package v1_test

import (
	"context"
	"time"

	"simhire-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct{ mock.Mock }

func (m *MockAuthUsecase) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthUsecase) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthUsecase) UpdateProfile(ctx context.Context, id string, req domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

type MockJobUsecase struct{ mock.Mock }

func (m *MockJobUsecase) CreateJob(ctx context.Context, companyID string, job *domain.Job) error {
	return m.Called(ctx, companyID, job).Error(0)
}
func (m *MockJobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobUsecase) ListActiveJobs(ctx context.Context, page domain.Page) (*domain.PaginatedResult[domain.Job], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedResult[domain.Job]), args.Error(1)
}
func (m *MockJobUsecase) ListCompanyJobs(ctx context.Context, companyID string, page domain.Page) (*domain.PaginatedResult[domain.Job], error) {
	args := m.Called(ctx, companyID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaginatedResult[domain.Job]), args.Error(1)
}
func (m *MockJobUsecase) UpdateJob(ctx context.Context, companyID string, job *domain.Job) error {
	return m.Called(ctx, companyID, job).Error(0)
}
func (m *MockJobUsecase) DeleteJob(ctx context.Context, companyID, id string) error {
	return m.Called(ctx, companyID, id).Error(0)
}

type MockApplicationUsecase struct{ mock.Mock }

func (m *MockApplicationUsecase) Apply(ctx context.Context, user *domain.User, req domain.ApplyRequest) (*domain.Application, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationUsecase) Withdraw(ctx context.Context, userID, applicationID string) error {
	return m.Called(ctx, userID, applicationID).Error(0)
}
func (m *MockApplicationUsecase) ListForCompany(ctx context.Context, companyID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationUsecase) UpdateStatus(ctx context.Context, companyID, applicationID string, change domain.StatusChange) (*domain.Application, error) {
	args := m.Called(ctx, companyID, applicationID, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationUsecase) Stats(ctx context.Context, user *domain.User) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}

type MockSimulasiUsecase struct{ mock.Mock }

func (m *MockSimulasiUsecase) Submit(ctx context.Context, user *domain.User, req domain.SubmitRequest) (*domain.SimulasiResult, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulasiResult), args.Error(1)
}
func (m *MockSimulasiUsecase) MyResults(ctx context.Context, userID string) ([]domain.SimulasiResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SimulasiResult), args.Error(1)
}
func (m *MockSimulasiUsecase) GetResult(ctx context.Context, userID, id string) (*domain.SimulasiResult, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulasiResult), args.Error(1)
}
func (m *MockSimulasiUsecase) Leaderboard(ctx context.Context, categoryID string, limit int) (*domain.Leaderboard, error) {
	args := m.Called(ctx, categoryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaderboard), args.Error(1)
}
func (m *MockSimulasiUsecase) Leaderboards(ctx context.Context, limit int) ([]domain.Leaderboard, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Leaderboard), args.Error(1)
}
func (m *MockSimulasiUsecase) ExportLeaderboard(ctx context.Context, categoryID string) ([]byte, string, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
