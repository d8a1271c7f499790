package usecase_test

import (
	"context"
	"time"

	"simhire-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, companyID, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByCandidateID(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByCompanyID(ctx context.Context, companyID string) ([]domain.Application, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID, candidateID string) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.Application, error) {
	args := m.Called(ctx, id, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockInternshipRepo struct {
	mock.Mock
}

func (m *MockInternshipRepo) Create(ctx context.Context, in *domain.Internship) error {
	return m.Called(ctx, in).Error(0)
}
func (m *MockInternshipRepo) GetByID(ctx context.Context, id string) (*domain.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Internship), args.Error(1)
}
func (m *MockInternshipRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.Internship, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Internship), args.Get(1).(int64), args.Error(2)
}
func (m *MockInternshipRepo) FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]domain.Internship, int64, error) {
	args := m.Called(ctx, companyID, limit, offset)
	return args.Get(0).([]domain.Internship), args.Get(1).(int64), args.Error(2)
}
func (m *MockInternshipRepo) Update(ctx context.Context, in *domain.Internship) error {
	return m.Called(ctx, in).Error(0)
}
func (m *MockInternshipRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockInternshipApplicationRepo struct {
	mock.Mock
}

func (m *MockInternshipApplicationRepo) Create(ctx context.Context, app *domain.InternshipApplication) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockInternshipApplicationRepo) GetByID(ctx context.Context, id string) (*domain.InternshipApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InternshipApplication), args.Error(1)
}
func (m *MockInternshipApplicationRepo) GetByCandidateID(ctx context.Context, candidateID string) ([]domain.InternshipApplication, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).([]domain.InternshipApplication), args.Error(1)
}
func (m *MockInternshipApplicationRepo) GetByCompanyID(ctx context.Context, companyID string) ([]domain.InternshipApplication, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]domain.InternshipApplication), args.Error(1)
}
func (m *MockInternshipApplicationRepo) CheckExists(ctx context.Context, internshipID, candidateID string) (bool, error) {
	args := m.Called(ctx, internshipID, candidateID)
	return args.Bool(0), args.Error(1)
}
func (m *MockInternshipApplicationRepo) UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.InternshipApplication, error) {
	args := m.Called(ctx, id, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InternshipApplication), args.Error(1)
}
func (m *MockInternshipApplicationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockSimulasiRepo struct {
	mock.Mock
}

func (m *MockSimulasiRepo) Create(ctx context.Context, result *domain.SimulasiResult) error {
	return m.Called(ctx, result).Error(0)
}
func (m *MockSimulasiRepo) GetByID(ctx context.Context, id string) (*domain.SimulasiResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulasiResult), args.Error(1)
}
func (m *MockSimulasiRepo) GetByUserID(ctx context.Context, userID string) ([]domain.SimulasiResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SimulasiResult), args.Error(1)
}
func (m *MockSimulasiRepo) BestByCategory(ctx context.Context, categoryID string) ([]domain.SimulasiResult, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]domain.SimulasiResult), args.Error(1)
}
func (m *MockSimulasiRepo) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) Get(ctx context.Context, categoryID string) (*domain.Leaderboard, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Leaderboard), args.Error(1)
}
func (m *MockLeaderboardCache) Set(ctx context.Context, board *domain.Leaderboard) error {
	return m.Called(ctx, board).Error(0)
}
func (m *MockLeaderboardCache) Invalidate(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

type MockDenylist struct {
	mock.Mock
}

func (m *MockDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return m.Called(ctx, tokenID, until).Error(0)
}
func (m *MockDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.events = append(p.events, e)
	return nil
}
func (p *recordingPublisher) Close() {}
