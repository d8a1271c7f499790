package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"simhire-backend/config"
	v1 "simhire-backend/internal/delivery/http/v1"
	"simhire-backend/internal/domain"
	"simhire-backend/internal/repository/cache"
	"simhire-backend/internal/usecase"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

type testServer struct {
	router   *gin.Engine
	issuer   *auth.Issuer
	authUC   *MockAuthUsecase
	jobUC    *MockJobUsecase
	appUC    *MockApplicationUsecase
	simUC    *MockSimulasiUsecase
	dbHealth error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		issuer: auth.NewIssuer("handler-secret", time.Hour),
		authUC: new(MockAuthUsecase),
		jobUC:  new(MockJobUsecase),
		appUC:  new(MockApplicationUsecase),
		simUC:  new(MockSimulasiUsecase),
	}
	health := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"database": func(context.Context) error { return s.dbHealth },
	})
	s.router = v1.NewRouter(v1.RouterDeps{
		AuthUC:        s.authUC,
		JobUC:         s.jobUC,
		ApplicationUC: s.appUC,
		SimulasiUC:    s.simUC,
		HealthUC:      health,
		Issuer:        s.issuer,
		Denylist:      cache.NewTokenDenylist(nil),
		Config: &config.Config{
			FrontendURL:              "http://localhost:3000",
			RateLimitWindowSeconds:   60,
			RateLimitAuthThreshold:   1000,
			RateLimitGlobalThreshold: 10000,
		},
	})
	return s
}

func (s *testServer) token(t *testing.T, userID, role string) string {
	t.Helper()
	token, _, err := s.issuer.Issue(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"status":"ok"`)

	s.dbHealth = errors.New("connection refused")
	w, env = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, env.Success)
}

func TestJobRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("public list binds pagination", func(t *testing.T) {
		s.jobUC.On("ListActiveJobs", mock.Anything, domain.Page{Page: 2, Limit: 5}).
			Return(&domain.PaginatedResult[domain.Job]{Data: []domain.Job{{ID: "j1"}}, Total: 6, Page: 2, Limit: 5, TotalPages: 2}, nil).Once()

		w, env := s.do(t, http.MethodGet, "/api/jobs?page=2&limit=5", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"totalPages":2`)
	})

	t.Run("non-numeric limit is rejected", func(t *testing.T) {
		w, _ := s.do(t, http.MethodGet, "/api/jobs?limit=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create needs a token", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/jobs", "", map[string]string{"title": "Go Dev"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("candidates cannot create jobs", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/api/jobs", s.token(t, "cand-1", domain.RoleCandidate), map[string]string{"title": "Go Dev"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("company creates a job as itself", func(t *testing.T) {
		s.jobUC.On("CreateJob", mock.Anything, "company-1", mock.AnythingOfType("*domain.Job")).Return(nil).Once()

		w, env := s.do(t, http.MethodPost, "/api/jobs", s.token(t, "company-1", domain.RoleCompany), map[string]string{"title": "Go Dev"})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
	})

	t.Run("my-jobs is not mistaken for a job id", func(t *testing.T) {
		s.jobUC.On("ListCompanyJobs", mock.Anything, "company-1", domain.Page{}).
			Return(&domain.PaginatedResult[domain.Job]{Data: []domain.Job{}}, nil).Once()

		w, _ := s.do(t, http.MethodGet, "/api/jobs/company/my-jobs", s.token(t, "company-1", domain.RoleCompany), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		s.jobUC.AssertNotCalled(t, "GetJob", mock.Anything, "company")
	})
}

func TestApplicationRoutes(t *testing.T) {
	s := newTestServer(t)
	company := s.token(t, "company-1", domain.RoleCompany)

	t.Run("status update passes the caller as company", func(t *testing.T) {
		change := domain.StatusChange{Stage: domain.StageInterview, Note: "Jadwal Senin"}
		s.appUC.On("UpdateStatus", mock.Anything, "company-1", "app-1", change).
			Return(&domain.Application{ID: "app-1", Stage: domain.StageInterview}, nil).Once()

		w, env := s.do(t, http.MethodPut, "/api/applications/app-1/status", company, map[string]string{"status": "interview", "notes": "Jadwal Senin"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"stage":"interview"`)
	})

	t.Run("usecase errors keep their status and message", func(t *testing.T) {
		s.appUC.On("UpdateStatus", mock.Anything, "company-1", "app-2", mock.Anything).
			Return(nil, apperror.BadRequest(`invalid job application status "reviewed"`)).Once()

		w, env := s.do(t, http.MethodPut, "/api/applications/app-2/status", company, map[string]string{"status": "reviewed"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "reviewed")
	})

	t.Run("apply loads the caller", func(t *testing.T) {
		user := &domain.User{ID: "cand-1", Name: "Budi", Role: domain.RoleCandidate}
		req := domain.ApplyRequest{JobID: "7d7a1d36-8f39-4a52-9a2b-2f6d0c1e5b11"}
		s.authUC.On("GetCurrentUser", mock.Anything, "cand-1").Return(user, nil).Once()
		s.appUC.On("Apply", mock.Anything, user, req).Return(&domain.Application{ID: "app-9", Stage: domain.StageApplied}, nil).Once()

		w, _ := s.do(t, http.MethodPost, "/api/applications/apply", s.token(t, "cand-1", domain.RoleCandidate), req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("company listing binds filter query", func(t *testing.T) {
		s.appUC.On("ListForCompany", mock.Anything, "company-1", domain.ApplicationFilter{Stage: "offer", TextQuery: "budi"}).
			Return([]domain.Application{}, nil).Once()

		w, _ := s.do(t, http.MethodGet, "/api/applications/company?stage=offer&q=budi", company, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("logout revokes the presented token", func(t *testing.T) {
		token := s.token(t, "cand-1", domain.RoleCandidate)
		claims, err := s.issuer.Parse(token)
		require.NoError(t, err)
		s.authUC.On("Logout", mock.Anything, claims.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()

		w, _ := s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		s.authUC.AssertExpectations(t)
	})
}

func TestSimulasiRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("leaderboard is public", func(t *testing.T) {
		s.simUC.On("Leaderboard", mock.Anything, "frontend", 3).
			Return(&domain.Leaderboard{CategoryID: "frontend", Entries: []domain.LeaderboardEntry{{Rank: 1}}}, nil).Once()

		w, env := s.do(t, http.MethodGet, "/api/simulasi/leaderboard/frontend?limit=3", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), `"categoryId":"frontend"`)
	})

	t.Run("limit out of range", func(t *testing.T) {
		w, _ := s.do(t, http.MethodGet, "/api/simulasi/leaderboard/frontend?limit=0", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("export streams a workbook", func(t *testing.T) {
		s.simUC.On("ExportLeaderboard", mock.Anything, "frontend").Return([]byte("PK"), "leaderboard_frontend.xlsx", nil).Once()

		w, _ := s.do(t, http.MethodGet, "/api/simulasi/leaderboard/frontend/export", s.token(t, "company-1", domain.RoleCompany), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "leaderboard_frontend.xlsx")
		assert.Equal(t, "PK", w.Body.String())
	})
}
