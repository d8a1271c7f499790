package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"
	"simhire-backend/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newServer(t *testing.T, h http.HandlerFunc) (*client.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/api", nil, srv.Client()), srv
}

func TestLoginStoresTokenAndAuthenticatesLaterCalls(t *testing.T) {
	var loginAuth, meAuth string
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			loginAuth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, map[string]interface{}{
				"success": true,
				"message": "Login successful",
				"data":    map[string]interface{}{"token": "tok-123", "user": map[string]interface{}{"id": "u1", "role": "company"}},
			})
		case "/api/auth/me":
			meAuth = r.Header.Get("Authorization")
			writeEnvelope(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]interface{}{"id": "u1", "name": "Budi"}})
		default:
			http.NotFound(w, r)
		}
	})
	c.Session().SetToken("stale")

	env, err := c.Login(context.Background(), domain.LoginRequest{Email: "budi@example.com", Password: "rahasia123"})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "tok-123", c.Session().Token())
	assert.Empty(t, loginAuth, "login must not carry a bearer token")

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Budi", me.Data.Name)
	assert.Equal(t, "Bearer tok-123", meAuth)
}

func TestUnparsableBodyBecomesFailureEnvelope(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	})

	env, err := c.Leaderboards(context.Background(), 10)

	require.NotNil(t, env)
	assert.False(t, env.Success)
	assert.True(t, strings.HasPrefix(env.Message, "invalid response from server"))

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.NotEmpty(t, apiErr.Message)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    client.Kind
		wantCode    string
		wantMessage string
		wantDetails []string
	}{
		{
			name:        "validation with field messages",
			status:      http.StatusBadRequest,
			body:        `{"success":false,"message":"Validation failed","errors":["Judul Lowongan: Minimal 3 karakter"]}`,
			wantKind:    client.KindValidation,
			wantCode:    "validation_error",
			wantMessage: "Validation failed",
			wantDetails: []string{"Judul Lowongan: Minimal 3 karakter"},
		},
		{
			name:        "expired token",
			status:      http.StatusUnauthorized,
			body:        `{"success":false,"message":"Token has been revoked"}`,
			wantKind:    client.KindAuth,
			wantCode:    "unauthorized",
			wantMessage: "Token has been revoked",
		},
		{
			name:        "wrong role",
			status:      http.StatusForbidden,
			body:        `{"success":false,"message":"Insufficient permissions"}`,
			wantKind:    client.KindAuth,
			wantCode:    "forbidden",
			wantMessage: "Insufficient permissions",
		},
		{
			name:        "business rule",
			status:      http.StatusConflict,
			body:        `{"success":false,"message":"You have already applied to this job"}`,
			wantKind:    client.KindDomain,
			wantCode:    "conflict",
			wantMessage: "You have already applied to this job",
		},
		{
			name:        "plain text body falls back to status text",
			status:      http.StatusNotFound,
			body:        "404 page not found",
			wantKind:    client.KindDomain,
			wantCode:    "not_found",
			wantMessage: "Not Found",
		},
		{
			name:        "empty body",
			status:      http.StatusBadGateway,
			body:        "",
			wantKind:    client.KindDomain,
			wantCode:    "server_error",
			wantMessage: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			env, err := c.GetJob(context.Background(), "job-1")

			require.NotNil(t, env)
			assert.False(t, env.Success)
			var apiErr *client.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantDetails, apiErr.Details)
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := client.New(srv.URL, nil, srv.Client())
	srv.Close()

	env, err := c.Health(context.Background())

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, client.KindNetwork, apiErr.Kind)
	assert.NotEmpty(t, apiErr.Message)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestLogoutClearsSessionEvenWhenRejected(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Invalid token"})
	})
	c.Session().SetToken("tok")

	_, err := c.Logout(context.Background())

	assert.Error(t, err)
	assert.Empty(t, c.Session().Token())
}

func TestCompanyFiltersAreSentAsQuery(t *testing.T) {
	var got string
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, map[string]interface{}{"success": true, "data": []interface{}{}})
	})
	minGPA := 3.5

	_, err := c.CompanyInternshipApplications(context.Background(), domain.ApplicationFilter{
		Stage:      domain.StageInterview,
		JobID:      "in-1",
		TextQuery:  "go",
		MinGPA:     &minGPA,
		University: "Indonesia",
	})

	require.NoError(t, err)
	assert.Equal(t, "internshipId=in-1&minGpa=3.5&q=go&stage=interview&university=Indonesia", got)
}

func TestExportReturnsWorkbook(t *testing.T) {
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/simulasi/leaderboard/frontend/export", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="leaderboard-frontend.xlsx"`)
		_, _ = w.Write([]byte("PK\x03\x04"))
	})

	data, name, err := c.ExportLeaderboard(context.Background(), "frontend")

	require.NoError(t, err)
	assert.Equal(t, "leaderboard-frontend.xlsx", name)
	assert.Equal(t, []byte("PK\x03\x04"), data)
}

func TestBulkTransitionThroughClient(t *testing.T) {
	var (
		mu      sync.Mutex
		updated []string
		reads   int32
	)
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/status"):
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/internship-applications/"), "/status")
			if id == "a2" {
				writeEnvelope(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "An unexpected error occurred"})
				return
			}
			var change domain.StatusChange
			_ = json.NewDecoder(r.Body).Decode(&change)
			assert.Equal(t, domain.StageAccepted, change.Stage)
			mu.Lock()
			updated = append(updated, id)
			mu.Unlock()
			writeEnvelope(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]interface{}{"id": id, "stage": "accepted"}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/internship-applications/company":
			atomic.AddInt32(&reads, 1)
			writeEnvelope(w, http.StatusOK, map[string]interface{}{"success": true, "data": []interface{}{}})
		default:
			http.NotFound(w, r)
		}
	})
	c.Session().SetToken("company-token")

	snapshot := pipeline.NewSnapshot(client.CompanyInternshipApplicationsLoader(c, domain.ApplicationFilter{}))
	tr := pipeline.NewTransitioner(domain.InternshipVocabulary, client.InternshipApplicationWriter{Client: c}, snapshot)

	result, err := tr.BulkTransition(context.Background(), []string{"a1", "a2", "a3"}, domain.StageAccepted)

	var bulkErr *pipeline.BulkError
	require.True(t, errors.As(err, &bulkErr))
	assert.Len(t, bulkErr.Failed, 1)
	assert.Equal(t, []string{"a1", "a3"}, result.Succeeded)
	assert.Equal(t, []string{"a2"}, result.Failed)
	assert.ElementsMatch(t, []string{"a1", "a3"}, updated)
	assert.Equal(t, int32(1), atomic.LoadInt32(&reads))
}

func TestTransitionRejectsForeignStageWithoutRequest(t *testing.T) {
	var calls int32
	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	tr := pipeline.NewTransitioner(domain.InternshipVocabulary, client.InternshipApplicationWriter{Client: c}, nil)

	err := tr.RequestTransition(context.Background(), "a1", domain.StageScreening, "")

	assert.ErrorIs(t, err, pipeline.ErrInvalidStage)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
