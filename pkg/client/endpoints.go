package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"simhire-backend/internal/domain"
)

func pageQuery(page domain.Page) url.Values {
	q := url.Values{}
	if page.Page > 0 {
		q.Set("page", strconv.Itoa(page.Page))
	}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	return q
}

// filterQuery encodes f; postingKey is "jobId" or "internshipId".
func filterQuery(f domain.ApplicationFilter, postingKey string) url.Values {
	q := url.Values{}
	if f.Stage != "" {
		q.Set("stage", string(f.Stage))
	}
	if f.JobID != "" {
		q.Set(postingKey, f.JobID)
	}
	if f.TextQuery != "" {
		q.Set("q", f.TextQuery)
	}
	if f.MinGPA != nil {
		q.Set("minGpa", strconv.FormatFloat(*f.MinGPA, 'f', -1, 64))
	}
	if f.University != "" {
		q.Set("university", f.University)
	}
	return q
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": {strconv.Itoa(limit)}}
}

func escape(id string) string {
	return url.PathEscape(id)
}

// Auth

// Login signs in and stores the returned token in the session.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*Envelope[domain.AuthResult], error) {
	env, err := call[domain.AuthResult](ctx, c, request{method: http.MethodPost, path: "/auth/login", body: req, public: true})
	if err == nil {
		c.session.SetToken(env.Data.Token)
	}
	return env, err
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*Envelope[domain.AuthResult], error) {
	env, err := call[domain.AuthResult](ctx, c, request{method: http.MethodPost, path: "/auth/register", body: req, public: true})
	if err == nil {
		c.session.SetToken(env.Data.Token)
	}
	return env, err
}

func (c *Client) Me(ctx context.Context) (*Envelope[domain.User], error) {
	return call[domain.User](ctx, c, request{method: http.MethodGet, path: "/auth/me"})
}

func (c *Client) UpdateProfile(ctx context.Context, req domain.ProfileUpdate) (*Envelope[domain.User], error) {
	return call[domain.User](ctx, c, request{method: http.MethodPut, path: "/auth/profile", body: req})
}

// Logout revokes the token server side. The session is cleared even when that fails.
func (c *Client) Logout(ctx context.Context) (*Envelope[Empty], error) {
	env, err := call[Empty](ctx, c, request{method: http.MethodPost, path: "/auth/logout"})
	c.session.Clear()
	return env, err
}

// Jobs

func (c *Client) ListJobs(ctx context.Context, page domain.Page) (*Envelope[domain.PaginatedResult[domain.Job]], error) {
	return call[domain.PaginatedResult[domain.Job]](ctx, c, request{method: http.MethodGet, path: "/jobs", query: pageQuery(page)})
}

func (c *Client) GetJob(ctx context.Context, id string) (*Envelope[domain.Job], error) {
	return call[domain.Job](ctx, c, request{method: http.MethodGet, path: "/jobs/" + escape(id)})
}

func (c *Client) MyJobs(ctx context.Context, page domain.Page) (*Envelope[domain.PaginatedResult[domain.Job]], error) {
	return call[domain.PaginatedResult[domain.Job]](ctx, c, request{method: http.MethodGet, path: "/jobs/company/my-jobs", query: pageQuery(page)})
}

func (c *Client) CreateJob(ctx context.Context, job domain.Job) (*Envelope[domain.Job], error) {
	return call[domain.Job](ctx, c, request{method: http.MethodPost, path: "/jobs", body: job})
}

func (c *Client) UpdateJob(ctx context.Context, id string, job domain.Job) (*Envelope[domain.Job], error) {
	return call[domain.Job](ctx, c, request{method: http.MethodPut, path: "/jobs/" + escape(id), body: job})
}

func (c *Client) DeleteJob(ctx context.Context, id string) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, request{method: http.MethodDelete, path: "/jobs/" + escape(id)})
}

// Job applications

func (c *Client) Apply(ctx context.Context, req domain.ApplyRequest) (*Envelope[domain.Application], error) {
	return call[domain.Application](ctx, c, request{method: http.MethodPost, path: "/applications/apply", body: req})
}

func (c *Client) MyApplications(ctx context.Context) (*Envelope[[]domain.Application], error) {
	return call[[]domain.Application](ctx, c, request{method: http.MethodGet, path: "/applications/my-applications"})
}

// CompanyApplications lists applicants across the caller's jobs, narrowed server side by f.
func (c *Client) CompanyApplications(ctx context.Context, f domain.ApplicationFilter) (*Envelope[[]domain.Application], error) {
	return call[[]domain.Application](ctx, c, request{method: http.MethodGet, path: "/applications/company", query: filterQuery(f, "jobId")})
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, change domain.StatusChange) (*Envelope[domain.Application], error) {
	return call[domain.Application](ctx, c, request{method: http.MethodPut, path: "/applications/" + escape(id) + "/status", body: change})
}

func (c *Client) WithdrawApplication(ctx context.Context, id string) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, request{method: http.MethodDelete, path: "/applications/" + escape(id) + "/withdraw"})
}

func (c *Client) ApplicationStats(ctx context.Context) (*Envelope[domain.ApplicationStats], error) {
	return call[domain.ApplicationStats](ctx, c, request{method: http.MethodGet, path: "/applications/stats"})
}

// Internships

func (c *Client) ListInternships(ctx context.Context, page domain.Page) (*Envelope[domain.PaginatedResult[domain.Internship]], error) {
	return call[domain.PaginatedResult[domain.Internship]](ctx, c, request{method: http.MethodGet, path: "/internships", query: pageQuery(page)})
}

func (c *Client) GetInternship(ctx context.Context, id string) (*Envelope[domain.Internship], error) {
	return call[domain.Internship](ctx, c, request{method: http.MethodGet, path: "/internships/" + escape(id)})
}

func (c *Client) MyInternships(ctx context.Context, page domain.Page) (*Envelope[domain.PaginatedResult[domain.Internship]], error) {
	return call[domain.PaginatedResult[domain.Internship]](ctx, c, request{method: http.MethodGet, path: "/internships/company/my-internships", query: pageQuery(page)})
}

func (c *Client) CreateInternship(ctx context.Context, in domain.Internship) (*Envelope[domain.Internship], error) {
	return call[domain.Internship](ctx, c, request{method: http.MethodPost, path: "/internships", body: in})
}

func (c *Client) UpdateInternship(ctx context.Context, id string, in domain.Internship) (*Envelope[domain.Internship], error) {
	return call[domain.Internship](ctx, c, request{method: http.MethodPut, path: "/internships/" + escape(id), body: in})
}

func (c *Client) DeleteInternship(ctx context.Context, id string) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, request{method: http.MethodDelete, path: "/internships/" + escape(id)})
}

// Internship applications

func (c *Client) ApplyInternship(ctx context.Context, req domain.InternshipApplyRequest) (*Envelope[domain.InternshipApplication], error) {
	return call[domain.InternshipApplication](ctx, c, request{method: http.MethodPost, path: "/internship-applications/apply", body: req})
}

func (c *Client) MyInternshipApplications(ctx context.Context) (*Envelope[[]domain.InternshipApplication], error) {
	return call[[]domain.InternshipApplication](ctx, c, request{method: http.MethodGet, path: "/internship-applications/my-applications"})
}

func (c *Client) CompanyInternshipApplications(ctx context.Context, f domain.ApplicationFilter) (*Envelope[[]domain.InternshipApplication], error) {
	return call[[]domain.InternshipApplication](ctx, c, request{method: http.MethodGet, path: "/internship-applications/company", query: filterQuery(f, "internshipId")})
}

func (c *Client) UpdateInternshipApplicationStatus(ctx context.Context, id string, change domain.StatusChange) (*Envelope[domain.InternshipApplication], error) {
	return call[domain.InternshipApplication](ctx, c, request{method: http.MethodPut, path: "/internship-applications/" + escape(id) + "/status", body: change})
}

func (c *Client) WithdrawInternshipApplication(ctx context.Context, id string) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, request{method: http.MethodDelete, path: "/internship-applications/" + escape(id) + "/withdraw"})
}

func (c *Client) InternshipStats(ctx context.Context) (*Envelope[domain.InternshipStats], error) {
	return call[domain.InternshipStats](ctx, c, request{method: http.MethodGet, path: "/internship-applications/company/stats"})
}

// ExportInternshipApplications downloads the filtered applicants as an xlsx workbook.
func (c *Client) ExportInternshipApplications(ctx context.Context, f domain.ApplicationFilter) ([]byte, string, error) {
	return c.download(ctx, request{method: http.MethodGet, path: "/internship-applications/company/export", query: filterQuery(f, "internshipId")})
}

// Simulasi

func (c *Client) SubmitSimulasi(ctx context.Context, req domain.SubmitRequest) (*Envelope[domain.SimulasiResult], error) {
	return call[domain.SimulasiResult](ctx, c, request{method: http.MethodPost, path: "/simulasi/submit", body: req})
}

func (c *Client) MySimulasiResults(ctx context.Context) (*Envelope[[]domain.SimulasiResult], error) {
	return call[[]domain.SimulasiResult](ctx, c, request{method: http.MethodGet, path: "/simulasi/my-results"})
}

func (c *Client) SimulasiResult(ctx context.Context, id string) (*Envelope[domain.SimulasiResult], error) {
	return call[domain.SimulasiResult](ctx, c, request{method: http.MethodGet, path: "/simulasi/result/" + escape(id)})
}

// Leaderboards returns every category's board; limit <= 0 keeps the server default.
func (c *Client) Leaderboards(ctx context.Context, limit int) (*Envelope[[]domain.Leaderboard], error) {
	return call[[]domain.Leaderboard](ctx, c, request{method: http.MethodGet, path: "/simulasi/leaderboards", query: limitQuery(limit)})
}

func (c *Client) Leaderboard(ctx context.Context, categoryID string, limit int) (*Envelope[domain.Leaderboard], error) {
	return call[domain.Leaderboard](ctx, c, request{method: http.MethodGet, path: "/simulasi/leaderboard/" + escape(categoryID), query: limitQuery(limit)})
}

func (c *Client) ExportLeaderboard(ctx context.Context, categoryID string) ([]byte, string, error) {
	return c.download(ctx, request{method: http.MethodGet, path: "/simulasi/leaderboard/" + escape(categoryID) + "/export"})
}

// Health

func (c *Client) Health(ctx context.Context) (*Envelope[map[string]string], error) {
	return call[map[string]string](ctx, c, request{method: http.MethodGet, path: "/health"})
}
