package client

import (
	"context"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"
)

var (
	_ pipeline.StatusWriter = JobApplicationWriter{}
	_ pipeline.StatusWriter = InternshipApplicationWriter{}
)

// JobApplicationWriter sends job application stage changes through a Client.
type JobApplicationWriter struct {
	Client *Client
}

func (w JobApplicationWriter) UpdateStatus(ctx context.Context, applicationID string, change domain.StatusChange) error {
	_, err := w.Client.UpdateApplicationStatus(ctx, applicationID, change)
	return err
}

// InternshipApplicationWriter sends internship application stage changes through a Client.
type InternshipApplicationWriter struct {
	Client *Client
}

func (w InternshipApplicationWriter) UpdateStatus(ctx context.Context, applicationID string, change domain.StatusChange) error {
	_, err := w.Client.UpdateInternshipApplicationStatus(ctx, applicationID, change)
	return err
}

// CompanyApplicationsLoader reads the caller's job applicants for a pipeline.Snapshot.
func CompanyApplicationsLoader(c *Client, f domain.ApplicationFilter) pipeline.Loader[domain.Application] {
	return func(ctx context.Context) ([]domain.Application, error) {
		env, err := c.CompanyApplications(ctx, f)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	}
}

// CompanyInternshipApplicationsLoader reads the caller's internship applicants for a pipeline.Snapshot.
func CompanyInternshipApplicationsLoader(c *Client, f domain.ApplicationFilter) pipeline.Loader[domain.InternshipApplication] {
	return func(ctx context.Context) ([]domain.InternshipApplication, error) {
		env, err := c.CompanyInternshipApplications(ctx, f)
		if err != nil {
			return nil, err
		}
		return env.Data, nil
	}
}
