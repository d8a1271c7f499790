package postgres

import (
	"context"
	"errors"
	"time"

	"simhire-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationSelect = `
	SELECT
		a.id, a.job_id, a.candidate_id, a.candidate_name, a.candidate_email, a.candidate_skills,
		a.stage, a.applied_at, a.notes, a.score, a.score_overall, a.cover_letter, a.updated_at,
		j.title, j.company_id
	FROM applications a
	LEFT JOIN jobs j ON a.job_id = j.id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.CandidateName, &app.CandidateEmail, pq.Array(&app.CandidateSkills),
		&app.Stage, &app.AppliedDate, &app.Notes, &app.Score, &app.ScoreOverall, &app.CoverLetter, &app.UpdatedAt,
		&app.JobTitle, &app.CompanyID,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, candidate_id, candidate_name, candidate_email, candidate_skills, stage, cover_letter, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	now := time.Now()
	app.AppliedDate = now
	app.UpdatedAt = now
	if app.Stage == "" {
		app.Stage = domain.StageApplied
	}

	return r.db.QueryRow(ctx, query,
		app.JobID,
		app.CandidateID,
		app.CandidateName,
		app.CandidateEmail,
		pq.Array(app.CandidateSkills),
		app.Stage,
		app.CoverLetter,
		app.AppliedDate,
		app.UpdatedAt,
	).Scan(&app.ID)
}

// GetByID retrieves an application with its job title and owning company
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return app, err
}

// GetByCandidateID retrieves all applications by a candidate, newest first
func (r *applicationRepo) GetByCandidateID(ctx context.Context, candidateID string) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE a.candidate_id = $1 ORDER BY a.applied_at DESC`, candidateID)
}

// GetByCompanyID retrieves every application to the company's jobs, newest first
func (r *applicationRepo) GetByCompanyID(ctx context.Context, companyID string) ([]domain.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE j.company_id = $1 ORDER BY a.applied_at DESC`, companyID)
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// CheckExists checks if a candidate has already applied to a job
func (r *applicationRepo) CheckExists(ctx context.Context, jobID, candidateID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	return exists, err
}

// UpdateStatus moves the application to change.Stage. A non-empty note is appended
// on its own line; score is only overwritten when supplied.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.Application, error) {
	query := `
		UPDATE applications SET
			stage = $2,
			notes = CASE
				WHEN $3 = '' THEN notes
				WHEN notes IS NULL OR notes = '' THEN $3
				ELSE notes || E'\n' || $3
			END,
			score = COALESCE($4, score),
			updated_at = $5
		WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, change.Stage, change.Note, change.Score, time.Now())
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
