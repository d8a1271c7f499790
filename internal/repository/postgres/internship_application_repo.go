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

type internshipApplicationRepo struct {
	db *pgxpool.Pool
}

func NewInternshipApplicationRepository(db *pgxpool.Pool) domain.InternshipApplicationRepository {
	return &internshipApplicationRepo{db: db}
}

const internshipApplicationSelect = `
	SELECT
		a.id, a.internship_id, a.candidate_id, a.candidate_name, a.candidate_email, a.candidate_skills,
		a.stage, a.applied_at, a.notes, a.score, a.score_overall,
		a.university, a.major, a.semester, a.gpa, a.cover_letter, a.updated_at,
		i.position, i.company_id
	FROM internship_applications a
	LEFT JOIN internships i ON a.internship_id = i.id`

func scanInternshipApplication(row pgx.Row) (*domain.InternshipApplication, error) {
	var app domain.InternshipApplication
	err := row.Scan(
		&app.ID, &app.InternshipID, &app.CandidateID, &app.CandidateName, &app.CandidateEmail, pq.Array(&app.CandidateSkills),
		&app.Stage, &app.AppliedDate, &app.Notes, &app.Score, &app.ScoreOverall,
		&app.University, &app.Major, &app.Semester, &app.GPAValue, &app.CoverLetter, &app.UpdatedAt,
		&app.Position, &app.CompanyID,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *internshipApplicationRepo) Create(ctx context.Context, app *domain.InternshipApplication) error {
	query := `
		INSERT INTO internship_applications (internship_id, candidate_id, candidate_name, candidate_email, candidate_skills,
			stage, university, major, semester, gpa, cover_letter, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	now := time.Now()
	app.AppliedDate = now
	app.UpdatedAt = now
	if app.Stage == "" {
		app.Stage = domain.StageApplied
	}

	return r.db.QueryRow(ctx, query,
		app.InternshipID, app.CandidateID, app.CandidateName, app.CandidateEmail, pq.Array(app.CandidateSkills),
		app.Stage, app.University, app.Major, app.Semester, app.GPAValue, app.CoverLetter,
		app.AppliedDate, app.UpdatedAt,
	).Scan(&app.ID)
}

func (r *internshipApplicationRepo) GetByID(ctx context.Context, id string) (*domain.InternshipApplication, error) {
	app, err := scanInternshipApplication(r.db.QueryRow(ctx, internshipApplicationSelect+` WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return app, err
}

func (r *internshipApplicationRepo) GetByCandidateID(ctx context.Context, candidateID string) ([]domain.InternshipApplication, error) {
	return r.list(ctx, internshipApplicationSelect+` WHERE a.candidate_id = $1 ORDER BY a.applied_at DESC`, candidateID)
}

func (r *internshipApplicationRepo) GetByCompanyID(ctx context.Context, companyID string) ([]domain.InternshipApplication, error) {
	return r.list(ctx, internshipApplicationSelect+` WHERE i.company_id = $1 ORDER BY a.applied_at DESC`, companyID)
}

func (r *internshipApplicationRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.InternshipApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.InternshipApplication
	for rows.Next() {
		app, err := scanInternshipApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *internshipApplicationRepo) CheckExists(ctx context.Context, internshipID, candidateID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM internship_applications WHERE internship_id = $1 AND candidate_id = $2)`,
		internshipID, candidateID,
	).Scan(&exists)
	return exists, err
}

func (r *internshipApplicationRepo) UpdateStatus(ctx context.Context, id string, change domain.StatusChange) (*domain.InternshipApplication, error) {
	query := `
		UPDATE internship_applications SET
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

func (r *internshipApplicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM internship_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
