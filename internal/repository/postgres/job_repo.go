package postgres

import (
	"context"
	"errors"

	"simhire-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// jobSelect joins the owning company's name and counts applications
const jobSelect = `
	SELECT
		j.id, j.company_id, COALESCE(u.company_name, u.name, 'Unknown Company'),
		j.title, j.department, j.description, j.employment_type, j.experience_level,
		j.location_mode, j.location, j.salary_min, j.salary_max, j.currency,
		j.requirements, j.skills, j.benefits, j.status,
		(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count,
		j.created_at, j.updated_at
	FROM jobs j
	LEFT JOIN users u ON j.company_id = u.id`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.CompanyID, &job.CompanyName,
		&job.Title, &job.Department, &job.Description, &job.EmploymentType, &job.ExperienceLevel,
		&job.LocationMode, &job.Location, &job.Salary.Min, &job.Salary.Max, &job.Salary.Currency,
		pq.Array(&job.Requirements), pq.Array(&job.Skills), pq.Array(&job.Benefits), &job.Status,
		&job.ApplicationCount,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (company_id, title, department, description, employment_type, experience_level,
              location_mode, location, salary_min, salary_max, currency, requirements, skills, benefits, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.CompanyID, job.Title, job.Department, job.Description, job.EmploymentType, job.ExperienceLevel,
		job.LocationMode, job.Location, job.Salary.Min, job.Salary.Max, job.Salary.Currency,
		pq.Array(job.Requirements), pq.Array(job.Skills), pq.Array(job.Benefits), job.Status,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return job, err
}

// Fetch lists jobs newest first. An empty status lists every job.
func (r *jobRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.Job, int64, error) {
	query := jobSelect + ` WHERE ($1 = '' OR j.status = $1) ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`
	jobs, err := r.list(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE ($1 = '' OR status = $1)`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FetchByCompanyID retrieves jobs for a specific company (employer's jobs only)
func (r *jobRepo) FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]domain.Job, int64, error) {
	query := jobSelect + ` WHERE j.company_id = $1 ORDER BY j.created_at DESC LIMIT $2 OFFSET $3`
	jobs, err := r.list(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		department = $3,
		description = $4,
		employment_type = $5,
		experience_level = $6,
		location_mode = $7,
		location = $8,
		salary_min = $9,
		salary_max = $10,
		currency = $11,
		requirements = $12,
		skills = $13,
		benefits = $14,
		status = $15,
		updated_at = $16
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Department, job.Description, job.EmploymentType, job.ExperienceLevel,
		job.LocationMode, job.Location, job.Salary.Min, job.Salary.Max, job.Salary.Currency,
		pq.Array(job.Requirements), pq.Array(job.Skills), pq.Array(job.Benefits), job.Status,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
