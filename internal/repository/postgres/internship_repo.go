package postgres

import (
	"context"
	"errors"

	"simhire-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type internshipRepo struct {
	db *pgxpool.Pool
}

func NewInternshipRepository(db *pgxpool.Pool) domain.InternshipRepository {
	return &internshipRepo{db: db}
}

const internshipSelect = `
	SELECT
		i.id, i.company_id, COALESCE(u.company_name, u.name, 'Unknown Company'),
		i.position, i.department, i.description, i.duration_months,
		i.location_mode, i.location, i.stipend_min, i.stipend_max, i.currency,
		i.requirements, i.skills, i.benefits, i.quota, i.status,
		(SELECT COUNT(*) FROM internship_applications a WHERE a.internship_id = i.id) AS application_count,
		i.created_at, i.updated_at
	FROM internships i
	LEFT JOIN users u ON i.company_id = u.id`

func scanInternship(row pgx.Row) (*domain.Internship, error) {
	var in domain.Internship
	err := row.Scan(
		&in.ID, &in.CompanyID, &in.CompanyName,
		&in.Position, &in.Department, &in.Description, &in.DurationMonths,
		&in.LocationMode, &in.Location, &in.Stipend.Min, &in.Stipend.Max, &in.Stipend.Currency,
		pq.Array(&in.Requirements), pq.Array(&in.Skills), pq.Array(&in.Benefits), &in.Quota, &in.Status,
		&in.ApplicationCount,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *internshipRepo) Create(ctx context.Context, in *domain.Internship) error {
	query := `INSERT INTO internships (company_id, position, department, description, duration_months, location_mode, location,
              stipend_min, stipend_max, currency, requirements, skills, benefits, quota, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	return r.db.QueryRow(ctx, query,
		in.CompanyID, in.Position, in.Department, in.Description, in.DurationMonths, in.LocationMode, in.Location,
		in.Stipend.Min, in.Stipend.Max, in.Stipend.Currency,
		pq.Array(in.Requirements), pq.Array(in.Skills), pq.Array(in.Benefits), in.Quota, in.Status,
		in.CreatedAt, in.UpdatedAt,
	).Scan(&in.ID)
}

func (r *internshipRepo) GetByID(ctx context.Context, id string) (*domain.Internship, error) {
	in, err := scanInternship(r.db.QueryRow(ctx, internshipSelect+` WHERE i.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return in, err
}

func (r *internshipRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.Internship, int64, error) {
	query := internshipSelect + ` WHERE ($1 = '' OR i.status = $1) ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`
	items, err := r.list(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM internships WHERE ($1 = '' OR status = $1)`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *internshipRepo) FetchByCompanyID(ctx context.Context, companyID string, limit, offset int) ([]domain.Internship, int64, error) {
	query := internshipSelect + ` WHERE i.company_id = $1 ORDER BY i.created_at DESC LIMIT $2 OFFSET $3`
	items, err := r.list(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM internships WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *internshipRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Internship, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Internship
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *in)
	}
	return items, rows.Err()
}

func (r *internshipRepo) Update(ctx context.Context, in *domain.Internship) error {
	query := `UPDATE internships SET
		position = $2,
		department = $3,
		description = $4,
		duration_months = $5,
		location_mode = $6,
		location = $7,
		stipend_min = $8,
		stipend_max = $9,
		currency = $10,
		requirements = $11,
		skills = $12,
		benefits = $13,
		quota = $14,
		status = $15,
		updated_at = $16
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		in.ID, in.Position, in.Department, in.Description, in.DurationMonths, in.LocationMode, in.Location,
		in.Stipend.Min, in.Stipend.Max, in.Stipend.Currency,
		pq.Array(in.Requirements), pq.Array(in.Skills), pq.Array(in.Benefits), in.Quota, in.Status,
		in.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *internshipRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
