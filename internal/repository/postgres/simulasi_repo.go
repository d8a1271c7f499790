package postgres

import (
	"context"
	"errors"

	"simhire-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type simulasiRepo struct {
	db *pgxpool.Pool
}

func NewSimulasiRepository(db *pgxpool.Pool) domain.SimulasiRepository {
	return &simulasiRepo{db: db}
}

const simulasiColumns = `
	r.id, r.user_id, COALESCE(u.name, ''), r.category_id, r.total_score, r.max_score, r.percentage,
	r.technical, r.creativity, r.efficiency, r.communication,
	r.badge, r.certificate_id, r.time_spent_seconds, r.completed_at`

func scanSimulasi(row pgx.Row) (*domain.SimulasiResult, error) {
	var res domain.SimulasiResult
	err := row.Scan(
		&res.ID, &res.UserID, &res.UserName, &res.CategoryID, &res.TotalScore, &res.MaxScore, &res.Percentage,
		&res.Breakdown.Technical, &res.Breakdown.Creativity, &res.Breakdown.Efficiency, &res.Breakdown.Communication,
		&res.Badge, &res.CertificateID, &res.TimeSpentSeconds, &res.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *simulasiRepo) Create(ctx context.Context, res *domain.SimulasiResult) error {
	query := `
		INSERT INTO simulasi_results (user_id, category_id, total_score, max_score, percentage,
			technical, creativity, efficiency, communication, badge, certificate_id, time_spent_seconds, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	return r.db.QueryRow(ctx, query,
		res.UserID, res.CategoryID, res.TotalScore, res.MaxScore, res.Percentage,
		res.Breakdown.Technical, res.Breakdown.Creativity, res.Breakdown.Efficiency, res.Breakdown.Communication,
		res.Badge, res.CertificateID, res.TimeSpentSeconds, res.CompletedAt,
	).Scan(&res.ID)
}

func (r *simulasiRepo) GetByID(ctx context.Context, id string) (*domain.SimulasiResult, error) {
	query := `SELECT ` + simulasiColumns + ` FROM simulasi_results r LEFT JOIN users u ON r.user_id = u.id WHERE r.id = $1`
	res, err := scanSimulasi(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return res, err
}

func (r *simulasiRepo) GetByUserID(ctx context.Context, userID string) ([]domain.SimulasiResult, error) {
	query := `SELECT ` + simulasiColumns + ` FROM simulasi_results r LEFT JOIN users u ON r.user_id = u.id
		WHERE r.user_id = $1 ORDER BY r.completed_at DESC`
	return r.list(ctx, query, userID)
}

// BestByCategory keeps one row per user: the highest percentage, earliest on ties.
// Ranking order is applied by the caller.
func (r *simulasiRepo) BestByCategory(ctx context.Context, categoryID string) ([]domain.SimulasiResult, error) {
	query := `
		SELECT ` + simulasiColumns + `
		FROM (
			SELECT DISTINCT ON (user_id) *
			FROM simulasi_results
			WHERE category_id = $1
			ORDER BY user_id, percentage DESC, completed_at ASC
		) r
		LEFT JOIN users u ON r.user_id = u.id`
	return r.list(ctx, query, categoryID)
}

func (r *simulasiRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category_id FROM simulasi_results ORDER BY category_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *simulasiRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.SimulasiResult, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SimulasiResult
	for rows.Next() {
		res, err := scanSimulasi(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}
