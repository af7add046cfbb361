package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteconnections/backend/internal/domain/model"
)

var ErrExperienceNotFound = errors.New("experience not found")

type ExperienceRepo struct {
	pool *pgxpool.Pool
}

func NewExperienceRepo(pool *pgxpool.Pool) *ExperienceRepo {
	return &ExperienceRepo{pool: pool}
}

func (r *ExperienceRepo) Create(ctx context.Context, exp model.Experience) (model.Experience, error) {
	if r.pool == nil {
		return model.Experience{}, fmt.Errorf("postgres pool is nil")
	}
	if exp.HostUserID <= 0 || exp.Title == "" {
		return model.Experience{}, fmt.Errorf("invalid experience payload")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO experiences (
	host_user_id,
	title,
	venue,
	experience_date,
	commencement,
	conclusion,
	description,
	consideration,
	consideration_type,
	is_active,
	listed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW())
RETURNING id, is_active, listed_at
`,
		exp.HostUserID,
		exp.Title,
		exp.Venue,
		exp.ExperienceDate,
		exp.Commencement,
		exp.Conclusion,
		exp.Description,
		exp.Consideration,
		string(exp.ConsiderationType),
	).Scan(&exp.ID, &exp.IsActive, &exp.ListedAt)
	if err != nil {
		return model.Experience{}, fmt.Errorf("insert experience: %w", err)
	}

	return exp, nil
}

func (r *ExperienceRepo) GetByID(ctx context.Context, id int64) (model.Experience, error) {
	if r.pool == nil {
		return model.Experience{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Experience{}, fmt.Errorf("invalid experience id")
	}

	var exp model.Experience
	err := r.pool.QueryRow(ctx, `
SELECT id, host_user_id, title, venue, experience_date, commencement, conclusion,
	description, consideration, consideration_type, is_active, listed_at
FROM experiences
WHERE id = $1
`, id).Scan(
		&exp.ID,
		&exp.HostUserID,
		&exp.Title,
		&exp.Venue,
		&exp.ExperienceDate,
		&exp.Commencement,
		&exp.Conclusion,
		&exp.Description,
		&exp.Consideration,
		&exp.ConsiderationType,
		&exp.IsActive,
		&exp.ListedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Experience{}, ErrExperienceNotFound
		}
		return model.Experience{}, fmt.Errorf("get experience: %w", err)
	}

	return exp, nil
}

// ListActive returns active listings, soonest experience date first.
func (r *ExperienceRepo) ListActive(ctx context.Context, limit int) ([]model.Experience, error) {
	if limit <= 0 {
		limit = 50
	}
	if r.pool == nil {
		return []model.Experience{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, host_user_id, title, venue, experience_date, commencement, conclusion,
	description, consideration, consideration_type, is_active, listed_at
FROM experiences
WHERE is_active = TRUE
ORDER BY experience_date ASC, id ASC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list active experiences: %w", err)
	}
	defer rows.Close()

	exps := make([]model.Experience, 0)
	for rows.Next() {
		var exp model.Experience
		if err := rows.Scan(
			&exp.ID,
			&exp.HostUserID,
			&exp.Title,
			&exp.Venue,
			&exp.ExperienceDate,
			&exp.Commencement,
			&exp.Conclusion,
			&exp.Description,
			&exp.Consideration,
			&exp.ConsiderationType,
			&exp.IsActive,
			&exp.ListedAt,
		); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		exps = append(exps, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experiences: %w", err)
	}

	return exps, nil
}

// Deactivate clears the active flag on the host's own listing.
func (r *ExperienceRepo) Deactivate(ctx context.Context, hostUserID, id int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}
	if hostUserID <= 0 || id <= 0 {
		return false, fmt.Errorf("invalid deactivate payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE experiences
SET is_active = FALSE
WHERE id = $1 AND host_user_id = $2 AND is_active = TRUE
`, id, hostUserID)
	if err != nil {
		return false, fmt.Errorf("deactivate experience: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
