package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ModerationRepo struct {
	pool *pgxpool.Pool
}

func NewModerationRepo(pool *pgxpool.Pool) *ModerationRepo {
	return &ModerationRepo{pool: pool}
}

// ReviewEntry is one row of the curator review queue.
type ReviewEntry struct {
	UserID        int64      `json:"user_id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	PreferredName string     `json:"preferred_name"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastActive    *time.Time `json:"last_active"`
}

// ListUnderReview returns portfolios awaiting a curator decision, oldest
// submission first.
func (r *ModerationRepo) ListUnderReview(ctx context.Context, limit, offset int) ([]ReviewEntry, error) {
	if r.pool == nil {
		return []ReviewEntry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
SELECT p.user_id, u.username, u.email, COALESCE(p.preferred_name, ''), p.updated_at, p.last_active
FROM profiles p
JOIN users u ON u.id = p.user_id
WHERE p.status = 'under_review'
ORDER BY p.updated_at ASC, p.user_id ASC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list portfolios under review: %w", err)
	}
	defer rows.Close()

	entries := make([]ReviewEntry, 0)
	for rows.Next() {
		var e ReviewEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Email, &e.PreferredName, &e.UpdatedAt, &e.LastActive); err != nil {
			return nil, fmt.Errorf("scan review entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review entries: %w", err)
	}

	return entries, nil
}

func (r *ModerationRepo) CountUnderReview(ctx context.Context) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	var total int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM profiles WHERE status = 'under_review'
`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count portfolios under review: %w", err)
	}

	return total, nil
}
