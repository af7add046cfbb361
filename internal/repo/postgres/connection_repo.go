package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
)

type ConnectionRepo struct {
	pool *pgxpool.Pool
}

func NewConnectionRepo(pool *pgxpool.Pool) *ConnectionRepo {
	return &ConnectionRepo{pool: pool}
}

// Add inserts the (owner, target, kind) row if absent. The unique key makes
// the operation idempotent; the return value reports whether a new row was
// written.
func (r *ConnectionRepo) Add(ctx context.Context, ownerID, targetID int64, kind enums.ConnectionKind) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}
	if ownerID <= 0 || targetID <= 0 || !kind.IsValid() {
		return false, fmt.Errorf("invalid connection payload")
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO connections (owner_user_id, target_user_id, kind, created_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (owner_user_id, target_user_id, kind) DO NOTHING
`, ownerID, targetID, string(kind))
	if err != nil {
		return false, fmt.Errorf("add connection: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListTargets returns the users in the owner's saved or restricted set,
// most recently added first.
func (r *ConnectionRepo) ListTargets(ctx context.Context, ownerID int64, kind enums.ConnectionKind) ([]model.User, error) {
	if ownerID <= 0 || !kind.IsValid() {
		return nil, fmt.Errorf("invalid connection list payload")
	}
	if r.pool == nil {
		return []model.User{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT u.id, u.username, u.email, u.role, u.created_at
FROM connections c
JOIN users u ON u.id = c.target_user_id
WHERE c.owner_user_id = $1 AND c.kind = $2
ORDER BY c.created_at DESC
`, ownerID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list connection targets: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan connection target: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connection targets: %w", err)
	}

	return users, nil
}
