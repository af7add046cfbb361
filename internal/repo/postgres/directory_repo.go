package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DirectoryRepo struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepo(pool *pgxpool.Pool) *DirectoryRepo {
	return &DirectoryRepo{pool: pool}
}

type DirectoryQuery struct {
	ViewerUserID int64
	Location     string
	Tier         string
	Limit        int
	Offset       int
}

type DirectoryCard struct {
	UserID          int64
	Username        string
	PreferredName   string
	Gender          string
	PrimaryLocation string
	EngagementTier  string
	DateOfBirth     *time.Time
	ViewCount       int64
	LastActive      *time.Time
}

// ListVisible returns one page of member-visible portfolios: approved and
// published, excluding the viewer and anyone the viewer has restricted.
// Ordering is last_active descending with never-active profiles last.
func (r *DirectoryRepo) ListVisible(ctx context.Context, q DirectoryQuery) ([]DirectoryCard, error) {
	if q.ViewerUserID <= 0 {
		return nil, fmt.Errorf("invalid viewer id")
	}
	if q.Limit <= 0 {
		q.Limit = 12
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if r.pool == nil {
		return []DirectoryCard{}, nil
	}

	location := strings.TrimSpace(q.Location)
	tier := strings.TrimSpace(q.Tier)
	applyLocation := location != ""
	applyTier := tier == "premium" || tier == "exclusive"

	rows, err := r.pool.Query(ctx, `
SELECT
	p.user_id,
	u.username,
	COALESCE(p.preferred_name, ''),
	COALESCE(p.gender, ''),
	COALESCE(p.primary_location, ''),
	p.engagement_tier,
	p.date_of_birth,
	p.view_count,
	p.last_active
FROM profiles p
JOIN users u ON u.id = p.user_id
WHERE
	p.status = 'approved'
	AND p.public_portfolio = TRUE
	AND p.user_id <> $1
	AND ($2::boolean = FALSE OR p.primary_location ILIKE '%' || $3 || '%')
	AND ($4::boolean = FALSE OR p.engagement_tier = $5)
	AND NOT EXISTS (
		SELECT 1
		FROM connections c
		WHERE c.owner_user_id = $1
			AND c.target_user_id = p.user_id
			AND c.kind = 'restricted'
	)
ORDER BY p.last_active DESC NULLS LAST, p.user_id DESC
LIMIT $6 OFFSET $7
`,
		q.ViewerUserID,
		applyLocation,
		location,
		applyTier,
		tier,
		q.Limit,
		q.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list visible portfolios: %w", err)
	}
	defer rows.Close()

	cards := make([]DirectoryCard, 0, q.Limit)
	for rows.Next() {
		var card DirectoryCard
		if err := rows.Scan(
			&card.UserID,
			&card.Username,
			&card.PreferredName,
			&card.Gender,
			&card.PrimaryLocation,
			&card.EngagementTier,
			&card.DateOfBirth,
			&card.ViewCount,
			&card.LastActive,
		); err != nil {
			return nil, fmt.Errorf("scan directory card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate directory cards: %w", err)
	}

	return cards, nil
}

// CountVisible returns the total matching the same predicate as ListVisible,
// used for page arithmetic.
func (r *DirectoryRepo) CountVisible(ctx context.Context, q DirectoryQuery) (int, error) {
	if q.ViewerUserID <= 0 {
		return 0, fmt.Errorf("invalid viewer id")
	}
	if r.pool == nil {
		return 0, nil
	}

	location := strings.TrimSpace(q.Location)
	tier := strings.TrimSpace(q.Tier)
	applyLocation := location != ""
	applyTier := tier == "premium" || tier == "exclusive"

	var total int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM profiles p
WHERE
	p.status = 'approved'
	AND p.public_portfolio = TRUE
	AND p.user_id <> $1
	AND ($2::boolean = FALSE OR p.primary_location ILIKE '%' || $3 || '%')
	AND ($4::boolean = FALSE OR p.engagement_tier = $5)
	AND NOT EXISTS (
		SELECT 1
		FROM connections c
		WHERE c.owner_user_id = $1
			AND c.target_user_id = p.user_id
			AND c.kind = 'restricted'
	)
`,
		q.ViewerUserID,
		applyLocation,
		location,
		applyTier,
		tier,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count visible portfolios: %w", err)
	}

	return total, nil
}
