package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteconnections/backend/internal/domain/model"
)

var ErrIntroductionNotFound = errors.New("introduction not found")

type IntroductionRepo struct {
	pool *pgxpool.Pool
}

func NewIntroductionRepo(pool *pgxpool.Pool) *IntroductionRepo {
	return &IntroductionRepo{pool: pool}
}

// GetOrCreate returns the introduction for the pair, creating it on first
// contact. The pair is stored canonically (smaller id first) so the unique
// key covers both orderings.
func (r *IntroductionRepo) GetOrCreate(ctx context.Context, userA, userB int64) (model.Introduction, error) {
	if r.pool == nil {
		return model.Introduction{}, fmt.Errorf("postgres pool is nil")
	}
	if userA <= 0 || userB <= 0 || userA == userB {
		return model.Introduction{}, fmt.Errorf("invalid introduction pair")
	}

	a, b := userA, userB
	if a > b {
		a, b = b, a
	}

	var intro model.Introduction
	err := r.pool.QueryRow(ctx, `
INSERT INTO introductions (participant_a, participant_b, created_at, last_interaction)
VALUES ($1, $2, NOW(), NOW())
ON CONFLICT (participant_a, participant_b) DO UPDATE SET
	last_interaction = introductions.last_interaction
RETURNING id, participant_a, participant_b, last_message_id, created_at, last_interaction
`, a, b).Scan(
		&intro.ID,
		&intro.ParticipantA,
		&intro.ParticipantB,
		&intro.LastMessageID,
		&intro.CreatedAt,
		&intro.LastInteraction,
	)
	if err != nil {
		return model.Introduction{}, fmt.Errorf("get or create introduction: %w", err)
	}

	return intro, nil
}

func (r *IntroductionRepo) GetByID(ctx context.Context, id int64) (model.Introduction, error) {
	if r.pool == nil {
		return model.Introduction{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Introduction{}, fmt.Errorf("invalid introduction id")
	}

	var intro model.Introduction
	err := r.pool.QueryRow(ctx, `
SELECT id, participant_a, participant_b, last_message_id, created_at, last_interaction
FROM introductions
WHERE id = $1
`, id).Scan(
		&intro.ID,
		&intro.ParticipantA,
		&intro.ParticipantB,
		&intro.LastMessageID,
		&intro.CreatedAt,
		&intro.LastInteraction,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Introduction{}, ErrIntroductionNotFound
		}
		return model.Introduction{}, fmt.Errorf("get introduction: %w", err)
	}

	return intro, nil
}

// ListForUser returns the user's introductions, most recent interaction
// first.
func (r *IntroductionRepo) ListForUser(ctx context.Context, userID int64) ([]model.Introduction, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return []model.Introduction{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, participant_a, participant_b, last_message_id, created_at, last_interaction
FROM introductions
WHERE participant_a = $1 OR participant_b = $1
ORDER BY last_interaction DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list introductions: %w", err)
	}
	defer rows.Close()

	intros := make([]model.Introduction, 0)
	for rows.Next() {
		var intro model.Introduction
		if err := rows.Scan(
			&intro.ID,
			&intro.ParticipantA,
			&intro.ParticipantB,
			&intro.LastMessageID,
			&intro.CreatedAt,
			&intro.LastInteraction,
		); err != nil {
			return nil, fmt.Errorf("scan introduction: %w", err)
		}
		intros = append(intros, intro)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate introductions: %w", err)
	}

	return intros, nil
}
