package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteconnections/backend/internal/domain/model"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Append inserts the message and updates the introduction's last-exchange
// pointer in one transaction.
func (r *MessageRepo) Append(ctx context.Context, introductionID, senderID int64, content string) (model.Message, error) {
	if r.pool == nil {
		return model.Message{}, fmt.Errorf("postgres pool is nil")
	}
	if introductionID <= 0 || senderID <= 0 || content == "" {
		return model.Message{}, fmt.Errorf("invalid message payload")
	}

	var msg model.Message
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO messages (introduction_id, sender_id, content, is_read, exchanged_at)
VALUES ($1, $2, $3, FALSE, NOW())
RETURNING id, introduction_id, sender_id, content, is_read, exchanged_at
`, introductionID, senderID, content).Scan(
			&msg.ID,
			&msg.IntroductionID,
			&msg.SenderID,
			&msg.Content,
			&msg.IsRead,
			&msg.ExchangedAt,
		)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}

		if _, err := tx.Exec(ctx, `
UPDATE introductions
SET last_message_id = $2, last_interaction = NOW()
WHERE id = $1
`, introductionID, msg.ID); err != nil {
			return fmt.Errorf("update last exchange: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.Message{}, err
	}

	return msg, nil
}

// ListByIntroduction returns all messages of the thread in exchange order.
func (r *MessageRepo) ListByIntroduction(ctx context.Context, introductionID int64) ([]model.Message, error) {
	if introductionID <= 0 {
		return nil, fmt.Errorf("invalid introduction id")
	}
	if r.pool == nil {
		return []model.Message{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, introduction_id, sender_id, content, is_read, exchanged_at
FROM messages
WHERE introduction_id = $1
ORDER BY exchanged_at ASC, id ASC
`, introductionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]model.Message, 0)
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.IntroductionID,
			&msg.SenderID,
			&msg.Content,
			&msg.IsRead,
			&msg.ExchangedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return msgs, nil
}

// CountUnread counts messages in the thread not yet read and not authored
// by readerID.
func (r *MessageRepo) CountUnread(ctx context.Context, introductionID, readerID int64) (int, error) {
	if introductionID <= 0 || readerID <= 0 {
		return 0, fmt.Errorf("invalid unread count payload")
	}
	if r.pool == nil {
		return 0, nil
	}

	var count int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*)
FROM messages
WHERE introduction_id = $1 AND sender_id <> $2 AND is_read = FALSE
`, introductionID, readerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}

	return count, nil
}

// MarkRead flags every counterpart message in the thread as read.
func (r *MessageRepo) MarkRead(ctx context.Context, introductionID, readerID int64) (int64, error) {
	if introductionID <= 0 || readerID <= 0 {
		return 0, fmt.Errorf("invalid mark read payload")
	}
	if r.pool == nil {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE messages
SET is_read = TRUE
WHERE introduction_id = $1 AND sender_id <> $2 AND is_read = FALSE
`, introductionID, readerID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}

	return tag.RowsAffected(), nil
}
