package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eliteconnections/backend/internal/domain/model"
	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	registersvc "github.com/eliteconnections/backend/internal/services/register"
)

var ErrUserNotFound = errors.New("user not found")

const uniqueViolation = "23505"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// CreateWithProfile inserts the identity and its empty draft profile in one
// transaction so registration never leaves a user without a profile row.
func (r *UserRepo) CreateWithProfile(ctx context.Context, username, email, passwordHash string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || passwordHash == "" {
		return model.User{}, fmt.Errorf("invalid registration payload")
	}

	var user model.User
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
INSERT INTO users (username, email, password_hash, role, created_at)
VALUES ($1, $2, $3, 'member', NOW())
RETURNING id, username, email, role, created_at
`, username, email, passwordHash).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert user: %w", translateUniqueViolation(err))
		}

		if _, err := tx.Exec(ctx, `
INSERT INTO profiles (user_id, status, public_portfolio, engagement_tier, created_at, updated_at)
VALUES ($1, 'draft', FALSE, 'standard', NOW(), NOW())
`, user.ID); err != nil {
			return fmt.Errorf("insert empty profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID int64) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, username, email, role, created_at
FROM users
WHERE id = $1
`, userID).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(username) == "" {
		return model.User{}, fmt.Errorf("invalid username")
	}

	var user model.User
	err := r.pool.QueryRow(ctx, `
SELECT id, username, email, role, created_at
FROM users
WHERE username = $1
`, username).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetCredentials(ctx context.Context, username string) (authsvc.Credentials, error) {
	if r.pool == nil {
		return authsvc.Credentials{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(username) == "" {
		return authsvc.Credentials{}, authsvc.ErrInvalidCredentials
	}

	var creds authsvc.Credentials
	err := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, role, COALESCE(totp_secret, '')
FROM users
WHERE username = $1
`, username).Scan(&creds.UserID, &creds.Username, &creds.PasswordHash, &creds.Role, &creds.TOTPSecret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authsvc.Credentials{}, authsvc.ErrInvalidCredentials
		}
		return authsvc.Credentials{}, fmt.Errorf("get credentials: %w", err)
	}

	return creds, nil
}

func (r *UserRepo) SetTOTPSecret(ctx context.Context, userID int64, secret string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE users
SET totp_secret = NULLIF($2, '')
WHERE id = $1
`, userID, secret)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return registersvc.ErrEmailTaken
	case strings.Contains(pgErr.ConstraintName, "username"):
		return registersvc.ErrUsernameTaken
	}
	return err
}
