package register

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/eliteconnections/backend/internal/domain/model"
	"github.com/eliteconnections/backend/internal/pkg/security"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already registered")
)

// ValidationError points at the offending input field. It unwraps to
// ErrValidation so callers matching the sentinel keep working.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func fieldError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

type UserCreator interface {
	CreateWithProfile(ctx context.Context, username, email, passwordHash string) (model.User, error)
}

type Service struct {
	users UserCreator
}

type Input struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

func NewService(users UserCreator) *Service {
	return &Service{users: users}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// Register validates the submission, hashes the password and creates the account
// together with its empty draft profile.
func (s *Service) Register(ctx context.Context, in Input) (model.User, error) {
	if s.users == nil {
		return model.User{}, fmt.Errorf("user store is nil")
	}

	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if !usernamePattern.MatchString(username) {
		return model.User{}, fieldError("username", "username must be 3-30 letters, digits or underscores")
	}
	if !looksLikeEmail(email) {
		return model.User{}, fieldError("email", "invalid email address")
	}
	if len(in.Password) < 8 {
		return model.User{}, fieldError("password", "password must be at least 8 characters")
	}
	if in.PasswordConfirm != in.Password {
		return model.User{}, fieldError("password_confirm", "password entries do not match")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateWithProfile(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func looksLikeEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}
