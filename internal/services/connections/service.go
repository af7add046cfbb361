package connections

import (
	"context"
	"errors"
	"fmt"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrTargetNotFound = errors.New("target user not found")
	ErrSelfConnection = errors.New("cannot connect to yourself")
)

type ConnectionStore interface {
	Add(ctx context.Context, ownerID, targetID int64, kind enums.ConnectionKind) (bool, error)
	ListTargets(ctx context.Context, ownerID int64, kind enums.ConnectionKind) ([]model.User, error)
}

type UserStore interface {
	FindByID(ctx context.Context, userID int64) (model.User, error)
}

type Service struct {
	connections ConnectionStore
	users       UserStore
}

// Result reports whether the connection was newly added; repeating the
// action is harmless and reports Added=false.
type Result struct {
	Added bool   `json:"added"`
	Kind  string `json:"kind"`
}

func NewService(connections ConnectionStore, users UserStore) *Service {
	return &Service{connections: connections, users: users}
}

func (s *Service) Save(ctx context.Context, ownerID, targetID int64) (Result, error) {
	return s.add(ctx, ownerID, targetID, enums.ConnectionKindSaved)
}

func (s *Service) Restrict(ctx context.Context, ownerID, targetID int64) (Result, error) {
	return s.add(ctx, ownerID, targetID, enums.ConnectionKindRestricted)
}

func (s *Service) ListSaved(ctx context.Context, ownerID int64) ([]model.User, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}
	if s.connections == nil {
		return nil, fmt.Errorf("connection store is nil")
	}

	users, err := s.connections.ListTargets(ctx, ownerID, enums.ConnectionKindSaved)
	if err != nil {
		return nil, fmt.Errorf("list saved connections: %w", err)
	}

	return users, nil
}

func (s *Service) add(ctx context.Context, ownerID, targetID int64, kind enums.ConnectionKind) (Result, error) {
	if ownerID <= 0 || targetID <= 0 {
		return Result{}, fmt.Errorf("invalid connection pair: %w", ErrValidation)
	}
	if ownerID == targetID {
		return Result{}, ErrSelfConnection
	}
	if s.connections == nil || s.users == nil {
		return Result{}, fmt.Errorf("connection service is not fully wired")
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return Result{}, ErrTargetNotFound
		}
		return Result{}, fmt.Errorf("resolve target user: %w", err)
	}

	added, err := s.connections.Add(ctx, ownerID, targetID, kind)
	if err != nil {
		return Result{}, fmt.Errorf("add %s connection: %w", kind, err)
	}

	return Result{Added: added, Kind: string(kind)}, nil
}
