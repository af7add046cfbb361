package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	"github.com/eliteconnections/backend/internal/domain/rules"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrBadTransition     = errors.New("status transition rejected")
)

type QueueStore interface {
	ListUnderReview(ctx context.Context, limit, offset int) ([]pgrepo.ReviewEntry, error)
	CountUnderReview(ctx context.Context) (int, error)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (model.Profile, error)
	SetStatus(ctx context.Context, userID int64, status enums.PortfolioStatus) error
}

type Service struct {
	queue    QueueStore
	profiles ProfileStore
}

type Queue struct {
	Entries []pgrepo.ReviewEntry `json:"entries"`
	Total   int                  `json:"total"`
}

func NewService(queue QueueStore, profiles ProfileStore) *Service {
	return &Service{queue: queue, profiles: profiles}
}

func (s *Service) PendingQueue(ctx context.Context, limit, offset int) (Queue, error) {
	if s.queue == nil {
		return Queue{}, fmt.Errorf("queue store is nil")
	}

	total, err := s.queue.CountUnderReview(ctx)
	if err != nil {
		return Queue{}, fmt.Errorf("count review queue: %w", err)
	}
	entries, err := s.queue.ListUnderReview(ctx, limit, offset)
	if err != nil {
		return Queue{}, fmt.Errorf("list review queue: %w", err)
	}

	return Queue{Entries: entries, Total: total}, nil
}

func (s *Service) Approve(ctx context.Context, userID int64) (enums.PortfolioStatus, error) {
	return s.apply(ctx, userID, rules.EventApprove)
}

func (s *Service) Decline(ctx context.Context, userID int64) (enums.PortfolioStatus, error) {
	return s.apply(ctx, userID, rules.EventDecline)
}

func (s *Service) Suspend(ctx context.Context, userID int64) (enums.PortfolioStatus, error) {
	return s.apply(ctx, userID, rules.EventSuspend)
}

// Reinstate lifts a suspension; the portfolio returns to the review queue
// rather than straight back to the directory.
func (s *Service) Reinstate(ctx context.Context, userID int64) (enums.PortfolioStatus, error) {
	return s.apply(ctx, userID, rules.EventReinstate)
}

func (s *Service) apply(ctx context.Context, userID int64, event rules.StatusEvent) (enums.PortfolioStatus, error) {
	if userID <= 0 {
		return "", fmt.Errorf("invalid user id: %w", ErrValidation)
	}
	if s.profiles == nil {
		return "", fmt.Errorf("profile store is nil")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return "", ErrPortfolioNotFound
		}
		return "", fmt.Errorf("load portfolio: %w", err)
	}

	next, err := rules.ApplyStatusEvent(profile.Status, event)
	if err != nil {
		return "", fmt.Errorf("%w: %s from %s", ErrBadTransition, event, profile.Status)
	}

	if err := s.profiles.SetStatus(ctx, userID, next); err != nil {
		return "", fmt.Errorf("persist status: %w", err)
	}

	return next, nil
}
