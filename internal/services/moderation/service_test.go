package moderation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
	modsvc "github.com/eliteconnections/backend/internal/services/moderation"
)

type reviewProfilesFake struct {
	statuses map[int64]enums.PortfolioStatus
}

func (f *reviewProfilesFake) GetByUserID(_ context.Context, userID int64) (model.Profile, error) {
	status, ok := f.statuses[userID]
	if !ok {
		return model.Profile{}, pgrepo.ErrProfileNotFound
	}
	return model.Profile{UserID: userID, Status: status}, nil
}

func (f *reviewProfilesFake) SetStatus(_ context.Context, userID int64, status enums.PortfolioStatus) error {
	f.statuses[userID] = status
	return nil
}

type queueFake struct{}

func (queueFake) ListUnderReview(_ context.Context, limit, offset int) ([]pgrepo.ReviewEntry, error) {
	return []pgrepo.ReviewEntry{{UserID: 9, Username: "pending_member"}}, nil
}

func (queueFake) CountUnderReview(_ context.Context) (int, error) {
	return 1, nil
}

func TestModerationDecisions(t *testing.T) {
	profiles := &reviewProfilesFake{statuses: map[int64]enums.PortfolioStatus{
		9: enums.PortfolioStatusUnderReview,
	}}
	svc := modsvc.NewService(queueFake{}, profiles)

	ctx := context.Background()
	status, err := svc.Approve(ctx, 9)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if status != enums.PortfolioStatusApproved {
		t.Fatalf("status = %s", status)
	}

	// Approving twice is an invalid transition.
	if _, err := svc.Approve(ctx, 9); !errors.Is(err, modsvc.ErrBadTransition) {
		t.Fatalf("second approve: got %v", err)
	}

	if _, err := svc.Suspend(ctx, 9); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if _, err := svc.Suspend(ctx, 9); !errors.Is(err, modsvc.ErrBadTransition) {
		t.Fatalf("suspend twice: got %v", err)
	}

	status, err = svc.Reinstate(ctx, 9)
	if err != nil {
		t.Fatalf("reinstate: %v", err)
	}
	if status != enums.PortfolioStatusUnderReview {
		t.Fatalf("reinstated status = %s, want under_review", status)
	}

	if _, err := svc.Decline(ctx, 404); !errors.Is(err, modsvc.ErrPortfolioNotFound) {
		t.Fatalf("unknown portfolio: got %v", err)
	}
}

func TestPendingQueue(t *testing.T) {
	svc := modsvc.NewService(queueFake{}, &reviewProfilesFake{statuses: map[int64]enums.PortfolioStatus{}})

	queue, err := svc.PendingQueue(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if queue.Total != 1 || len(queue.Entries) != 1 || queue.Entries[0].Username != "pending_member" {
		t.Fatalf("queue = %+v", queue)
	}
}
