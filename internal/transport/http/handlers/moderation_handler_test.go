package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"
	modsvc "github.com/eliteconnections/backend/internal/services/moderation"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type reviewQueueStub struct {
	entries []pgrepo.ReviewEntry
}

func (s reviewQueueStub) ListUnderReview(context.Context, int, int) ([]pgrepo.ReviewEntry, error) {
	return s.entries, nil
}

func (s reviewQueueStub) CountUnderReview(context.Context) (int, error) {
	return len(s.entries), nil
}

type reviewProfilesStub struct {
	statuses map[int64]enums.PortfolioStatus
}

func (s *reviewProfilesStub) GetByUserID(_ context.Context, userID int64) (model.Profile, error) {
	status, ok := s.statuses[userID]
	if !ok {
		return model.Profile{}, pgrepo.ErrProfileNotFound
	}
	return model.Profile{UserID: userID, Status: status}, nil
}

func (s *reviewProfilesStub) SetStatus(_ context.Context, userID int64, status enums.PortfolioStatus) error {
	s.statuses[userID] = status
	return nil
}

func newModerationRouterForTest(profiles *reviewProfilesStub) http.Handler {
	handler := NewModerationHandler(modsvc.NewService(reviewQueueStub{}, profiles))
	r := chi.NewRouter()
	r.Get("/curator/queue", handler.Queue)
	r.Post("/curator/profiles/{id}/approve", handler.Approve)
	r.Post("/curator/profiles/{id}/suspend", handler.Suspend)
	return r
}

func TestModerationApproveMovesUnderReviewToApproved(t *testing.T) {
	profiles := &reviewProfilesStub{statuses: map[int64]enums.PortfolioStatus{
		42: enums.PortfolioStatusUnderReview,
	}}
	router := newModerationRouterForTest(profiles)

	req := httptest.NewRequest(http.MethodPost, "/curator/profiles/42/approve", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var payload dto.ModerationDecisionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "approved" {
		t.Fatalf("unexpected status in payload: %q", payload.Status)
	}
	if profiles.statuses[42] != enums.PortfolioStatusApproved {
		t.Fatalf("profile status not persisted: %q", profiles.statuses[42])
	}
}

func TestModerationApproveRejectsApprovedProfile(t *testing.T) {
	profiles := &reviewProfilesStub{statuses: map[int64]enums.PortfolioStatus{
		42: enums.PortfolioStatusApproved,
	}}
	router := newModerationRouterForTest(profiles)

	req := httptest.NewRequest(http.MethodPost, "/curator/profiles/42/approve", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusConflict)
	}

	var payload httperrors.APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "BAD_TRANSITION" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func TestModerationUnknownProfileIsNotFound(t *testing.T) {
	router := newModerationRouterForTest(&reviewProfilesStub{statuses: map[int64]enums.PortfolioStatus{}})

	req := httptest.NewRequest(http.MethodPost, "/curator/profiles/999/suspend", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNotFound)
	}
}
