package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/eliteconnections/backend/internal/domain/enums"
	modsvc "github.com/eliteconnections/backend/internal/services/moderation"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type ModerationHandler struct {
	service *modsvc.Service
}

func NewModerationHandler(service *modsvc.Service) *ModerationHandler {
	return &ModerationHandler{service: service}
}

func (h *ModerationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	query := r.URL.Query()
	queue, err := h.service.PendingQueue(
		r.Context(),
		parseIntOrDefault(query.Get("limit"), 50),
		parseIntOrDefault(query.Get("offset"), 0),
	)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load review queue")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ReviewQueueResponse{
		Entries: queue.Entries,
		Total:   queue.Total,
	})
}

func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Approve)
}

func (h *ModerationHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Decline)
}

func (h *ModerationHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Suspend)
}

func (h *ModerationHandler) Reinstate(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reinstate)
}

func (h *ModerationHandler) decide(w http.ResponseWriter, r *http.Request, do func(ctx context.Context, userID int64) (enums.PortfolioStatus, error)) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	userID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	status, err := do(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, modsvc.ErrPortfolioNotFound):
			writeNotFound(w, "PORTFOLIO_NOT_FOUND", "portfolio not found")
		case errors.Is(err, modsvc.ErrBadTransition):
			writeConflict(w, "BAD_TRANSITION", "portfolio status does not allow this decision")
		case errors.Is(err, modsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid moderation request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to apply moderation decision")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ModerationDecisionResponse{
		UserID: userID,
		Status: string(status),
	})
}
