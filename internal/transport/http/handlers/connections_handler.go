package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	connectionssvc "github.com/eliteconnections/backend/internal/services/connections"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type ConnectionsHandler struct {
	service *connectionssvc.Service
}

func NewConnectionsHandler(service *connectionssvc.Service) *ConnectionsHandler {
	return &ConnectionsHandler{service: service}
}

func (h *ConnectionsHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, func(ownerID, targetID int64) (connectionssvc.Result, error) {
		return h.service.Save(r.Context(), ownerID, targetID)
	})
}

func (h *ConnectionsHandler) Restrict(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, func(ownerID, targetID int64) (connectionssvc.Result, error) {
		return h.service.Restrict(r.Context(), ownerID, targetID)
	})
}

func (h *ConnectionsHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONNECTIONS_SERVICE_UNAVAILABLE", "connections service is unavailable")
		return
	}

	users, err := h.service.ListSaved(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load saved connections")
		return
	}

	items := make([]dto.SavedConnectionResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.SavedConnectionResponse{
			UserID:    u.ID,
			Username:  u.Username,
			CreatedAt: u.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.SavedConnectionsResponse{Items: items})
}

func (h *ConnectionsHandler) add(w http.ResponseWriter, r *http.Request, do func(ownerID, targetID int64) (connectionssvc.Result, error)) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONNECTIONS_SERVICE_UNAVAILABLE", "connections service is unavailable")
		return
	}

	targetID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid target user id")
		return
	}

	result, err := do(identity.UserID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, connectionssvc.ErrSelfConnection):
			writeBadRequest(w, "SELF_CONNECTION", "cannot connect to yourself")
		case errors.Is(err, connectionssvc.ErrTargetNotFound):
			writeNotFound(w, "TARGET_NOT_FOUND", "target member not found")
		case errors.Is(err, connectionssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid connection request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to save connection")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ConnectionResponse{
		OK:    true,
		Added: result.Added,
		Kind:  result.Kind,
	})
}
