package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/eliteconnections/backend/internal/domain/model"
	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	curatorauthsvc "github.com/eliteconnections/backend/internal/services/curatorauth"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

// UserFinder resolves the curator's account for the otpauth label.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
}

type Curator2FAHandler struct {
	service *curatorauthsvc.Service
	users   UserFinder
}

func NewCurator2FAHandler(service *curatorauthsvc.Service, users UserFinder) *Curator2FAHandler {
	return &Curator2FAHandler{service: service, users: users}
}

// Setup issues a fresh secret and QR code. Nothing is persisted until the
// curator proves possession via Verify.
func (h *Curator2FAHandler) Setup(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil || h.users == nil {
		writeInternal(w, "CURATOR_AUTH_UNAVAILABLE", "curator auth service is unavailable")
		return
	}

	user, err := h.users.FindByID(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to resolve curator account")
		return
	}

	enrollment, err := h.service.BeginEnrollment(r.Context(), user.Username)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to begin enrollment")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.TOTPSetupResponse{
		Secret:    enrollment.Secret,
		OTPURL:    enrollment.OTPURL,
		QRDataURL: enrollment.QRDataURL,
	})
}

func (h *Curator2FAHandler) Verify(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CURATOR_AUTH_UNAVAILABLE", "curator auth service is unavailable")
		return
	}

	var req dto.TOTPVerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.ConfirmEnrollment(r.Context(), identity.UserID, req.Secret, req.Code); err != nil {
		switch {
		case errors.Is(err, curatorauthsvc.ErrCodeInvalid):
			writeBadRequest(w, "TOTP_INVALID", "one-time code rejected")
		case errors.Is(err, curatorauthsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid enrollment request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to confirm enrollment")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}
