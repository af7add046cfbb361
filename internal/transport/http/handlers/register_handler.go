package handlers

import (
	"errors"
	"net/http"

	registersvc "github.com/eliteconnections/backend/internal/services/register"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type RegisterHandler struct {
	service *registersvc.Service
}

func NewRegisterHandler(service *registersvc.Service) *RegisterHandler {
	return &RegisterHandler{service: service}
}

func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "REGISTER_SERVICE_UNAVAILABLE", "register service is unavailable")
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), registersvc.Input{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		var vErr *registersvc.ValidationError
		switch {
		case errors.Is(err, registersvc.ErrEmailTaken):
			httperrors.Write(w, http.StatusConflict, httperrors.FieldError{
				Code:    "EMAIL_TAKEN",
				Message: "email is already registered",
				Field:   "email",
			})
		case errors.Is(err, registersvc.ErrUsernameTaken):
			httperrors.Write(w, http.StatusConflict, httperrors.FieldError{
				Code:    "USERNAME_TAKEN",
				Message: "username is already registered",
				Field:   "username",
			})
		case errors.As(err, &vErr):
			writeFieldError(w, "VALIDATION_ERROR", vErr.Message, vErr.Field)
		case errors.Is(err, registersvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid registration request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to register")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.RegisterResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	})
}
