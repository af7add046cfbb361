package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	introsvc "github.com/eliteconnections/backend/internal/services/introductions"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type IntroductionsHandler struct {
	service *introsvc.Service
}

func NewIntroductionsHandler(service *introsvc.Service) *IntroductionsHandler {
	return &IntroductionsHandler{service: service}
}

// Open starts or reuses the introduction with the target and appends the
// first message.
func (h *IntroductionsHandler) Open(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTRODUCTIONS_SERVICE_UNAVAILABLE", "introductions service is unavailable")
		return
	}

	var req dto.NewIntroductionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	message, err := h.service.SendTo(r.Context(), identity.UserID, req.TargetUserID, req.Content)
	if err != nil {
		handleIntroductionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.MessageResponse{Message: message})
}

func (h *IntroductionsHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTRODUCTIONS_SERVICE_UNAVAILABLE", "introductions service is unavailable")
		return
	}

	introductionID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid introduction id")
		return
	}

	var req dto.MessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	message, err := h.service.Send(r.Context(), identity.UserID, introductionID, req.Content)
	if err != nil {
		handleIntroductionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.MessageResponse{Message: message})
}

func (h *IntroductionsHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTRODUCTIONS_SERVICE_UNAVAILABLE", "introductions service is unavailable")
		return
	}

	threads, err := h.service.Inbox(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load introductions")
		return
	}

	items := make([]dto.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		items = append(items, dto.ThreadResponse{
			Introduction: t.Introduction,
			Counterpart: dto.AuthMeResponse{
				ID:       t.Counterpart.ID,
				Username: t.Counterpart.Username,
				Role:     string(t.Counterpart.Role),
			},
			UnreadCount: t.UnreadCount,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.InboxResponse{Threads: items})
}

func (h *IntroductionsHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTRODUCTIONS_SERVICE_UNAVAILABLE", "introductions service is unavailable")
		return
	}

	introductionID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid introduction id")
		return
	}

	messages, err := h.service.History(r.Context(), identity.UserID, introductionID)
	if err != nil {
		handleIntroductionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.HistoryResponse{Messages: messages})
}

func (h *IntroductionsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTRODUCTIONS_SERVICE_UNAVAILABLE", "introductions service is unavailable")
		return
	}

	introductionID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid introduction id")
		return
	}

	marked, err := h.service.MarkRead(r.Context(), identity.UserID, introductionID)
	if err != nil {
		handleIntroductionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MarkReadResponse{OK: true, MarkedRead: marked})
}

func handleIntroductionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, introsvc.ErrMessageLength):
		writeBadRequest(w, "MESSAGE_LENGTH", "message length is out of bounds")
	case errors.Is(err, introsvc.ErrTargetNotFound):
		writeNotFound(w, "TARGET_NOT_FOUND", "target member not found")
	case errors.Is(err, introsvc.ErrThreadNotFound):
		writeNotFound(w, "INTRODUCTION_NOT_FOUND", "introduction not found")
	case errors.Is(err, introsvc.ErrNotParticipant):
		writeForbidden(w, "NOT_PARTICIPANT", "you are not part of this introduction")
	case errors.Is(err, introsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid introduction request")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process introduction")
	}
}
