package handlers

import (
	"errors"
	"net/http"
	"time"

	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	experiencessvc "github.com/eliteconnections/backend/internal/services/experiences"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type ExperiencesHandler struct {
	service *experiencessvc.Service
}

func NewExperiencesHandler(service *experiencessvc.Service) *ExperiencesHandler {
	return &ExperiencesHandler{service: service}
}

func (h *ExperiencesHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "EXPERIENCES_SERVICE_UNAVAILABLE", "experiences service is unavailable")
		return
	}

	var req dto.ExperienceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	date, err := time.Parse(dateLayout, req.ExperienceDate)
	if err != nil {
		writeFieldError(w, "VALIDATION_ERROR", "experience_date must use the YYYY-MM-DD layout", "experience_date")
		return
	}

	experience, err := h.service.Create(r.Context(), identity.UserID, experiencessvc.Input{
		Title:             req.Title,
		Venue:             req.Venue,
		ExperienceDate:    date,
		Commencement:      req.Commencement,
		Conclusion:        req.Conclusion,
		Description:       req.Description,
		Consideration:     req.Consideration,
		ConsiderationType: req.ConsiderationType,
	})
	if err != nil {
		switch {
		case errors.Is(err, experiencessvc.ErrDateInPast):
			writeFieldError(w, "DATE_IN_PAST", "experience date cannot be in the past", "experience_date")
		case errors.Is(err, experiencessvc.ErrTimeOrder):
			writeFieldError(w, "TIME_ORDER", "conclusion must be after commencement", "conclusion")
		case errors.Is(err, experiencessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid experience request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create experience")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.ExperienceResponse{Experience: experience})
}

func (h *ExperiencesHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "EXPERIENCES_SERVICE_UNAVAILABLE", "experiences service is unavailable")
		return
	}

	items, err := h.service.ListActive(r.Context(), parseIntOrDefault(r.URL.Query().Get("limit"), 50))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load experiences")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ExperiencesResponse{Items: items})
}

func (h *ExperiencesHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "EXPERIENCES_SERVICE_UNAVAILABLE", "experiences service is unavailable")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid experience id")
		return
	}

	if err := h.service.Deactivate(r.Context(), identity.UserID, id); err != nil {
		switch {
		case errors.Is(err, experiencessvc.ErrNotListed):
			writeNotFound(w, "EXPERIENCE_NOT_FOUND", "experience not found or not yours")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to deactivate experience")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}
