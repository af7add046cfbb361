package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	profilesvc "github.com/eliteconnections/backend/internal/services/profiles"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

const dateLayout = "2006-01-02"

type PortfolioHandler struct {
	service *profilesvc.Service
}

func NewPortfolioHandler(service *profilesvc.Service) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Update applies a portfolio edit and queues the profile for review.
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.PortfolioUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	input := profilesvc.PortfolioInput{
		PreferredName:        req.PreferredName,
		Gender:               req.Gender,
		GenderPreference:     req.GenderPreference,
		PrimaryLocation:      req.PrimaryLocation,
		PersonalStatement:    req.PersonalStatement,
		LifestylePreference:  req.LifestylePreference,
		CurrentEngagement:    req.CurrentEngagement,
		Physique:             req.Physique,
		FamilyConsiderations: req.FamilyConsiderations,
		LifestyleHabits:      req.LifestyleHabits,
		Stature:              req.Stature,
		FinancialCapacity:    req.FinancialCapacity,
		PersonalPhilosophy:   req.PersonalPhilosophy,
		SeekingQualities:     req.SeekingQualities,
		ExpectationFramework: req.ExpectationFramework,
		ConsiderationValue:   req.ConsiderationValue,
		ConsiderationPeriod:  req.ConsiderationPeriod,
		PublicPortfolio:      req.PublicPortfolio,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			writeFieldError(w, "VALIDATION_ERROR", "date_of_birth must use the YYYY-MM-DD layout", "date_of_birth")
			return
		}
		input.DateOfBirth = &dob
	}

	profile, err := h.service.UpdatePortfolio(r.Context(), identity.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, profilesvc.ErrAgeRejected):
			writeFieldError(w, "AGE_REJECTED", "age must be between 18 and 100", "date_of_birth")
		case errors.Is(err, profilesvc.ErrSuspended):
			writeForbidden(w, "PORTFOLIO_SUSPENDED", "suspended portfolios cannot be edited")
		case errors.Is(err, profilesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid portfolio request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update portfolio")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PortfolioResponse{Portfolio: profile})
}

// View serves another member's portfolio by username.
func (h *PortfolioHandler) View(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	username := chi.URLParam(r, "username")
	view, err := h.service.View(r.Context(), identity.UserID, identity.Role, username)
	if err != nil {
		switch {
		case errors.Is(err, profilesvc.ErrPortfolioNotFound):
			writeNotFound(w, "PORTFOLIO_NOT_FOUND", "portfolio not found")
		case errors.Is(err, profilesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid portfolio request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load portfolio")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PortfolioViewResponse{
		Portfolio: view.Profile,
		Username:  view.Username,
		Age:       view.Age,
		LifeStage: view.LifeStage,
		OwnedByMe: view.OwnedByMe,
	})
}

// Engagement returns the requester's tier and visibility state.
func (h *PortfolioHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	profile, err := h.service.GetOwn(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load engagement")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.EngagementResponse{
		EngagementTier:  string(profile.EngagementTier),
		ExclusiveAccess: profile.EngagementTier.HasExclusiveAccess(),
		Status:          string(profile.Status),
		PublicPortfolio: profile.PublicPortfolio,
	})
}

// Pending returns the moderation state of the requester's own portfolio.
func (h *PortfolioHandler) Pending(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	profile, err := h.service.GetOwn(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load moderation state")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ModerationStateResponse{
		Status:    string(profile.Status),
		UpdatedAt: profile.UpdatedAt,
	})
}
