package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	gallerysvc "github.com/eliteconnections/backend/internal/services/gallery"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type GalleryHandler struct {
	service *gallerysvc.Service
}

func NewGalleryHandler(service *gallerysvc.Service) *GalleryHandler {
	return &GalleryHandler{service: service}
}

func (h *GalleryHandler) RequestAccess(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return
	}

	ownerID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid gallery owner id")
		return
	}

	request, err := h.service.RequestAccess(r.Context(), identity.UserID, ownerID)
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.GalleryRequestResponse{Request: request})
}

func (h *GalleryHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return
	}

	items, err := h.service.ListPending(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load gallery requests")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.GalleryRequestsResponse{Items: items})
}

func (h *GalleryHandler) Grant(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.grantFn)
}

func (h *GalleryHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.declineFn)
}

func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return
	}

	var req dto.GalleryUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	pending, err := h.service.BeginUpload(r.Context(), identity.UserID, req.IsPrivate)
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.GalleryUploadResponse{
		Image:     pending.Image,
		UploadURL: pending.UploadURL,
	})
}

func (h *GalleryHandler) View(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return
	}

	images, err := h.service.ViewGallery(r.Context(), identity.UserID, chi.URLParam(r, "username"))
	if err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.GalleryResponse{Images: images})
}

func (h *GalleryHandler) grantFn(r *http.Request, ownerID, requestID int64) error {
	return h.service.Grant(r.Context(), ownerID, requestID)
}

func (h *GalleryHandler) declineFn(r *http.Request, ownerID, requestID int64) error {
	return h.service.Decline(r.Context(), ownerID, requestID)
}

func (h *GalleryHandler) decide(w http.ResponseWriter, r *http.Request, do func(*http.Request, int64, int64) error) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "GALLERY_SERVICE_UNAVAILABLE", "gallery service is unavailable")
		return
	}

	requestID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request id")
		return
	}

	if err := do(r, identity.UserID, requestID); err != nil {
		handleGalleryError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func handleGalleryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gallerysvc.ErrOwnerNotFound):
		writeNotFound(w, "OWNER_NOT_FOUND", "gallery owner not found")
	case errors.Is(err, gallerysvc.ErrRequestNotFound):
		writeNotFound(w, "REQUEST_NOT_FOUND", "gallery request not found")
	case errors.Is(err, gallerysvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid gallery request")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process gallery request")
	}
}
