package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/eliteconnections/backend/internal/services/auth"
	directorysvc "github.com/eliteconnections/backend/internal/services/directory"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type DirectoryHandler struct {
	service *directorysvc.Service
}

func NewDirectoryHandler(service *directorysvc.Service) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// Dashboard is the unfiltered member grid.
func (h *DirectoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.browse(w, r, directorysvc.Query{
		Page: parseIntOrDefault(r.URL.Query().Get("page"), 1),
	})
}

// Search is the dashboard with the location and tier filters applied.
func (h *DirectoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	h.browse(w, r, directorysvc.Query{
		Location: query.Get("location"),
		Tier:     query.Get("status"),
		Page:     parseIntOrDefault(query.Get("page"), 1),
	})
}

func (h *DirectoryHandler) browse(w http.ResponseWriter, r *http.Request, q directorysvc.Query) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "DIRECTORY_SERVICE_UNAVAILABLE", "directory service is unavailable")
		return
	}

	page, err := h.service.Browse(r.Context(), identity.UserID, q)
	if err != nil {
		switch {
		case errors.Is(err, directorysvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid directory request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load directory")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, page)
}
