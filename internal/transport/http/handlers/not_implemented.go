package handlers

import (
	"net/http"

	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

func writeNotImplemented(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotImplemented, httperrors.APIError{
		Code:    code,
		Message: message,
	})
}

// SendMessageStub answers the legacy /send-message/{id} route. The page it
// served was never finished upstream; messaging goes through /introductions.
func SendMessageStub(w http.ResponseWriter, _ *http.Request) {
	writeNotImplemented(w, "NOT_IMPLEMENTED", "direct send-message is not implemented, use introductions")
}
