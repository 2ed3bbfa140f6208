package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zenibaba/ZEXXY-BACKEND-API/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeServiceError maps a domain error to an HTTP failure response.
// notFoundMessage names the missing entity for the calling endpoint, since
// common.ErrorNotFound means different things to register and login.
// Everything unrecognized collapses to a generic 500: failure kinds are not
// distinguished to external clients.
func writeServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeFailure(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, common.ErrorUnauthorized):
		writeFailure(w, http.StatusUnauthorized, "Invalid password")
	case errors.Is(err, common.ErrorUserExists):
		writeFailure(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, common.ErrorKeyBanned):
		writeFailure(w, http.StatusForbidden, "Key is banned")
	case errors.Is(err, common.ErrorKeyUsed):
		writeFailure(w, http.StatusBadRequest, "Key already used")
	case errors.Is(err, common.ErrorBanned):
		writeFailure(w, http.StatusForbidden, "Account is banned")
	case errors.Is(err, common.ErrorHWIDMismatch):
		writeFailure(w, http.StatusForbidden, "HWID mismatch - device not authorized")
	case errors.Is(err, common.ErrorExpired):
		writeFailure(w, http.StatusForbidden, "Subscription expired")
	case errors.Is(err, common.ErrorUninitialized):
		writeFailure(w, http.StatusInternalServerError, "Database not found")
	case errors.Is(err, common.ErrorInvalidDuration):
		writeFailure(w, http.StatusBadRequest, "Invalid duration")
	default:
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}
