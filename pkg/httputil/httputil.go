// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes: {"msg": ...} for single messages, {"errors": [...]} for
// validation failures.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "devconnect/pkg/domain-errors"
	"devconnect/pkg/validation"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMsg writes a {"msg": ...} body with the given status.
func WriteMsg(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"msg": msg})
}

// WriteViolations writes the aggregated validation failures as a 400.
func WriteViolations(w http.ResponseWriter, violations []validation.Violation) {
	WriteJSON(w, http.StatusBadRequest, map[string][]validation.Violation{"errors": violations})
}

// WriteError translates a domain error into its HTTP response. Internal
// failures are logged with their cause and the client gets a generic message.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := dErrors.HTTPStatus(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "error", err)
	}
	WriteMsg(w, status, dErrors.Message(err))
}

// WriteErrorList is WriteError in the {"errors": [...]} envelope used by the
// registration and login flows.
func WriteErrorList(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := dErrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		WriteMsg(w, status, dErrors.Message(err))
		return
	}
	WriteViolations(w, []validation.Violation{{Msg: dErrors.Message(err)}})
}
