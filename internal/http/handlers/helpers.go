package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"parkdesk/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeEngineError maps the engine failure taxonomy to stable HTTP
// code/message pairs.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrIncompatibleSlot),
		errors.Is(err, service.ErrNoSlotAvailable),
		errors.Is(err, service.ErrSlotStatusNotAllowed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateActiveSession),
		errors.Is(err, service.ErrSlotNotAvailable):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoActiveSession),
		errors.Is(err, service.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
