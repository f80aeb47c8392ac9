package handlers

import (
	"net/http"

	"parkdesk/internal/service"
)

// NewStatsHandler returns GET /dashboard/stats handler.
func NewStatsHandler(svc *service.ParkingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
