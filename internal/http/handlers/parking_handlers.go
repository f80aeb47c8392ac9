package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"parkdesk/internal/models"
	"parkdesk/internal/service"
)

// ParkingHandlers holds the entry/exit endpoints.
type ParkingHandlers struct {
	svc    *service.ParkingService
	logger *zap.Logger
}

// NewParkingHandlers builds the handler set.
func NewParkingHandlers(svc *service.ParkingService, logger *zap.Logger) *ParkingHandlers {
	return &ParkingHandlers{svc: svc, logger: logger}
}

type entryRequest struct {
	Plate           string                 `json:"plate"`
	VehicleCategory models.VehicleCategory `json:"vehicle_category"`
	BillingType     models.BillingType     `json:"billing_type"`
	SlotID          *int64                 `json:"slot_id,omitempty"`
	ManualSelection bool                   `json:"manual_selection,omitempty"`
}

// HandleEntry handles POST /parking/entry.
func (h *ParkingHandlers) HandleEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, err := h.svc.RecordEntry(r.Context(), service.EntryInput{
		Plate:           req.Plate,
		Category:        req.VehicleCategory,
		BillingType:     req.BillingType,
		SlotID:          req.SlotID,
		ManualSelection: req.ManualSelection,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "vehicle entry recorded",
		"session": session,
	})
}

// HandleActiveLookup handles GET /parking/active with a plate query
// parameter, answering from the session cache when warm.
func (h *ParkingHandlers) HandleActiveLookup(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.ActiveSession(r.Context(), r.URL.Query().Get("plate"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

type exitRequest struct {
	Plate string `json:"plate"`
}

// HandleExit handles POST /parking/exit.
func (h *ParkingHandlers) HandleExit(w http.ResponseWriter, r *http.Request) {
	var req exitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	session, receipt, err := h.svc.RecordExit(r.Context(), req.Plate)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "vehicle exit processed",
		"session": session,
		"receipt": receipt,
	})
}
