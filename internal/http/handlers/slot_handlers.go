package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"parkdesk/internal/models"
	"parkdesk/internal/service"
)

// SlotHandlers holds the slot listing, override and correction endpoints.
type SlotHandlers struct {
	svc    *service.ParkingService
	logger *zap.Logger
}

// NewSlotHandlers builds the handler set.
func NewSlotHandlers(svc *service.ParkingService, logger *zap.Logger) *SlotHandlers {
	return &SlotHandlers{svc: svc, logger: logger}
}

// HandleList handles GET /slots with optional category, status and search
// query parameters.
func (h *SlotHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.SlotFilter{
		Category: models.SlotCategory(query.Get("category")),
		Status:   models.SlotStatus(query.Get("status")),
		Search:   query.Get("search"),
	}

	slots, err := h.svc.ListSlots(r.Context(), filter)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"slots": slots})
}

type slotStatusRequest struct {
	SlotID int64             `json:"slot_id"`
	Status models.SlotStatus `json:"status"`
}

// HandleSetStatus handles PATCH /slots/status, the operator maintenance
// override.
func (h *SlotHandlers) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req slotStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SlotID == 0 || req.Status == "" {
		writeError(w, http.StatusBadRequest, "slot_id and status are required")
		return
	}

	slot, err := h.svc.SetSlotStatus(r.Context(), req.SlotID, req.Status)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"slot": slot})
}

type correctTimeRequest struct {
	SlotID       int64      `json:"slot_id"`
	NewEntryTime *time.Time `json:"new_entry_time,omitempty"`
	NewExitTime  *time.Time `json:"new_exit_time,omitempty"`
}

// HandleCorrectTime handles PATCH /slots/time, the retroactive timestamp
// correction.
func (h *SlotHandlers) HandleCorrectTime(w http.ResponseWriter, r *http.Request) {
	var req correctTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SlotID == 0 {
		writeError(w, http.StatusBadRequest, "slot_id is required")
		return
	}

	session, err := h.svc.CorrectSessionTime(r.Context(), req.SlotID, req.NewEntryTime, req.NewExitTime)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"session": session})
}
