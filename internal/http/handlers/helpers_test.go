package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"parkdesk/internal/service"
)

func TestWriteEngineErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrMissingField, http.StatusBadRequest},
		{service.ErrUnknownCategory, http.StatusBadRequest},
		{service.ErrIncompatibleSlot, http.StatusBadRequest},
		{service.ErrNoSlotAvailable, http.StatusBadRequest},
		{service.ErrSlotStatusNotAllowed, http.StatusBadRequest},
		{service.ErrDuplicateActiveSession, http.StatusConflict},
		{service.ErrSlotNotAvailable, http.StatusConflict},
		{service.ErrNoActiveSession, http.StatusNotFound},
		{service.ErrSlotNotFound, http.StatusNotFound},
		{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("surprise"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeEngineError(rec, tc.err)
		if rec.Code != tc.want {
			t.Fatalf("writeEngineError(%v) status = %d, want %d", tc.err, rec.Code, tc.want)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected json content type, got %q", ct)
		}
	}
}

func TestWriteEngineErrorMatchesWrappedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeEngineError(rec, fmt.Errorf("%w: plate", service.ErrMissingField))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrapped ErrMissingField status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
