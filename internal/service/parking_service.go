package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"parkdesk/internal/cache"
	"parkdesk/internal/models"
	"parkdesk/internal/pricing"
	"parkdesk/internal/repository"
)

// SlotNotifier receives slot state changes for live console updates.
type SlotNotifier interface {
	NotifySlotChanged(slot models.Slot)
}

// ActiveSessionCache mirrors active sessions for cheap plate lookups. The
// store stays authoritative; failures are logged and ignored.
type ActiveSessionCache interface {
	Save(ctx context.Context, session cache.ActiveSession) error
	Get(ctx context.Context, plate string) (*cache.ActiveSession, error)
	Delete(ctx context.Context, plate string) error
}

// ParkingService orchestrates the session lifecycle: entry, exit, operator
// overrides and retroactive time corrections. All state transitions run
// inside a single store transaction per call, so the one-active-session
// invariants hold under concurrent requests.
type ParkingService struct {
	store       repository.Store
	activeCache ActiveSessionCache
	notifier    SlotNotifier
	logger      *zap.Logger
	zone        *time.Location
	now         func() time.Time
}

// NewParkingService builds the service. The cache and notifier are optional;
// zone is the facility's canonical timezone used to normalize corrected
// timestamps.
func NewParkingService(store repository.Store, activeCache ActiveSessionCache, notifier SlotNotifier, zone *time.Location, logger *zap.Logger) *ParkingService {
	if zone == nil {
		zone = time.UTC
	}
	return &ParkingService{
		store:       store,
		activeCache: activeCache,
		notifier:    notifier,
		logger:      logger,
		zone:        zone,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// EntryInput describes an arriving vehicle.
type EntryInput struct {
	Plate           string
	Category        models.VehicleCategory
	BillingType     models.BillingType
	SlotID          *int64
	ManualSelection bool
}

// RecordEntry admits a vehicle: validates the request, upserts the vehicle,
// resolves a slot, creates the active session and occupies the slot, all in
// one transaction. Either every effect applies or none does.
func (s *ParkingService) RecordEntry(ctx context.Context, input EntryInput) (*models.SessionDetail, error) {
	plate := strings.ToUpper(strings.TrimSpace(input.Plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate", ErrMissingField)
	}
	if input.Category == "" {
		return nil, fmt.Errorf("%w: vehicle category", ErrMissingField)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, input.Category)
	}
	if input.BillingType == "" || !input.BillingType.Valid() {
		return nil, fmt.Errorf("%w: billing type", ErrMissingField)
	}
	if input.ManualSelection && input.SlotID == nil {
		return nil, fmt.Errorf("%w: slot id for manual selection", ErrMissingField)
	}

	var detail *models.SessionDetail
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.ActiveSessionByPlate(ctx, plate); err == nil {
			return ErrDuplicateActiveSession
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		vehicle := &models.Vehicle{Plate: plate, Category: input.Category}
		if err := tx.UpsertVehicle(ctx, vehicle); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		slot, err := resolveSlot(ctx, tx, input.Category, input.SlotID)
		if err != nil {
			return err
		}

		session := &models.Session{
			Plate:       plate,
			SlotID:      slot.ID,
			BillingType: input.BillingType,
			Status:      models.SessionActive,
			EntryTime:   s.now(),
		}
		if input.BillingType == models.BillingDayPass {
			amount := pricing.DayPassAmount()
			session.Amount = &amount
		}

		if err := tx.CreateSession(ctx, session); err != nil {
			switch {
			case errors.Is(err, repository.ErrPlateSessionExists):
				return ErrDuplicateActiveSession
			case errors.Is(err, repository.ErrSlotSessionExists):
				return ErrSlotNotAvailable
			default:
				return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
			}
		}

		if err := tx.UpdateSlotStatus(ctx, slot.ID, models.SlotOccupied); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		slot.Status = models.SlotOccupied

		detail = &models.SessionDetail{Session: *session, Vehicle: *vehicle, Slot: *slot}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cacheActive(ctx, detail)
	s.notifySlot(detail.Slot)
	s.logger.Info("vehicle entry recorded",
		zap.String("plate", plate),
		zap.String("slot", detail.Slot.SlotNumber),
		zap.String("billing_type", string(input.BillingType)),
	)
	return detail, nil
}

// RecordExit closes the plate's active session, computes the charge and
// releases the slot. Returns the completed session and a receipt.
func (s *ParkingService) RecordExit(ctx context.Context, plate string) (*models.SessionDetail, *models.Receipt, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, nil, fmt.Errorf("%w: plate", ErrMissingField)
	}

	var (
		detail  *models.SessionDetail
		receipt *models.Receipt
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		session, err := tx.ActiveSessionByPlate(ctx, plate)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNoActiveSession
			}
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		slot, err := tx.SlotForUpdate(ctx, session.SlotID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		vehicle, err := tx.VehicleByPlate(ctx, plate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		exitTime := s.now()
		amount := pricing.DayPassAmount()
		if session.BillingType == models.BillingHourly {
			amount = pricing.HourlyAmount(session.EntryTime, exitTime)
		} else if session.Amount != nil {
			amount = *session.Amount
		}

		session.ExitTime = &exitTime
		session.Amount = &amount
		session.Status = models.SessionCompleted
		if err := tx.UpdateSession(ctx, session); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		if err := tx.UpdateSlotStatus(ctx, slot.ID, models.SlotAvailable); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		slot.Status = models.SlotAvailable

		detail = &models.SessionDetail{Session: *session, Vehicle: *vehicle, Slot: *slot}
		receipt = &models.Receipt{
			Plate:           plate,
			VehicleCategory: vehicle.Category,
			SlotNumber:      slot.SlotNumber,
			EntryTime:       session.EntryTime,
			ExitTime:        exitTime,
			DurationHours:   pricing.CeilingHours(session.EntryTime, exitTime),
			BillingType:     session.BillingType,
			Amount:          amount,
			Overstay:        pricing.IsOverstay(session.EntryTime, exitTime),
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.evictActive(ctx, plate)
	s.notifySlot(detail.Slot)
	s.logger.Info("vehicle exit recorded",
		zap.String("plate", plate),
		zap.String("slot", detail.Slot.SlotNumber),
		zap.Int64("amount", receipt.Amount),
		zap.Bool("overstay", receipt.Overstay),
	)
	return detail, receipt, nil
}

// CorrectSessionTime retroactively rewrites a session's entry/exit
// timestamps, recomputes hourly billing and re-derives both session and
// slot state. The session is located by slot id so a just-closed session
// can still be corrected; setting or clearing the exit time flips the
// session between Completed and Active accordingly.
func (s *ParkingService) CorrectSessionTime(ctx context.Context, slotID int64, newEntry, newExit *time.Time) (*models.SessionDetail, error) {
	var detail *models.SessionDetail
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		slot, err := tx.SlotForUpdate(ctx, slotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		session, err := tx.ActiveSessionBySlot(ctx, slotID)
		if errors.Is(err, repository.ErrNotFound) {
			session, err = tx.LatestSessionBySlot(ctx, slotID)
		}
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNoActiveSession
			}
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		if newEntry != nil {
			session.EntryTime = s.normalizeLocal(*newEntry)
		}
		if newExit != nil {
			normalized := s.normalizeLocal(*newExit)
			session.ExitTime = &normalized
		}

		if session.ExitTime != nil && session.BillingType == models.BillingHourly {
			amount := pricing.HourlyAmount(session.EntryTime, *session.ExitTime)
			session.Amount = &amount
		}

		wantSlotStatus := models.SlotOccupied
		if session.ExitTime != nil {
			session.Status = models.SessionCompleted
			wantSlotStatus = models.SlotAvailable
		} else {
			session.Status = models.SessionActive
		}

		if err := tx.UpdateSession(ctx, session); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if slot.Status != wantSlotStatus {
			if err := tx.UpdateSlotStatus(ctx, slot.ID, wantSlotStatus); err != nil {
				return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
			}
			slot.Status = wantSlotStatus
		}

		vehicle, err := tx.VehicleByPlate(ctx, session.Plate)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		detail = &models.SessionDetail{Session: *session, Vehicle: *vehicle, Slot: *slot}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if detail.Status == models.SessionCompleted {
		s.evictActive(ctx, detail.Plate)
	} else {
		s.cacheActive(ctx, detail)
	}
	s.notifySlot(detail.Slot)
	s.logger.Info("session time corrected",
		zap.Int64("slot_id", slotID),
		zap.String("plate", detail.Plate),
		zap.String("status", string(detail.Status)),
	)
	return detail, nil
}

// ActiveSession looks up the plate's active session projection, serving
// from the cache mirror when it can and falling back to the store. A
// fallback hit rewarms the cache.
func (s *ParkingService) ActiveSession(ctx context.Context, plate string) (*cache.ActiveSession, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return nil, fmt.Errorf("%w: plate", ErrMissingField)
	}

	if s.activeCache != nil {
		if cached, err := s.activeCache.Get(ctx, plate); err == nil {
			return cached, nil
		}
	}

	session, err := s.store.ActiveSessionByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	slot, err := s.store.SlotByID(ctx, session.SlotID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	active := &cache.ActiveSession{
		SessionID:  session.ID,
		Plate:      session.Plate,
		SlotID:     slot.ID,
		SlotNumber: slot.SlotNumber,
		EntryTime:  session.EntryTime,
	}
	if s.activeCache != nil {
		if err := s.activeCache.Save(ctx, *active); err != nil {
			s.logger.Warn("failed to rewarm active session cache", zap.Error(err))
		}
	}
	return active, nil
}

// ListSlots returns slots with their active session and vehicle embedded,
// filtered for the console.
func (s *ParkingService) ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.SlotWithSession, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, filter.Category)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, filter.Status)
	}
	slots, err := s.store.ListSlots(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return slots, nil
}

// SetSlotStatus is the operator override for maintenance toggling. Occupied
// is never settable directly, and a slot with an active session cannot be
// changed at all.
func (s *ParkingService) SetSlotStatus(ctx context.Context, slotID int64, status models.SlotStatus) (*models.Slot, error) {
	if !status.Valid() || status == models.SlotOccupied {
		return nil, fmt.Errorf("%w: %q", ErrSlotStatusNotAllowed, status)
	}

	var updated *models.Slot
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		slot, err := tx.SlotForUpdate(ctx, slotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if slot.Status == models.SlotOccupied {
			return fmt.Errorf("%w: slot has an active session", ErrSlotStatusNotAllowed)
		}
		if err := tx.UpdateSlotStatus(ctx, slotID, status); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		slot.Status = status
		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySlot(*updated)
	s.logger.Info("slot status overridden",
		zap.String("slot", updated.SlotNumber),
		zap.String("status", string(status)),
	)
	return updated, nil
}

// Stats aggregates console dashboard numbers; revenue counts completed
// sessions since the start of the facility-local day.
func (s *ParkingService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now().In(s.zone)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.zone)
	stats, err := s.store.Stats(ctx, startOfDay.UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return stats, nil
}

// normalizeLocal reinterprets the wall-clock fields of a caller-supplied
// timestamp in the facility timezone and stores the result in UTC.
func (s *ParkingService) normalizeLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), s.zone).UTC()
}

func (s *ParkingService) cacheActive(ctx context.Context, detail *models.SessionDetail) {
	if s.activeCache == nil || detail.Status != models.SessionActive {
		return
	}
	err := s.activeCache.Save(ctx, cache.ActiveSession{
		SessionID:  detail.ID,
		Plate:      detail.Plate,
		SlotID:     detail.Slot.ID,
		SlotNumber: detail.Slot.SlotNumber,
		EntryTime:  detail.EntryTime,
	})
	if err != nil {
		s.logger.Warn("failed to cache active session", zap.Error(err))
	}
}

func (s *ParkingService) evictActive(ctx context.Context, plate string) {
	if s.activeCache == nil {
		return
	}
	if err := s.activeCache.Delete(ctx, plate); err != nil {
		s.logger.Warn("failed to evict active session cache", zap.Error(err))
	}
}

func (s *ParkingService) notifySlot(slot models.Slot) {
	if s.notifier != nil {
		s.notifier.NotifySlotChanged(slot)
	}
}
