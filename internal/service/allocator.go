package service

import (
	"context"
	"errors"
	"fmt"

	"parkdesk/internal/models"
	"parkdesk/internal/repository"
)

// CompatibleSlotCategories returns the slot categories a vehicle may park
// in, highest priority first. The table is fixed facility policy.
func CompatibleSlotCategories(category models.VehicleCategory) ([]models.SlotCategory, error) {
	switch category {
	case models.VehicleCar:
		return []models.SlotCategory{models.SlotRegular, models.SlotCompact}, nil
	case models.VehicleBike:
		return []models.SlotCategory{models.SlotCompact}, nil
	case models.VehicleEV:
		return []models.SlotCategory{models.SlotEV}, nil
	case models.VehicleHandicap:
		return []models.SlotCategory{models.SlotHandicap}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

// resolveSlot picks the slot for an entering vehicle. A manual slot id
// bypasses priority ordering but is still validated for existence,
// availability and compatibility. Automatic allocation walks the compatible
// categories in priority order and takes the lowest-numbered available slot,
// which keeps assignment deterministic and fills low numbers first.
//
// Read-only with respect to slot state; the caller transitions the slot
// after the session is created. Runs inside the caller's transaction so the
// chosen row stays locked until commit.
func resolveSlot(ctx context.Context, store repository.Store, category models.VehicleCategory, manualSlotID *int64) (*models.Slot, error) {
	compatible, err := CompatibleSlotCategories(category)
	if err != nil {
		return nil, err
	}

	if manualSlotID != nil {
		slot, err := store.SlotForUpdate(ctx, *manualSlotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSlotNotFound
			}
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if slot.Status != models.SlotAvailable {
			return nil, ErrSlotNotAvailable
		}
		if !categoryAllowed(slot.Category, compatible) {
			return nil, ErrIncompatibleSlot
		}
		return slot, nil
	}

	for _, slotCategory := range compatible {
		slot, err := store.FirstAvailableSlot(ctx, slotCategory)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return slot, nil
	}
	return nil, ErrNoSlotAvailable
}

func categoryAllowed(category models.SlotCategory, allowed []models.SlotCategory) bool {
	for _, c := range allowed {
		if c == category {
			return true
		}
	}
	return false
}
