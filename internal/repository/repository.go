// Package repository defines the persistence contracts for the parking
// engine and their postgres implementation.
package repository

import (
	"context"
	"errors"
	"time"

	"parkdesk/internal/models"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrPlateSessionExists indicates the one-active-session-per-plate
	// constraint was violated.
	ErrPlateSessionExists = errors.New("repository: plate already has an active session")
	// ErrSlotSessionExists indicates the one-active-session-per-slot
	// constraint was violated.
	ErrSlotSessionExists = errors.New("repository: slot already has an active session")
)

// Store is the persistence contract used by the parking engine. Methods
// that miss return ErrNotFound.
type Store interface {
	// WithinTx runs fn against a transaction-bound Store. Each entry, exit
	// and correction is one atomic read-modify-write unit scoped to the
	// affected plate and slot rows.
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	SlotByID(ctx context.Context, id int64) (*models.Slot, error)
	// SlotForUpdate fetches a slot and locks its row for the duration of
	// the enclosing transaction.
	SlotForUpdate(ctx context.Context, id int64) (*models.Slot, error)
	// FirstAvailableSlot returns the lowest-numbered available slot of the
	// given category, row-locked.
	FirstAvailableSlot(ctx context.Context, category models.SlotCategory) (*models.Slot, error)
	UpdateSlotStatus(ctx context.Context, id int64, status models.SlotStatus) error
	ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.SlotWithSession, error)

	UpsertVehicle(ctx context.Context, vehicle *models.Vehicle) error
	VehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error)

	ActiveSessionByPlate(ctx context.Context, plate string) (*models.Session, error)
	ActiveSessionBySlot(ctx context.Context, slotID int64) (*models.Session, error)
	// LatestSessionBySlot returns the most recent session for the slot
	// regardless of status, so a just-closed session stays correctable.
	LatestSessionBySlot(ctx context.Context, slotID int64) (*models.Session, error)
	CreateSession(ctx context.Context, session *models.Session) error
	UpdateSession(ctx context.Context, session *models.Session) error

	Stats(ctx context.Context, since time.Time) (*models.DashboardStats, error)
}

// OperatorStore is the persistence contract for console operators.
type OperatorStore interface {
	OperatorByUsername(ctx context.Context, username string) (*models.Operator, error)
	UpsertOperator(ctx context.Context, operator *models.Operator) error
}
