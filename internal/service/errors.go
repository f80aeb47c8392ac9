package service

import "errors"

// Engine failure taxonomy. Every operation returns one of these (possibly
// wrapped) so the HTTP layer can map failures to stable codes.
var (
	// ErrMissingField indicates a required request field was absent.
	ErrMissingField = errors.New("parking: required field missing")
	// ErrUnknownCategory indicates a vehicle or slot category outside the
	// closed set.
	ErrUnknownCategory = errors.New("parking: unknown category")
	// ErrDuplicateActiveSession indicates the plate already has an active
	// session.
	ErrDuplicateActiveSession = errors.New("parking: vehicle already has an active session")
	// ErrNoActiveSession indicates no active session exists for the plate
	// or slot.
	ErrNoActiveSession = errors.New("parking: no active session found")
	// ErrSlotNotFound indicates the requested slot does not exist.
	ErrSlotNotFound = errors.New("parking: slot not found")
	// ErrSlotNotAvailable indicates the requested slot is occupied or in
	// maintenance.
	ErrSlotNotAvailable = errors.New("parking: slot is not available")
	// ErrIncompatibleSlot indicates a manual slot choice outside the
	// vehicle's compatible categories.
	ErrIncompatibleSlot = errors.New("parking: slot is incompatible with vehicle category")
	// ErrNoSlotAvailable indicates automatic allocation found no free
	// compatible slot.
	ErrNoSlotAvailable = errors.New("parking: no compatible slot available")
	// ErrSlotStatusNotAllowed indicates an operator override the engine
	// refuses, such as setting Occupied directly.
	ErrSlotStatusNotAllowed = errors.New("parking: slot status change not allowed")
	// ErrStorageUnavailable wraps infrastructure failures from the store.
	ErrStorageUnavailable = errors.New("parking: storage unavailable")
)
