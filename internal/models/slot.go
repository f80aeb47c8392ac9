package models

import "time"

// SlotCategory is the kind of vehicle a slot accepts.
type SlotCategory string

const (
	SlotRegular  SlotCategory = "Regular"
	SlotCompact  SlotCategory = "Compact"
	SlotEV       SlotCategory = "EV"
	SlotHandicap SlotCategory = "Handicap"
)

// Valid reports whether the category is one of the known slot categories.
func (c SlotCategory) Valid() bool {
	switch c {
	case SlotRegular, SlotCompact, SlotEV, SlotHandicap:
		return true
	}
	return false
}

// SlotStatus is the operational state of a slot.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "Available"
	SlotOccupied    SlotStatus = "Occupied"
	SlotMaintenance SlotStatus = "Maintenance"
)

// Valid reports whether the status is one of the known slot statuses.
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotOccupied, SlotMaintenance:
		return true
	}
	return false
}

// Slot is a single physical parking space. SlotNumber encodes
// floor/section/index (e.g. "A1-07") and is unique across the facility.
type Slot struct {
	ID         int64        `db:"id" json:"id"`
	SlotNumber string       `db:"slot_number" json:"slot_number"`
	Category   SlotCategory `db:"category" json:"category"`
	Status     SlotStatus   `db:"status" json:"status"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// SlotFilter narrows slot listings for the console.
type SlotFilter struct {
	Category SlotCategory
	Status   SlotStatus
	Search   string
}

// SlotWithSession joins a slot with its active session and vehicle, if any.
type SlotWithSession struct {
	Slot
	ActiveSession *Session `json:"active_session,omitempty"`
	Vehicle       *Vehicle `json:"vehicle,omitempty"`
}
