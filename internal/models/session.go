package models

import "time"

// SessionStatus tracks whether a vehicle is still parked.
type SessionStatus string

const (
	SessionActive    SessionStatus = "Active"
	SessionCompleted SessionStatus = "Completed"
)

// BillingType selects how a session is charged.
type BillingType string

const (
	BillingHourly  BillingType = "Hourly"
	BillingDayPass BillingType = "DayPass"
)

// Valid reports whether the billing type is known.
func (b BillingType) Valid() bool {
	return b == BillingHourly || b == BillingDayPass
}

// Session is one continuous occupancy of a slot by a vehicle. ExitTime and
// Amount are nil while the session is active with hourly billing; day-pass
// sessions carry their fixed amount from entry.
type Session struct {
	ID          int64         `db:"id" json:"id"`
	Plate       string        `db:"plate" json:"plate"`
	SlotID      int64         `db:"slot_id" json:"slot_id"`
	BillingType BillingType   `db:"billing_type" json:"billing_type"`
	Status      SessionStatus `db:"status" json:"status"`
	EntryTime   time.Time     `db:"entry_time" json:"entry_time"`
	ExitTime    *time.Time    `db:"exit_time" json:"exit_time,omitempty"`
	Amount      *int64        `db:"amount" json:"amount,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

// SessionDetail joins a session with its vehicle and slot for responses.
type SessionDetail struct {
	Session
	Vehicle Vehicle `json:"vehicle"`
	Slot    Slot    `json:"slot"`
}

// Receipt summarizes a completed exit for the operator console.
type Receipt struct {
	Plate           string          `json:"plate"`
	VehicleCategory VehicleCategory `json:"vehicle_category"`
	SlotNumber      string          `json:"slot_number"`
	EntryTime       time.Time       `json:"entry_time"`
	ExitTime        time.Time       `json:"exit_time"`
	DurationHours   int64           `json:"duration_hours"`
	BillingType     BillingType     `json:"billing_type"`
	Amount          int64           `json:"amount"`
	Overstay        bool            `json:"overstay"`
}
