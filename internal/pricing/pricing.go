// Package pricing maps elapsed parking time to billing amounts. All
// functions are pure; callers supply both timestamps.
package pricing

import "time"

// Tier amounts in the facility currency.
const (
	amountUpTo1Hour  = 50
	amountUpTo3Hours = 100
	amountUpTo6Hours = 150
	amountCapped     = 200

	dayPassAmount = 150

	// OverstayThresholdHours is the floor-hour duration beyond which a
	// session counts as an overstay.
	OverstayThresholdHours = 6
)

// CeilingHours converts an entry/exit pair into whole hours, rounding up.
// Zero or negative elapsed time yields 0.
func CeilingHours(entry, exit time.Time) int64 {
	minutes := int64(exit.Sub(entry) / time.Minute)
	if minutes <= 0 {
		return 0
	}
	return (minutes + 59) / 60
}

// HourlyAmount returns the tiered charge for an hourly session. The tier is
// selected on ceiling hours, so any fraction of an hour bills as a full one.
func HourlyAmount(entry, exit time.Time) int64 {
	hours := CeilingHours(entry, exit)
	switch {
	case hours <= 1:
		return amountUpTo1Hour
	case hours <= 3:
		return amountUpTo3Hours
	case hours <= 6:
		return amountUpTo6Hours
	default:
		return amountCapped
	}
}

// DayPassAmount returns the fixed day-pass charge.
func DayPassAmount() int64 {
	return dayPassAmount
}

// IsOverstay reports whether the elapsed floor hours exceed the facility
// threshold. Floor semantics: 6h30m is still 6 whole hours and not an
// overstay.
func IsOverstay(entry, exit time.Time) bool {
	hours := int64(exit.Sub(entry) / time.Hour)
	return hours > OverstayThresholdHours
}
