package models

import "time"

// VehicleCategory is the kind of vehicle entering the facility.
type VehicleCategory string

const (
	VehicleCar      VehicleCategory = "Car"
	VehicleBike     VehicleCategory = "Bike"
	VehicleEV       VehicleCategory = "EV"
	VehicleHandicap VehicleCategory = "Handicap"
)

// Valid reports whether the category is one of the known vehicle categories.
func (c VehicleCategory) Valid() bool {
	switch c {
	case VehicleCar, VehicleBike, VehicleEV, VehicleHandicap:
		return true
	}
	return false
}

// Vehicle is identified by its plate. The category is refreshed on every
// entry, so a plate re-entering as a different category is updated in place.
type Vehicle struct {
	Plate     string          `db:"plate" json:"plate"`
	Category  VehicleCategory `db:"category" json:"category"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
