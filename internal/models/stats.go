package models

// CategoryStatusCount is one row of the slots-by-category breakdown.
type CategoryStatusCount struct {
	Category SlotCategory `json:"category"`
	Status   SlotStatus   `json:"status"`
	Count    int64        `json:"count"`
}

// DashboardStats aggregates facility state for the operator console.
type DashboardStats struct {
	TotalSlots       int64                 `json:"total_slots"`
	AvailableSlots   int64                 `json:"available_slots"`
	OccupiedSlots    int64                 `json:"occupied_slots"`
	MaintenanceSlots int64                 `json:"maintenance_slots"`
	ActiveSessions   int64                 `json:"active_sessions"`
	RevenueToday     int64                 `json:"revenue_today"`
	HourlyRevenue    int64                 `json:"hourly_revenue"`
	DayPassRevenue   int64                 `json:"day_pass_revenue"`
	SlotsByCategory  []CategoryStatusCount `json:"slots_by_category"`
}
