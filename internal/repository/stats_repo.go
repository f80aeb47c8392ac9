package repository

import (
	"context"
	"time"

	"parkdesk/internal/models"
)

// Stats aggregates console dashboard numbers. Revenue sums completed
// sessions whose exit time falls on or after the given instant.
func (p *Postgres) Stats(ctx context.Context, since time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	const slotCounts = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $1),
		       COUNT(*) FILTER (WHERE status = $2),
		       COUNT(*) FILTER (WHERE status = $3)
		FROM slots
	`
	err := p.q.QueryRowContext(ctx, slotCounts,
		models.SlotAvailable, models.SlotOccupied, models.SlotMaintenance).
		Scan(&stats.TotalSlots, &stats.AvailableSlots, &stats.OccupiedSlots, &stats.MaintenanceSlots)
	if err != nil {
		return nil, err
	}

	const activeCount = `SELECT COUNT(*) FROM sessions WHERE status = $1`
	if err := p.q.QueryRowContext(ctx, activeCount, models.SessionActive).Scan(&stats.ActiveSessions); err != nil {
		return nil, err
	}

	const revenue = `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(amount) FILTER (WHERE billing_type = $3), 0),
		       COALESCE(SUM(amount) FILTER (WHERE billing_type = $4), 0)
		FROM sessions
		WHERE status = $1 AND exit_time >= $2
	`
	err = p.q.QueryRowContext(ctx, revenue,
		models.SessionCompleted, since, models.BillingHourly, models.BillingDayPass).
		Scan(&stats.RevenueToday, &stats.HourlyRevenue, &stats.DayPassRevenue)
	if err != nil {
		return nil, err
	}

	const byCategory = `
		SELECT category, status, COUNT(*)
		FROM slots
		GROUP BY category, status
		ORDER BY category, status
	`
	rows, err := p.q.QueryContext(ctx, byCategory)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var row models.CategoryStatusCount
		if err := rows.Scan(&row.Category, &row.Status, &row.Count); err != nil {
			return nil, err
		}
		stats.SlotsByCategory = append(stats.SlotsByCategory, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
