package repository

import (
	"context"
	"database/sql"
	"errors"

	"parkdesk/internal/models"
)

// UpsertVehicle creates the vehicle or refreshes its category on re-entry.
func (p *Postgres) UpsertVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	const query = `
		INSERT INTO vehicles (plate, category, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (plate) DO UPDATE SET
			category = EXCLUDED.category,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	return p.q.QueryRowContext(ctx, query, vehicle.Plate, vehicle.Category).
		Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
}

// VehicleByPlate fetches a vehicle record.
func (p *Postgres) VehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	const query = `SELECT plate, category, created_at, updated_at FROM vehicles WHERE plate = $1`
	var v models.Vehicle
	err := p.q.QueryRowContext(ctx, query, plate).Scan(&v.Plate, &v.Category, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
