package repository

import (
	"context"
	"database/sql"
	"errors"

	"parkdesk/internal/models"
)

const slotColumns = "id, slot_number, category, status, created_at, updated_at"

func scanSlot(row *sql.Row) (*models.Slot, error) {
	var s models.Slot
	err := row.Scan(&s.ID, &s.SlotNumber, &s.Category, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// SlotByID fetches a slot without locking.
func (p *Postgres) SlotByID(ctx context.Context, id int64) (*models.Slot, error) {
	const query = `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`
	return scanSlot(p.q.QueryRowContext(ctx, query, id))
}

// SlotForUpdate fetches a slot and locks its row until the enclosing
// transaction commits.
func (p *Postgres) SlotForUpdate(ctx context.Context, id int64) (*models.Slot, error) {
	const query = `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`
	return scanSlot(p.q.QueryRowContext(ctx, query, id))
}

// FirstAvailableSlot returns the lowest-numbered available slot of the
// category, row-locked. Ordering by slot_number keeps assignment
// deterministic and fills low numbers first.
func (p *Postgres) FirstAvailableSlot(ctx context.Context, category models.SlotCategory) (*models.Slot, error) {
	const query = `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE category = $1 AND status = $2
		ORDER BY slot_number ASC
		LIMIT 1
		FOR UPDATE
	`
	return scanSlot(p.q.QueryRowContext(ctx, query, category, models.SlotAvailable))
}

// UpdateSlotStatus transitions a slot's status.
func (p *Postgres) UpdateSlotStatus(ctx context.Context, id int64, status models.SlotStatus) error {
	const query = `UPDATE slots SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := p.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateSlot provisions a new slot if the number is not taken yet.
func (p *Postgres) CreateSlot(ctx context.Context, slot *models.Slot) error {
	const query = `
		INSERT INTO slots (slot_number, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (slot_number) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	err := p.q.QueryRowContext(ctx, query, slot.SlotNumber, slot.Category, slot.Status).
		Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Already provisioned.
		return nil
	}
	return err
}

// ListSlots returns slots with their active session and vehicle joined in,
// filtered by category, status and a free-text search over slot number and
// parked plate.
func (p *Postgres) ListSlots(ctx context.Context, filter models.SlotFilter) ([]models.SlotWithSession, error) {
	const query = `
		SELECT s.id, s.slot_number, s.category, s.status, s.created_at, s.updated_at,
		       ps.id, ps.plate, ps.slot_id, ps.billing_type, ps.status, ps.entry_time, ps.exit_time, ps.amount, ps.created_at, ps.updated_at,
		       v.plate, v.category, v.created_at, v.updated_at
		FROM slots s
		LEFT JOIN sessions ps ON ps.slot_id = s.id AND ps.status = $4
		LEFT JOIN vehicles v ON v.plate = ps.plate
		WHERE ($1 = '' OR s.category = $1)
		  AND ($2 = '' OR s.status = $2)
		  AND ($3 = '' OR s.slot_number ILIKE '%' || $3 || '%' OR ps.plate ILIKE '%' || $3 || '%')
		ORDER BY s.slot_number ASC
	`
	rows, err := p.q.QueryContext(ctx, query,
		string(filter.Category), string(filter.Status), filter.Search, models.SessionActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SlotWithSession
	for rows.Next() {
		var (
			item       models.SlotWithSession
			sessID     sql.NullInt64
			sessPlate  sql.NullString
			sessSlot   sql.NullInt64
			sessBill   sql.NullString
			sessStatus sql.NullString
			sessEntry  sql.NullTime
			sessExit   sql.NullTime
			sessAmount sql.NullInt64
			sessCr     sql.NullTime
			sessUp     sql.NullTime
			vehPlate   sql.NullString
			vehCat     sql.NullString
			vehCr      sql.NullTime
			vehUp      sql.NullTime
		)
		err := rows.Scan(
			&item.ID, &item.SlotNumber, &item.Category, &item.Status, &item.CreatedAt, &item.UpdatedAt,
			&sessID, &sessPlate, &sessSlot, &sessBill, &sessStatus, &sessEntry, &sessExit, &sessAmount, &sessCr, &sessUp,
			&vehPlate, &vehCat, &vehCr, &vehUp,
		)
		if err != nil {
			return nil, err
		}
		if sessID.Valid {
			session := &models.Session{
				ID:          sessID.Int64,
				Plate:       sessPlate.String,
				SlotID:      sessSlot.Int64,
				BillingType: models.BillingType(sessBill.String),
				Status:      models.SessionStatus(sessStatus.String),
				EntryTime:   sessEntry.Time,
				CreatedAt:   sessCr.Time,
				UpdatedAt:   sessUp.Time,
			}
			if sessExit.Valid {
				exit := sessExit.Time
				session.ExitTime = &exit
			}
			if sessAmount.Valid {
				amount := sessAmount.Int64
				session.Amount = &amount
			}
			item.ActiveSession = session
		}
		if vehPlate.Valid {
			item.Vehicle = &models.Vehicle{
				Plate:     vehPlate.String,
				Category:  models.VehicleCategory(vehCat.String),
				CreatedAt: vehCr.Time,
				UpdatedAt: vehUp.Time,
			}
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
